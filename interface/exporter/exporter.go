package exporter

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const (
	METRIC_ERROR_COUNT      = "error_count"
	METRIC_SWAP_COUNT       = "swap_count"
	METRIC_DEPOSIT_COUNT    = "jetton_deposit_count"
	METRIC_WITHDRAWAL_COUNT = "withdrawal_count"
)

var (
	counters     map[string]prometheus.Counter
	vaultBalance prometheus.Gauge
)

func Init() {

	// --- Static Metrics: the metrics which are not depended on running configuration

	// Create metric spaces
	counters = make(map[string]prometheus.Counter)

	// Register metrics
	register := func(name string, help string) {
		counter := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "dct",
			Subsystem: "allocator",
			Name:      name,
			Help:      help,
		})
		prometheus.MustRegister(counter)
		counters[name] = counter
	}

	register(METRIC_ERROR_COUNT, "Counts the number of rejected operations")
	register(METRIC_SWAP_COUNT, "Counts the number of credited swap deposits")
	register(METRIC_DEPOSIT_COUNT, "Counts the number of credited jetton deposits")
	register(METRIC_WITHDRAWAL_COUNT, "Counts the number of completed withdrawals")

	vaultBalance = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "dct",
		Subsystem: "allocator",
		Name:      "vault_balance",
		Help:      "Current vault balance in dct units",
	})
	prometheus.MustRegister(vaultBalance)
}

func GetCounter(name string) prometheus.Counter {
	return counters[name]
}

func IncErrorCount() {
	counters[METRIC_ERROR_COUNT].Inc()
}

func IncSwapCount() {
	counters[METRIC_SWAP_COUNT].Inc()
}

func IncDepositCount() {
	counters[METRIC_DEPOSIT_COUNT].Inc()
}

func IncWithdrawalCount() {
	counters[METRIC_WITHDRAWAL_COUNT].Inc()
}

func SetVaultBalance(balance decimal.Decimal) {
	value, _ := balance.Float64()
	vaultBalance.Set(value)
}
