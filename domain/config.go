package domain

import (
	"fmt"
	"log"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const (
	MainNetwork = "mainnet"
	TestNetwork = "testnet"
)

var (
	ErrorInvalidNetwork = fmt.Errorf("network must be equal to 'mainnet' or 'testnet' only")

	ErrorInvalidAuthorizedWallet = fmt.Errorf("invalid authorized jetton wallet address")
	ErrorInvalidTimelock         = fmt.Errorf("invalid timelock duration")
	ErrorInvalidFxRate           = fmt.Errorf("invalid fx rate")
)

var (
	TrailingSlashRE = regexp.MustCompile("/+$")
)

var (
	dbUri   string
	network string

	authorizedWallet Address
	timelockSeconds  uint64
	fxRate           decimal.Decimal
)

func ReadConfig(filePath string) {
	viper.SetConfigFile(filePath)

	viper.AutomaticEnv()

	viper.SetDefault("timelock", "24h")
	viper.SetDefault("fx_rate", "1")

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("⚠️ Failed reading config file: %v\n", err.Error())
	}

	err := initializeVariables()
	if err != nil {
		log.Fatalf("Configuration error - %v\n", err.Error())
	}
}

// This method processes the configuration parameters and keeps the processed values
// in some variables for later accesses rapidly.
func initializeVariables() error {
	var err error

	// Database stuff
	dbUri = TrailingSlashRE.ReplaceAllString(viper.GetString("service_db_uri"), "")

	// Network stuff
	network = strings.TrimSpace(strings.ToLower(viper.GetString("network")))
	if strings.Compare(network, MainNetwork) != 0 && strings.Compare(network, TestNetwork) != 0 {
		return ErrorInvalidNetwork
	}

	// Authorized jetton wallet stuff
	walletValue := strings.TrimSpace(viper.GetString("authorized_wallet"))
	authorizedWallet, err = NewAddress(walletValue)
	if err != nil {
		return ErrorInvalidAuthorizedWallet
	}

	//---------------------------------------------------------------
	// pause timelock
	strValue := viper.GetString("timelock")
	timelock, err := time.ParseDuration(strValue)
	if err != nil || timelock < 0 {
		return ErrorInvalidTimelock
	}
	timelockSeconds = uint64(timelock / time.Second)

	//---------------------------------------------------------------
	// default fx rate
	strValue = viper.GetString("fx_rate")
	fxRate, err = decimal.NewFromString(strValue)
	if err != nil || fxRate.Sign() <= 0 {
		return ErrorInvalidFxRate
	}

	return nil
}

//-------------------------------------------------------------------
// Normal configuration values

func GetDbUri() string {
	return dbUri
}

func GetAuthorizedWallet() Address {
	return authorizedWallet
}

func GetTimelockSeconds() uint64 {
	return timelockSeconds
}

func GetFxRate() decimal.Decimal {
	return fxRate
}

// -------------------------------------------------------------------
// Evaluating values

func IsTestNet() bool {
	return strings.Compare(network, TestNetwork) == 0
}
