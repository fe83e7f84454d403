package usecase

import (
	"allocator/domain"
	"allocator/domain/util"
	"allocator/interface/exporter"
	"bytes"
	"encoding/json"
	"fmt"
	"log"

	"github.com/shopspring/decimal"
)

const (
	StepSetNow         = "set_now"
	StepSchedulePause  = "schedule_pause"
	StepExecutePause   = "execute_pause"
	StepSwap           = "swap"
	StepJettonTransfer = "jetton_transfer"
	StepWithdraw       = "withdraw"
)

var (
	ErrorUnknownStep  = fmt.Errorf("unknown scenario step")
	ErrorMissingField = fmt.Errorf("missing scenario field")
)

// ScenarioStep is one replayable allocator operation. Exactly the fields of
// its op must be present; unknown JSON fields fail the whole scenario.
type ScenarioStep struct {
	Op string `json:"op"`

	Now    *uint64 `json:"now,omitempty"`
	Target *bool   `json:"target,omitempty"`

	Swap     *domain.SwapRequest `json:"swap,omitempty"`
	Transfer *ScenarioTransfer   `json:"transfer,omitempty"`

	UsdtAmount *decimal.Decimal `json:"usdt_amount,omitempty"`
}

// ScenarioTransfer is the journal-friendly form of a jetton transfer
// request: the wallet as a plain string and the forward value as a decimal
// TON numeral.
type ScenarioTransfer struct {
	Wallet       string          `json:"wallet"`
	DepositId    uint64          `json:"deposit_id"`
	InvestorKey  string          `json:"investor_key"`
	UsdtAmount   decimal.Decimal `json:"usdt_amount"`
	JettonAmount decimal.Decimal `json:"jetton_amount"`
	FxRate       decimal.Decimal `json:"fx_rate"`
	ForwardTon   string          `json:"forward_ton"`
	TonTxHash    string          `json:"ton_tx_hash"`
}

// ParseScenario decodes a scenario file strictly: any unknown field is a
// parse error, not a warning.
func ParseScenario(data []byte) ([]ScenarioStep, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()

	var steps []ScenarioStep
	if err := decoder.Decode(&steps); err != nil {
		return nil, err
	}
	return steps, nil
}

// ScenarioInteractor replays scenario steps against one allocator,
// reporting every event and rejection the way a conformance harness needs
// them: in call order, with no retry. Steps that omit the fx rate run at
// the configured default rate.
type ScenarioInteractor struct {
	allocator     *Allocator
	journal       *JournalInteractor
	defaultFxRate decimal.Decimal
}

func NewScenarioInteractor(allocator *Allocator, journal *JournalInteractor,
	defaultFxRate decimal.Decimal) *ScenarioInteractor {
	interactor := &ScenarioInteractor{
		allocator:     allocator,
		journal:       journal,
		defaultFxRate: defaultFxRate,
	}

	return interactor
}

func (interactor *ScenarioInteractor) Run(steps []ScenarioStep) error {
	for i, step := range steps {
		err := interactor.runStep(step)
		if err != nil {
			log.Printf("🔴 step #%v (%v) rejected - %v\n", i, step.Op, err.Error())
			exporter.IncErrorCount()
		}
	}

	exporter.SetVaultBalance(interactor.allocator.VaultBalance())
	log.Printf("vault balance: %v\n", util.DctString(interactor.allocator.VaultBalance()))

	if interactor.journal != nil {
		if err := interactor.journal.StoreForwards(interactor.allocator.Forwards()); err != nil {
			return err
		}
		if err := interactor.journal.StoreSnapshot(interactor.allocator); err != nil {
			return err
		}
	}

	return nil
}

func (interactor *ScenarioInteractor) runStep(step ScenarioStep) error {
	switch step.Op {

	case StepSetNow:
		if step.Now == nil {
			return fmt.Errorf("%w: now", ErrorMissingField)
		}
		interactor.allocator.SetNow(*step.Now)
		return nil

	case StepSchedulePause:
		if step.Target == nil {
			return fmt.Errorf("%w: target", ErrorMissingField)
		}
		pending := interactor.allocator.SchedulePause(*step.Target)
		log.Printf("pause scheduled [target: %v, effective at: %v]\n", pending.TargetPaused, pending.EffectiveAt)
		return nil

	case StepExecutePause:
		if err := interactor.allocator.ExecutePause(); err != nil {
			return err
		}
		log.Printf("pause executed [paused: %v]\n", interactor.allocator.Paused())
		return nil

	case StepSwap:
		if step.Swap == nil {
			return fmt.Errorf("%w: swap", ErrorMissingField)
		}
		request := *step.Swap
		if request.FxRate.IsZero() {
			request.FxRate = interactor.defaultFxRate
		}
		event, err := interactor.allocator.Swap(request)
		if err != nil {
			return err
		}
		exporter.IncSwapCount()
		log.Printf("swap credited [deposit: %v, %v -> %v]\n",
			event.DepositId, util.UsdtString(event.UsdtAmount), util.DctString(event.DctAmount))
		return nil

	case StepJettonTransfer:
		if step.Transfer == nil {
			return fmt.Errorf("%w: transfer", ErrorMissingField)
		}
		request, err := step.Transfer.toRequest()
		if err != nil {
			return err
		}
		if request.FxRate.IsZero() {
			request.FxRate = interactor.defaultFxRate
		}
		event, err := interactor.allocator.ProcessJettonTransfer(*request)
		if err != nil {
			return err
		}
		exporter.IncDepositCount()
		log.Printf("jetton deposit credited [deposit: %v, %v -> %v]\n",
			event.DepositId, util.UsdtString(event.UsdtAmount), util.DctString(event.DctAmount))
		return nil

	case StepWithdraw:
		if step.UsdtAmount == nil {
			return fmt.Errorf("%w: usdt_amount", ErrorMissingField)
		}
		result, err := interactor.allocator.RequestWithdrawal(*step.UsdtAmount)
		if err != nil {
			return err
		}
		exporter.IncWithdrawalCount()
		log.Printf("withdrawal completed [burned: %v]\n", util.DctString(result.DctBurned))
		return nil
	}

	return fmt.Errorf("%w: %q", ErrorUnknownStep, step.Op)
}

func (transfer *ScenarioTransfer) toRequest() (*domain.JettonTransferRequest, error) {
	wallet, err := domain.NewAddress(transfer.Wallet)
	if err != nil {
		return nil, err
	}
	forwardTon, err := domain.ToNano(transfer.ForwardTon)
	if err != nil {
		return nil, err
	}

	return &domain.JettonTransferRequest{
		Wallet:           wallet,
		DepositId:        transfer.DepositId,
		InvestorKey:      transfer.InvestorKey,
		UsdtAmount:       transfer.UsdtAmount,
		JettonAmount:     transfer.JettonAmount,
		FxRate:           transfer.FxRate,
		ForwardTonAmount: forwardTon,
		TonTxHash:        transfer.TonTxHash,
	}, nil
}
