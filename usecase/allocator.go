package usecase

import (
	"allocator/domain"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrorNoPauseScheduled   = fmt.Errorf("no pause scheduled")
	ErrorTimelockActive     = fmt.Errorf("timelock active")
	ErrorAllocatorPaused    = fmt.Errorf("allocator paused")
	ErrorUnauthorizedJetton = fmt.Errorf("unauthorized jetton")
	ErrorInvalidForwardTon  = fmt.Errorf("invalid forward TON")
	ErrorAmountMismatch     = fmt.Errorf("amount mismatch")
	ErrorInvalidAmount      = fmt.Errorf("invalid amount")
	ErrorInsufficientVault  = fmt.Errorf("insufficient vault balance")
)

// Allocator is the custody pool state machine. It gates deposits behind a
// timelocked pause switch, validates jetton-triggered deposits against the
// authorized wallet, converts usdt to dct at the request's fx rate and
// keeps the vault balance consistent with every credited and burned amount.
//
// The clock is virtual: it only moves when SetNow is called, which keeps
// the timelock logic deterministic and replayable. One instance must be
// driven by one caller at a time; operations are not internally locked.
type Allocator struct {
	authorizedWallet domain.Address
	timelockSeconds  uint64

	now      uint64
	paused   bool
	pending  *domain.PendingPause
	vault    decimal.Decimal
	forwards []domain.RouterForward
}

func NewAllocator(authorizedWallet domain.Address, timelockSeconds uint64) *Allocator {
	return &Allocator{
		authorizedWallet: authorizedWallet,
		timelockSeconds:  timelockSeconds,
		vault:            decimal.Zero,
		forwards:         make([]domain.RouterForward, 0, 8),
	}
}

// SetNow advances the virtual clock. Regression is accepted on purpose so
// a conformance harness can replay scenarios from any starting point.
func (allocator *Allocator) SetNow(now uint64) {
	allocator.now = now
}

func (allocator *Allocator) Now() uint64 {
	return allocator.now
}

func (allocator *Allocator) Paused() bool {
	return allocator.paused
}

// SchedulePause arms a pause flip that becomes executable once the
// timelock elapses. A pending schedule is overwritten, never queued.
func (allocator *Allocator) SchedulePause(targetPaused bool) domain.PendingPause {
	pending := domain.PendingPause{
		EffectiveAt:  allocator.now + allocator.timelockSeconds,
		TargetPaused: targetPaused,
	}
	allocator.pending = &pending
	return pending
}

func (allocator *Allocator) PendingPause() *domain.PendingPause {
	if allocator.pending == nil {
		return nil
	}
	pending := *allocator.pending
	return &pending
}

func (allocator *Allocator) ExecutePause() error {
	if allocator.pending == nil {
		return ErrorNoPauseScheduled
	}
	if allocator.now < allocator.pending.EffectiveAt {
		return fmt.Errorf("%w: effective at %v, now %v",
			ErrorTimelockActive, allocator.pending.EffectiveAt, allocator.now)
	}
	allocator.paused = allocator.pending.TargetPaused
	allocator.pending = nil
	return nil
}

// Swap credits a direct structured deposit. The dct amount is the usdt
// amount divided by the fx rate, rounded to nano precision at the point of
// computation.
func (allocator *Allocator) Swap(request domain.SwapRequest) (*domain.DepositEvent, error) {
	if allocator.paused {
		return nil, ErrorAllocatorPaused
	}
	if request.UsdtAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidAmount, request.UsdtAmount)
	}
	if request.FxRate.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrorInvalidFxRate, request.FxRate)
	}

	dctAmount := request.UsdtAmount.DivRound(request.FxRate, domain.NanoDigits)
	allocator.vault = allocator.vault.Add(dctAmount)

	return &domain.DepositEvent{
		DepositId:   request.DepositId,
		InvestorKey: request.InvestorKey,
		UsdtAmount:  request.UsdtAmount,
		DctAmount:   dctAmount,
		FxRate:      request.FxRate,
		TonTxHash:   request.TonTxHash,
		Timestamp:   allocator.now,
	}, nil
}

// ProcessJettonTransfer credits a deposit carried by a jetton transfer
// notification and appends the router forward record. Unlike Swap this path
// does not check the pause flag: the transfer has already moved funds, so
// rejecting it here would strand them. Whether a production contract wants
// the same asymmetry is undecided; the model keeps the observed behavior.
func (allocator *Allocator) ProcessJettonTransfer(request domain.JettonTransferRequest) (*domain.DepositEvent, error) {
	if !request.Wallet.Equals(allocator.authorizedWallet) {
		return nil, fmt.Errorf("%w: %v", ErrorUnauthorizedJetton, request.Wallet)
	}
	if request.ForwardTonAmount == nil || request.ForwardTonAmount.Sign() <= 0 {
		return nil, ErrorInvalidForwardTon
	}
	if !request.UsdtAmount.Equal(request.JettonAmount) {
		return nil, fmt.Errorf("%w: declared %v, transferred %v",
			ErrorAmountMismatch, request.UsdtAmount, request.JettonAmount)
	}
	// A negative pair passes the mismatch check, so positivity is its own
	// precondition. The vault must never be credited downward.
	if request.JettonAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidAmount, request.JettonAmount)
	}
	if request.FxRate.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", domain.ErrorInvalidFxRate, request.FxRate)
	}

	dctAmount := request.JettonAmount.DivRound(request.FxRate, domain.NanoDigits)

	allocator.forwards = append(allocator.forwards, domain.RouterForward{
		Value: request.ForwardTonAmount,
		Payload: domain.RouterForwardPayload{
			DepositId:   request.DepositId,
			InvestorKey: request.InvestorKey,
			UsdtAmount:  request.JettonAmount,
			DctAmount:   dctAmount,
			FxRate:      request.FxRate,
			TonTxHash:   request.TonTxHash,
		},
	})
	allocator.vault = allocator.vault.Add(dctAmount)

	return &domain.DepositEvent{
		DepositId:   request.DepositId,
		InvestorKey: request.InvestorKey,
		UsdtAmount:  request.JettonAmount,
		DctAmount:   dctAmount,
		FxRate:      request.FxRate,
		TonTxHash:   request.TonTxHash,
		Timestamp:   allocator.now,
	}, nil
}

// RequestWithdrawal burns vault units one-to-one against the requested
// usdt amount, independent of any fx rate.
func (allocator *Allocator) RequestWithdrawal(usdtAmount decimal.Decimal) (*domain.WithdrawalResult, error) {
	if usdtAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidAmount, usdtAmount)
	}

	dctNeeded := usdtAmount
	if dctNeeded.GreaterThan(allocator.vault) {
		return nil, fmt.Errorf("%w: need %v, have %v",
			ErrorInsufficientVault, dctNeeded, allocator.VaultBalance())
	}
	allocator.vault = allocator.vault.Sub(dctNeeded)

	return &domain.WithdrawalResult{
		DctBurned:  dctNeeded,
		UsdtAmount: usdtAmount,
	}, nil
}

func (allocator *Allocator) VaultBalance() decimal.Decimal {
	return domain.Round9(allocator.vault)
}

// Forwards returns the router forward records in insertion order. The
// returned slice is a copy; records themselves are never mutated.
func (allocator *Allocator) Forwards() []domain.RouterForward {
	forwards := make([]domain.RouterForward, len(allocator.forwards))
	copy(forwards, allocator.forwards)
	return forwards
}

func (allocator *Allocator) Snapshot() *domain.AllocatorSnapshot {
	return &domain.AllocatorSnapshot{
		Paused:       allocator.paused,
		Pending:      allocator.PendingPause(),
		VaultBalance: allocator.VaultBalance(),
		Now:          allocator.now,
		ForwardCount: len(allocator.forwards),
	}
}
