package domain

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// SwapRequest is a direct structured deposit into the pool.
type SwapRequest struct {
	DepositId   uint64          `json:"deposit_id"`
	InvestorKey string          `json:"investor_key"`
	UsdtAmount  decimal.Decimal `json:"usdt_amount"`
	FxRate      decimal.Decimal `json:"fx_rate"`
	TonTxHash   string          `json:"ton_tx_hash"`
}

// JettonTransferRequest is a deposit triggered by an inbound jetton
// transfer notification. Wallet is the sender identity; the amount fields
// mirror the decoded forward payload.
type JettonTransferRequest struct {
	Wallet           Address
	DepositId        uint64
	InvestorKey      string
	UsdtAmount       decimal.Decimal
	JettonAmount     decimal.Decimal
	FxRate           decimal.Decimal
	ForwardTonAmount *big.Int
	TonTxHash        string
}

// DepositEvent reports one credited deposit: the request fields plus the
// converted dct amount and the allocator clock at the time of crediting.
type DepositEvent struct {
	DepositId   uint64          `json:"deposit_id"`
	InvestorKey string          `json:"investor_key"`
	UsdtAmount  decimal.Decimal `json:"usdt_amount"`
	DctAmount   decimal.Decimal `json:"dct_amount"`
	FxRate      decimal.Decimal `json:"fx_rate"`
	TonTxHash   string          `json:"ton_tx_hash"`
	Timestamp   uint64          `json:"timestamp"`
}

// RouterForwardPayload is the record forwarded to the router for a
// jetton-triggered deposit.
type RouterForwardPayload struct {
	DepositId   uint64          `json:"deposit_id"`
	InvestorKey string          `json:"investor_key"`
	UsdtAmount  decimal.Decimal `json:"usdt_amount"`
	DctAmount   decimal.Decimal `json:"dct_amount"`
	FxRate      decimal.Decimal `json:"fx_rate"`
	TonTxHash   string          `json:"ton_tx_hash"`
}

// RouterForward pairs the forwarded ton value with its payload. Records are
// immutable once appended and keep insertion order.
type RouterForward struct {
	Value   *big.Int             `json:"value"`
	Payload RouterForwardPayload `json:"payload"`
}

// WithdrawalResult reports a completed withdrawal. Withdrawals burn vault
// units one-to-one against the requested usdt amount.
type WithdrawalResult struct {
	DctBurned  decimal.Decimal `json:"dct_burned"`
	UsdtAmount decimal.Decimal `json:"usdt_amount"`
}
