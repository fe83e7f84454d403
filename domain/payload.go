package domain

import (
	"fmt"
	"math/big"
)

const (
	// OpcodeJettonTransfer is the standard TEP-74 jetton transfer opcode.
	OpcodeJettonTransfer uint64 = 0x0f8a7ea5

	// OpcodeAllocatorDeposit tags the forward payload the allocator accepts
	// inside a jetton transfer notification.
	OpcodeAllocatorDeposit uint64 = 0x6d1c7a42

	// KeyByteLength is the fixed byte length of investor keys and
	// transaction hashes.
	KeyByteLength = 32
)

var (
	ErrorUnsupportedOp    = fmt.Errorf("unsupported op")
	ErrorInvalidDctAmount = fmt.Errorf("invalid dct amount")
)

// DepositForwardPayload is the deposit notification a jetton transfer
// carries to the allocator. Identifier fields hold canonical 0x hex; in the
// cell layer they travel as raw 32-byte buffers.
type DepositForwardPayload struct {
	DepositId   uint64
	InvestorKey string
	UsdtAmount  *big.Int
	DctAmount   *big.Int
	ExpectedFx  uint64
	TonTxHash   string
}

// JettonTransferBody is the TEP-74 transfer envelope wrapping a deposit
// forward payload as its mandatory forward reference. The custom payload
// slot is always stored absent.
type JettonTransferBody struct {
	QueryId             uint64
	JettonAmount        *big.Int
	Destination         Address
	ResponseDestination Address
	ForwardTonAmount    *big.Int
	ForwardPayload      *Cell
}

// CreateDepositForwardPayload builds the payload cell in the fixed field
// order the on-chain contract expects: opcode, depositId, investorKey,
// usdtAmount, dctAmount, expectedFx, tonTxHash.
func CreateDepositForwardPayload(payload DepositForwardPayload) (*Cell, error) {
	investorKey, err := HexToBytes(payload.InvestorKey, KeyByteLength)
	if err != nil {
		return nil, err
	}
	tonTxHash, err := HexToBytes(payload.TonTxHash, KeyByteLength)
	if err != nil {
		return nil, err
	}

	b := NewBuilder()
	if err := b.StoreUint(OpcodeAllocatorDeposit, 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(payload.DepositId, 64); err != nil {
		return nil, err
	}
	if err := b.StoreBuffer(investorKey); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(payload.UsdtAmount); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(payload.DctAmount); err != nil {
		return nil, err
	}
	if err := b.StoreUint(payload.ExpectedFx, 64); err != nil {
		return nil, err
	}
	if err := b.StoreBuffer(tonTxHash); err != nil {
		return nil, err
	}
	return b.EndCell()
}

// DecodeAllocatorForwardPayload parses a deposit forward payload, rejecting
// foreign opcodes before reading anything else and requiring a strictly
// positive dct amount. The parse must consume the cell completely.
func DecodeAllocatorForwardPayload(cell *Cell) (*DepositForwardPayload, error) {
	s := cell.BeginParse()

	opcode, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	if opcode != OpcodeAllocatorDeposit {
		return nil, fmt.Errorf("%w: 0x%08x", ErrorUnsupportedOp, opcode)
	}

	depositId, err := s.LoadUint(64)
	if err != nil {
		return nil, err
	}
	investorKey, err := s.LoadBuffer(KeyByteLength)
	if err != nil {
		return nil, err
	}
	usdtAmount, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	dctAmount, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	expectedFx, err := s.LoadUint(64)
	if err != nil {
		return nil, err
	}
	tonTxHash, err := s.LoadBuffer(KeyByteLength)
	if err != nil {
		return nil, err
	}
	if err := s.EndParse(); err != nil {
		return nil, err
	}

	if dctAmount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrorInvalidDctAmount, dctAmount)
	}

	return &DepositForwardPayload{
		DepositId:   depositId,
		InvestorKey: BytesToHex(investorKey),
		UsdtAmount:  usdtAmount,
		DctAmount:   dctAmount,
		ExpectedFx:  expectedFx,
		TonTxHash:   BytesToHex(tonTxHash),
	}, nil
}

// CreateJettonTransferBody builds the transfer envelope: opcode, queryId,
// jettonAmount, destination, responseDestination, absent custom payload,
// forwardTonAmount, and the forward payload as a mandatory reference.
func CreateJettonTransferBody(body JettonTransferBody) (*Cell, error) {
	b := NewBuilder()
	if err := b.StoreUint(OpcodeJettonTransfer, 32); err != nil {
		return nil, err
	}
	if err := b.StoreUint(body.QueryId, 64); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(body.JettonAmount); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(body.Destination); err != nil {
		return nil, err
	}
	if err := b.StoreAddress(body.ResponseDestination); err != nil {
		return nil, err
	}
	if err := b.StoreMaybeRef(nil); err != nil {
		return nil, err
	}
	if err := b.StoreCoins(body.ForwardTonAmount); err != nil {
		return nil, err
	}
	if err := b.StoreRef(body.ForwardPayload); err != nil {
		return nil, err
	}
	return b.EndCell()
}

// DecodeJettonTransferBody parses a transfer envelope back into its fields.
// The nested forward payload cell is returned as-is for the caller to
// decode.
func DecodeJettonTransferBody(cell *Cell) (*JettonTransferBody, error) {
	s := cell.BeginParse()

	opcode, err := s.LoadUint(32)
	if err != nil {
		return nil, err
	}
	if opcode != OpcodeJettonTransfer {
		return nil, fmt.Errorf("%w: 0x%08x", ErrorUnsupportedOp, opcode)
	}

	queryId, err := s.LoadUint(64)
	if err != nil {
		return nil, err
	}
	jettonAmount, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	destination, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	responseDestination, err := s.LoadAddress()
	if err != nil {
		return nil, err
	}
	if _, err := s.LoadMaybeRef(); err != nil {
		return nil, err
	}
	forwardTonAmount, err := s.LoadCoins()
	if err != nil {
		return nil, err
	}
	forwardPayload, err := s.LoadRef()
	if err != nil {
		return nil, err
	}
	if err := s.EndParse(); err != nil {
		return nil, err
	}

	return &JettonTransferBody{
		QueryId:             queryId,
		JettonAmount:        jettonAmount,
		Destination:         destination,
		ResponseDestination: responseDestination,
		ForwardTonAmount:    forwardTonAmount,
		ForwardPayload:      forwardPayload,
	}, nil
}
