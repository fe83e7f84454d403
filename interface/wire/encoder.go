package wire

import (
	"allocator/domain"
	"fmt"
	"math/big"

	"github.com/tonkeeper/tongo"
	"github.com/tonkeeper/tongo/boc"
)

var (
	ErrorNotRawAddress = fmt.Errorf("address is not in raw workchain:hex form")
	ErrorCoinsTooLarge = fmt.Errorf("coins value does not fit in 15 bytes")
)

// EncodeCell maps a typed domain cell onto a real TON cell, bit-exact with
// what the on-chain contract reads: uints at their declared widths, coins
// as VarUInteger 16, addresses as addr_std, maybe-refs as a presence bit.
// The result can be handed to any BoC-based transport.
func EncodeCell(cell *domain.Cell) (*boc.Cell, error) {
	encoder := &cellEncoder{target: boc.NewCell()}
	if err := cell.Walk(encoder); err != nil {
		return nil, err
	}
	return encoder.target, nil
}

// EncodeToBase64 serializes a typed domain cell to a BoC base64 string.
func EncodeToBase64(cell *domain.Cell) (string, error) {
	encoded, err := EncodeCell(cell)
	if err != nil {
		return "", err
	}
	return encoded.ToBocBase64()
}

// Hash returns the TON representation hash of the encoded cell.
func Hash(cell *domain.Cell) ([]byte, error) {
	encoded, err := EncodeCell(cell)
	if err != nil {
		return nil, err
	}
	return encoded.Hash()
}

type cellEncoder struct {
	target *boc.Cell
}

func (e *cellEncoder) Uint(value *big.Int, bits int) error {
	return e.target.WriteBigUint(value, bits)
}

func (e *cellEncoder) Coins(value *big.Int) error {
	b := value.Bytes()
	if len(b) > 15 {
		return fmt.Errorf("%w: %v", ErrorCoinsTooLarge, value)
	}
	if err := e.target.WriteUint(uint64(len(b)), 4); err != nil {
		return err
	}
	return e.target.WriteBytes(b)
}

func (e *cellEncoder) Buffer(buffer []byte) error {
	return e.target.WriteBytes(buffer)
}

// Addr writes addr_std$10 with no anycast. The in-process model accepts a
// wider address alphabet than the chain does, so only raw workchain:hex
// addresses are encodable.
func (e *cellEncoder) Addr(addr domain.Address) error {
	accountId, err := tongo.AccountIDFromRaw(addr.String())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrorNotRawAddress, addr)
	}
	if err := e.target.WriteUint(0b100, 3); err != nil {
		return err
	}
	if err := e.target.WriteInt(int64(accountId.Workchain), 8); err != nil {
		return err
	}
	return e.target.WriteBytes(accountId.Address[:])
}

func (e *cellEncoder) MaybeRef(cell *domain.Cell) error {
	if cell == nil {
		return e.target.WriteBit(false)
	}
	if err := e.target.WriteBit(true); err != nil {
		return err
	}
	return e.Ref(cell)
}

func (e *cellEncoder) Ref(cell *domain.Cell) error {
	child, err := EncodeCell(cell)
	if err != nil {
		return err
	}
	return e.target.AddRef(child)
}
