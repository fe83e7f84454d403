package domain

import (
	"fmt"
	"math/big"
)

var (
	ErrorInvalidBitWidth = fmt.Errorf("bit width must be a positive integer")
	ErrorNegativeValue   = fmt.Errorf("value must not be negative")
	ErrorValueOverflow   = fmt.Errorf("value exceeds declared bit width")
	ErrorBuilderSealed   = fmt.Errorf("builder is already sealed")
	ErrorNilReference    = fmt.Errorf("mandatory reference must not be nil")
)

type itemKind int

const (
	itemUint itemKind = iota
	itemCoins
	itemBuffer
	itemAddress
	itemMaybeRef
	itemRef
)

func (k itemKind) String() string {
	switch k {
	case itemUint:
		return "uint"
	case itemCoins:
		return "coins"
	case itemBuffer:
		return "buffer"
	case itemAddress:
		return "address"
	case itemMaybeRef:
		return "maybe-ref"
	case itemRef:
		return "ref"
	}
	return "unknown"
}

// item is one stored field of a cell. Exactly the members matching its kind
// are meaningful; the parser dispatches on the kind tag only.
type item struct {
	kind itemKind

	bits   int      // itemUint
	number *big.Int // itemUint, itemCoins
	buffer []byte   // itemBuffer
	addr   Address  // itemAddress
	ref    *Cell    // itemRef, itemMaybeRef (nil means absent)
}

// Cell is an immutable ordered sequence of stored items, built once by a
// Builder and read back by any number of independent Slices.
type Cell struct {
	items []item
}

func (c *Cell) BeginParse() *Slice {
	return &Slice{cell: c, cursor: 0}
}

// CellVisitor receives one callback per stored item, in storage order.
// Wire encoders implement it to map the typed items onto a concrete
// serialization without reaching into cell internals.
type CellVisitor interface {
	Uint(value *big.Int, bits int) error
	Coins(value *big.Int) error
	Buffer(buffer []byte) error
	Addr(addr Address) error
	MaybeRef(cell *Cell) error
	Ref(cell *Cell) error
}

func (c *Cell) Walk(visitor CellVisitor) error {
	for i := range c.items {
		it := &c.items[i]
		var err error
		switch it.kind {
		case itemUint:
			err = visitor.Uint(it.number, it.bits)
		case itemCoins:
			err = visitor.Coins(it.number)
		case itemBuffer:
			err = visitor.Buffer(it.buffer)
		case itemAddress:
			err = visitor.Addr(it.addr)
		case itemMaybeRef:
			err = visitor.MaybeRef(it.ref)
		case itemRef:
			err = visitor.Ref(it.ref)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// Builder accumulates stored items for exactly one cell. Every store call
// validates its argument immediately; EndCell seals the builder for good.
type Builder struct {
	items  []item
	sealed bool
}

func NewBuilder() *Builder {
	return &Builder{
		items: make([]item, 0, 8),
	}
}

func (b *Builder) StoreUint(value uint64, bits int) error {
	return b.StoreUintBig(new(big.Int).SetUint64(value), bits)
}

func (b *Builder) StoreUintBig(value *big.Int, bits int) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	if bits <= 0 {
		return fmt.Errorf("%w: %v", ErrorInvalidBitWidth, bits)
	}
	if value.Sign() < 0 {
		return fmt.Errorf("%w: %v", ErrorNegativeValue, value)
	}
	if value.BitLen() > bits {
		return fmt.Errorf("%w: %v does not fit in %v bits", ErrorValueOverflow, value, bits)
	}
	b.items = append(b.items, item{
		kind:   itemUint,
		bits:   bits,
		number: new(big.Int).Set(value),
	})
	return nil
}

func (b *Builder) StoreCoins(value *big.Int) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	if value.Sign() < 0 {
		return fmt.Errorf("%w: %v", ErrorNegativeValue, value)
	}
	b.items = append(b.items, item{
		kind:   itemCoins,
		number: new(big.Int).Set(value),
	})
	return nil
}

func (b *Builder) StoreBuffer(buffer []byte) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	copied := make([]byte, len(buffer))
	copy(copied, buffer)
	b.items = append(b.items, item{
		kind:   itemBuffer,
		buffer: copied,
	})
	return nil
}

func (b *Builder) StoreAddress(addr Address) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	b.items = append(b.items, item{
		kind: itemAddress,
		addr: addr,
	})
	return nil
}

// StoreMaybeRef stores an optional child reference; a nil cell stores the
// absent state, which is valid data rather than an error.
func (b *Builder) StoreMaybeRef(cell *Cell) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	b.items = append(b.items, item{
		kind: itemMaybeRef,
		ref:  cell,
	})
	return nil
}

func (b *Builder) StoreRef(cell *Cell) error {
	if b.sealed {
		return ErrorBuilderSealed
	}
	if cell == nil {
		return ErrorNilReference
	}
	b.items = append(b.items, item{
		kind: itemRef,
		ref:  cell,
	})
	return nil
}

func (b *Builder) EndCell() (*Cell, error) {
	if b.sealed {
		return nil, ErrorBuilderSealed
	}
	b.sealed = true
	return &Cell{items: b.items}, nil
}
