package domain

import (
	"fmt"
	"math/big"
)

var (
	ErrorNoMoreData           = fmt.Errorf("no more data to load")
	ErrorItemTypeMismatch     = fmt.Errorf("stored item type mismatch")
	ErrorItemWidthMismatch    = fmt.Errorf("stored item bit width mismatch")
	ErrorBufferLengthMismatch = fmt.Errorf("stored buffer length mismatch")
	ErrorUnreadData           = fmt.Errorf("unread data remaining")
)

// Slice is a forward-only read cursor over a cell's items. Parsing never
// mutates the cell, so any number of slices may read the same cell.
type Slice struct {
	cell   *Cell
	cursor int
}

func (s *Slice) next(expected itemKind) (*item, error) {
	if s.cursor >= len(s.cell.items) {
		return nil, ErrorNoMoreData
	}
	it := &s.cell.items[s.cursor]
	if it.kind != expected {
		return nil, fmt.Errorf("%w: expected %v, found %v", ErrorItemTypeMismatch, expected, it.kind)
	}
	s.cursor++
	return it, nil
}

func (s *Slice) LoadUint(bits int) (uint64, error) {
	value, err := s.LoadUintBig(bits)
	if err != nil {
		return 0, err
	}
	return value.Uint64(), nil
}

func (s *Slice) LoadUintBig(bits int) (*big.Int, error) {
	it, err := s.next(itemUint)
	if err != nil {
		return nil, err
	}
	if it.bits != bits {
		s.cursor--
		return nil, fmt.Errorf("%w: expected %v bits, stored %v bits", ErrorItemWidthMismatch, bits, it.bits)
	}
	return new(big.Int).Set(it.number), nil
}

func (s *Slice) LoadCoins() (*big.Int, error) {
	it, err := s.next(itemCoins)
	if err != nil {
		return nil, err
	}
	return new(big.Int).Set(it.number), nil
}

// LoadBuffer consumes a buffer item. A non-negative expectedLength is
// enforced against the stored length; pass -1 to accept any length.
func (s *Slice) LoadBuffer(expectedLength int) ([]byte, error) {
	it, err := s.next(itemBuffer)
	if err != nil {
		return nil, err
	}
	if expectedLength >= 0 && len(it.buffer) != expectedLength {
		s.cursor--
		return nil, fmt.Errorf("%w: expected %v bytes, stored %v bytes",
			ErrorBufferLengthMismatch, expectedLength, len(it.buffer))
	}
	copied := make([]byte, len(it.buffer))
	copy(copied, it.buffer)
	return copied, nil
}

func (s *Slice) LoadAddress() (Address, error) {
	it, err := s.next(itemAddress)
	if err != nil {
		return Address{}, err
	}
	return it.addr, nil
}

// LoadMaybeRef returns nil without error when the stored optional
// reference is absent.
func (s *Slice) LoadMaybeRef() (*Cell, error) {
	it, err := s.next(itemMaybeRef)
	if err != nil {
		return nil, err
	}
	return it.ref, nil
}

func (s *Slice) LoadRef() (*Cell, error) {
	it, err := s.next(itemRef)
	if err != nil {
		return nil, err
	}
	return it.ref, nil
}

func (s *Slice) EndParse() error {
	if s.cursor < len(s.cell.items) {
		return fmt.Errorf("%w: %v of %v items unconsumed",
			ErrorUnreadData, len(s.cell.items)-s.cursor, len(s.cell.items))
	}
	return nil
}
