package domain

import (
	"fmt"
	"regexp"
)

var (
	ErrorEmptyAddress   = fmt.Errorf("empty address")
	ErrorInvalidAddress = fmt.Errorf("invalid address")
)

var addressRE = regexp.MustCompile(`^[0-9a-fA-F:-]+$`)

// Address is a validated account reference. It is compared by value only;
// the model makes no assumption about which chain format the string uses.
type Address struct {
	value string
}

func NewAddress(value string) (Address, error) {
	if value == "" {
		return Address{}, ErrorEmptyAddress
	}
	if !addressRE.MatchString(value) {
		return Address{}, fmt.Errorf("%w: %v", ErrorInvalidAddress, value)
	}
	return Address{value: value}, nil
}

func (a Address) String() string {
	return a.value
}

func (a Address) Equals(other Address) bool {
	return a.value == other.value
}
