package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

type Memorable interface {
	ToJson() string
	FromJson(jstr string) error
}

// PendingPause is a scheduled pause flip waiting out its timelock.
type PendingPause struct {
	EffectiveAt  uint64 `json:"effective_at"`
	TargetPaused bool   `json:"target_paused"`
}

// AllocatorSnapshot captures the allocator's mutable state for the journal.
type AllocatorSnapshot struct {
	Paused       bool            `json:"paused"`
	Pending      *PendingPause   `json:"pending,omitempty"`
	VaultBalance decimal.Decimal `json:"vault_balance"`
	Now          uint64          `json:"now"`
	ForwardCount int             `json:"forward_count"`
}

func (obj *AllocatorSnapshot) ToJson() string {
	jstr, err := json.Marshal(obj)
	if err != nil {
		return err.Error()
	}
	return string(jstr)
}

func (obj *AllocatorSnapshot) FromJson(jstr string) error {
	err := json.Unmarshal([]byte(jstr), obj)
	return err
}
