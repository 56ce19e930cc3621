package entities

import (
	"fmt"

	"canchas/internal/db"
)

// BatchPolicy selects how a batch reacts to a failing item.
type BatchPolicy int

const (
	// FailFast rolls back the whole batch on the first failing item.
	FailFast BatchPolicy = iota
	// PartialTolerance records per-item failures and commits the rest.
	PartialTolerance
)

func (p BatchPolicy) String() string {
	switch p {
	case FailFast:
		return "strict"
	case PartialTolerance:
		return "partial"
	}
	return fmt.Sprintf("BatchPolicy(%d)", int(p))
}

// ParseBatchPolicy accepts "strict" / "fail-fast" and "partial".
func ParseBatchPolicy(s string) (BatchPolicy, error) {
	switch s {
	case "strict", "fail-fast", "failfast":
		return FailFast, nil
	case "partial":
		return PartialTolerance, nil
	}
	return 0, fmt.Errorf("unknown batch policy %q", s)
}

// ItemError is the failure recorded for the batch item at Index.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

type BatchResult struct {
	Inserted []db.Reservation
	Errors   []ItemError
}
