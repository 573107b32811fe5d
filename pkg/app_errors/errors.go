package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrEventNotFound         = errors.New("event not found")
	ErrSaleNotFound          = errors.New("sale not found")
	ErrInvalidInput          = errors.New("invalid input")
	ErrInsufficientInventory = errors.New("insufficient inventory")
	ErrStoreUnavailable      = errors.New("store unavailable")
	ErrAlreadyInState        = errors.New("already in requested state")
)

// InsufficientInventoryError reports how many tickets remain so the caller
// can retry with a valid quantity. errors.Is matches ErrInsufficientInventory.
type InsufficientInventoryError struct {
	EventID   int64
	Requested int
	Remaining int
}

func (e *InsufficientInventoryError) Error() string {
	return fmt.Sprintf("insufficient inventory for event %d: requested %d, only %d remaining",
		e.EventID, e.Requested, e.Remaining)
}

func (e *InsufficientInventoryError) Is(target error) bool {
	return target == ErrInsufficientInventory
}
