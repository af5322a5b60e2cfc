package product

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthenticated is returned when a mutation is attempted without an
	// acting vendor session. No backend call is made in that case.
	ErrUnauthenticated = errors.New("no authenticated vendor")

	// ErrOwnershipViolation is returned when the target product belongs to a
	// different vendor. Refused before any quota check.
	ErrOwnershipViolation = errors.New("product belongs to another vendor")

	// ErrNotFound is returned when no product matches the lookup.
	ErrNotFound = errors.New("product not found")

	// ErrProductLimitReached is returned when the vendor's catalog is at its
	// product limit.
	ErrProductLimitReached = errors.New("product limit reached")

	// ErrConfirmationRequired is returned when a delete is attempted without
	// the explicit confirmation step.
	ErrConfirmationRequired = errors.New("delete requires confirmation")
)

// QuotaError reports an edit/delete refusal together with the counter state
// that caused it, so the vendor can self-diagnose the block.
type QuotaError struct {
	Action string
	Used   int
	Limit  int
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("%s quota reached: %d of %d used", e.Action, e.Used, e.Limit)
}
