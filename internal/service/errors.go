package service

import (
	"errors"
	"fmt"
)

// Canonical ledger error codes. Every domain failure maps onto one of these
// three; there are no richer error payloads.
const (
	CodeNotFound      uint = 101
	CodeAlreadyExists uint = 102
	CodeUnauthorized  uint = 103
)

// LedgerError is a domain failure surfaced to callers with its numeric code.
// A failed operation leaves all entities exactly as they were before the
// call; the surrounding transaction rolls every staged write back.
type LedgerError struct {
	Code    uint
	Message string
}

func (e *LedgerError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

var (
	// ErrNotFound indicates a referenced profile, course, enrollment or post
	// does not exist.
	ErrNotFound = &LedgerError{Code: CodeNotFound, Message: "entity not found"}

	// ErrAlreadyExists indicates an attempt to create an entity that already
	// exists for its key, or to re-apply a one-way transition.
	ErrAlreadyExists = &LedgerError{Code: CodeAlreadyExists, Message: "entity already exists"}

	// ErrUnauthorized indicates the caller lacks the required role. A few
	// input checks (platform fee above 100, out-of-range progress, withdrawal
	// over balance) fold into this code as well; the conflation is kept for
	// compatibility with the on-ledger error surface.
	ErrUnauthorized = &LedgerError{Code: CodeUnauthorized, Message: "unauthorized"}
)

// LedgerCode extracts the numeric code from a ledger error, if err is one.
func LedgerCode(err error) (uint, bool) {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Code, true
	}
	return 0, false
}
