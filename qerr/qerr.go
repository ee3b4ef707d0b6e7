//
// Copyright (c) 2026 Markku Rossi
//
// All rights reserved.
//

// Package qerr defines the errors reported by the simulator
// packages. All errors except ErrInvariant are caller input errors:
// they are reported immediately and retrying the same input yields
// the same error. ErrInvariant signals a defect in the gate
// arithmetic and is never recoverable.
package qerr

import (
	"errors"
)

// Caller input errors.
var (
	ErrInvalidSize     = errors.New("invalid size")
	ErrIndexOutOfRange = errors.New("qubit index out of range")
	ErrDuplicateQubit  = errors.New("duplicate qubit")
	ErrFrozenCircuit   = errors.New("circuit is finalized")
	ErrNotFinalized    = errors.New("circuit is not finalized")
	ErrEmptyShotCount  = errors.New("shot count must be positive")
	ErrInvalidQubitSet = errors.New("invalid qubit set")
	ErrNegativeOperand = errors.New("negative operand")
	ErrInvalidGate     = errors.New("invalid gate")
)

// ErrInvariant is the fatal class error for internal invariant
// violations, such as a register that is no longer normalized.
var ErrInvariant = errors.New("internal invariant violated")

// IsFatal tests if the error is an internal invariant violation.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInvariant)
}
