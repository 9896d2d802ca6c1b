// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2024 The Vantachain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package blockchain

import "fmt"

// ErrorCode identifies a kind of rule violation, matching the error kinds
// enumerated in spec.md §7.
type ErrorCode int

const (
	// ErrMalformed covers decode, length, and magic failures.
	ErrMalformed ErrorCode = iota

	// ErrInvalidHeader covers header-level stateless check failures: work,
	// signature, time, Merkle root.
	ErrInvalidHeader

	// ErrInvalidContext covers contextual check failures: height,
	// difficulty, checkpoint compliance.
	ErrInvalidContext

	// ErrMissingParent indicates the block's parent is not yet known.
	ErrMissingParent

	// ErrDuplicateBlock indicates the block was already accepted.
	ErrDuplicateBlock

	// ErrShutdown indicates the chain core is shutting down and refused
	// further acceptance.
	ErrShutdown

	// ErrInternal indicates a violated invariant; always fatal.
	ErrInternal
)

var errorCodeStrings = map[ErrorCode]string{
	ErrMalformed:      "ErrMalformed",
	ErrInvalidHeader:  "ErrInvalidHeader",
	ErrInvalidContext: "ErrInvalidContext",
	ErrMissingParent:  "ErrMissingParent",
	ErrDuplicateBlock: "ErrDuplicateBlock",
	ErrShutdown:       "ErrShutdown",
	ErrInternal:       "ErrInternal",
}

// String returns the ErrorCode's constant name.
func (e ErrorCode) String() string {
	if s, ok := errorCodeStrings[e]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(e))
}

// RuleError carries an ErrorCode plus a human-readable description, the
// error type every stateless and contextual check in this package returns.
type RuleError struct {
	ErrorCode   ErrorCode
	Description string
}

// Error satisfies the error interface.
func (e RuleError) Error() string {
	return e.Description
}

// ruleError creates a RuleError from the given code and formatted
// description.
func ruleError(c ErrorCode, desc string) RuleError {
	return RuleError{ErrorCode: c, Description: desc}
}

// AssertError identifies an error that indicates an internal code
// consistency issue, matching ErrInternal's "invariants were violated"
// policy in spec.md §7.
type AssertError string

// Error satisfies the error interface.
func (e AssertError) Error() string {
	return "assertion failed: " + string(e)
}
