// Copyright (C) 2019-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package claim

import "fmt"

// Error represents an application-level error for a ledger operation
type Error struct {
	Code    int32
	Message string
}

// Error implements the error interface
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("claim error %d: %s", e.Code, e.Message)
}

var (
	// ErrInvalidMessage should be used to indicate that an attested message
	// was not a decodable entitlement envelope or exceeded storage bounds
	ErrInvalidMessage = &Error{
		Code:    -1,
		Message: "invalid message",
	}
	// ErrInvalidForeignEmitter should be used to indicate a registration of
	// a disallowed chain id or emitter address
	ErrInvalidForeignEmitter = &Error{
		Code:    -2,
		Message: "invalid foreign emitter",
	}
	// ErrUnauthorized should be used to indicate that a privileged operation
	// was invoked by an identity other than the administrator
	ErrUnauthorized = &Error{
		Code:    -3,
		Message: "unauthorized",
	}
	// ErrInvalidUser should be used to indicate that a claim named a
	// recipient other than the one on file
	ErrInvalidUser = &Error{
		Code:    -4,
		Message: "invalid user",
	}
	// ErrInvalidOwner should be used to indicate that a claim named a
	// transfer authority other than the configured owner
	ErrInvalidOwner = &Error{
		Code:    -5,
		Message: "invalid owner",
	}
	// ErrInvalidAmount should be used to indicate a claim against a zero
	// entitlement, including an already-claimed one
	ErrInvalidAmount = &Error{
		Code:    -6,
		Message: "zero amount",
	}
	// ErrAlreadyInitialized should be used to indicate a second call to
	// Initialize
	ErrAlreadyInitialized = &Error{
		Code:    -7,
		Message: "already initialized",
	}
	// ErrNotInitialized should be used to indicate an operation that
	// requires an owner before Initialize has set one
	ErrNotInitialized = &Error{
		Code:    -8,
		Message: "not initialized",
	}
)
