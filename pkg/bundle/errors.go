// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package bundle

import (
	"errors"
	"fmt"
)

// ErrorType represents the category of bundle verification error.
type ErrorType int

const (
	// ErrTypeUnknown indicates an unclassified error.
	ErrTypeUnknown ErrorType = iota

	// ErrTypeDecode indicates malformed or structurally-incomplete input.
	// Recoverable only by supplying corrected input.
	ErrTypeDecode

	// ErrTypeSignatureMismatch indicates the canonical payload bytes did not
	// validate against the supplied signature and key. This is an
	// authenticity failure and is always terminal.
	ErrTypeSignatureMismatch

	// ErrTypeInternal indicates canonicalization or encoding failed on an
	// already-validated value. This is a defect in this library, not a
	// property of the input, and must never be mistaken for a forgery.
	ErrTypeInternal

	// ErrTypeConfiguration indicates unusable caller-supplied material, such
	// as an unsupported public key type.
	ErrTypeConfiguration
)

// String returns a human-readable name for the error type.
func (e ErrorType) String() string {
	switch e {
	case ErrTypeDecode:
		return "DecodeError"
	case ErrTypeSignatureMismatch:
		return "SignatureMismatch"
	case ErrTypeInternal:
		return "InternalError"
	case ErrTypeConfiguration:
		return "ConfigurationError"
	default:
		return "UnknownError"
	}
}

// VerificationError is a structured error type for bundle decode and
// verification failures.
//
// The Type field lets callers distinguish "the input is malformed"
// (ErrTypeDecode) from "the signature does not match" (ErrTypeSignatureMismatch)
// from "this library misbehaved" (ErrTypeInternal) without string matching:
//
//	var verr *bundle.VerificationError
//	if errors.As(err, &verr) && verr.Type == bundle.ErrTypeSignatureMismatch {
//	    // authenticity failure
//	}
type VerificationError struct {
	// Type categorizes the error for programmatic handling.
	Type ErrorType

	// Field is the wire field related to the error, if any.
	Field string

	// Message is a human-readable description of what went wrong.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *VerificationError) Error() string {
	if e.Field != "" && e.Cause != nil {
		return fmt.Sprintf("%s: %s (field: %s): %v", e.Type, e.Message, e.Field, e.Cause)
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (field: %s)", e.Type, e.Message, e.Field)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause for error chain unwrapping.
func (e *VerificationError) Unwrap() error {
	return e.Cause
}

// NewError creates a new verification error.
func NewError(errType ErrorType, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewFieldError creates a new verification error tied to a wire field.
func NewFieldError(errType ErrorType, field, message string, cause error) *VerificationError {
	return &VerificationError{
		Type:    errType,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is a VerificationError of a specific type.
func IsType(err error, errType ErrorType) bool {
	var verr *VerificationError
	if errors.As(err, &verr) {
		return verr.Type == errType
	}
	return false
}
