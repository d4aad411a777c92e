// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

import "fmt"

// ConstError is an error type for constant error values.
type ConstError string

func (e ConstError) Error() string {
	return string(e)
}

const (
	// ErrOutOfGas is reported by host functions once the active frame's gas
	// budget is exhausted. The frame is faulted; its entire budget is
	// consumed.
	ErrOutOfGas = ConstError("out of gas")

	// ErrWriteProtection is reported when a state mutation is attempted
	// within a static frame. Treated as an invalid operation, consuming the
	// frame's entire budget.
	ErrWriteProtection = ConstError("write protection")

	// ErrNonceOverflow is reported when an account nonce cannot be
	// incremented any further.
	ErrNonceOverflow = ConstError("nonce overflow")
)

// Status describes how a frame execution ended. Everything but
// StatusSuccess and StatusRevert is a fault: the frame's full gas budget is
// consumed. A revert is a deliberate signal carrying output data; only the
// gas used so far is lost, the remainder is returned to the caller.
type Status int

const (
	StatusSuccess Status = iota
	StatusRevert
	StatusOutOfGas
	StatusInvalidOperation
	StatusDepthExceeded
	StatusInsufficientBalance
	StatusFailure
)

// IsFault returns true for abnormal terminations that consume the frame's
// entire gas budget. Depth and balance refusals happen before a child frame
// is created and are therefore not faults of any frame.
func (s Status) IsFault() bool {
	switch s {
	case StatusOutOfGas, StatusInvalidOperation, StatusFailure:
		return true
	}
	return false
}

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusRevert:
		return "revert"
	case StatusOutOfGas:
		return "out_of_gas"
	case StatusInvalidOperation:
		return "invalid_operation"
	case StatusDepthExceeded:
		return "depth_exceeded"
	case StatusInsufficientBalance:
		return "insufficient_balance"
	case StatusFailure:
		return "failure"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}
