// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"fmt"

	"github.com/second-state/ewasm-host/ewasm"
)

// gasMeter tracks the remaining gas budget of a single call frame. A failed
// charge consumes the entire remaining budget, so that a faulting frame
// never returns gas to its caller.
type gasMeter struct {
	remaining ewasm.Gas
}

func newGasMeter(limit ewasm.Gas) gasMeter {
	return gasMeter{remaining: limit}
}

// Charge deducts amount from the budget. If the budget is insufficient it
// zeroes the meter and reports ewasm.ErrOutOfGas.
func (m *gasMeter) Charge(amount ewasm.Gas) error {
	if amount < 0 {
		panic(fmt.Sprintf("negative gas charge: %d", amount))
	}
	if amount > m.remaining {
		m.remaining = 0
		return ewasm.ErrOutOfGas
	}
	m.remaining -= amount
	return nil
}

// Credit returns gas to the budget, typically unused gas handed back by a
// completed child frame.
func (m *gasMeter) Credit(amount ewasm.Gas) {
	m.remaining += amount
}

// CapAt lowers the budget to limit if the meter currently holds more. Used
// to reconcile the host-side meter with the gas an engine reports left.
func (m *gasMeter) CapAt(limit ewasm.Gas) {
	if limit < 0 {
		limit = 0
	}
	if limit < m.remaining {
		m.remaining = limit
	}
}

// ConsumeAll zeroes the budget.
func (m *gasMeter) ConsumeAll() {
	m.remaining = 0
}

func (m *gasMeter) Remaining() ewasm.Gas {
	return m.remaining
}
