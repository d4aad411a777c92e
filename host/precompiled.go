// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/vm"

	"github.com/second-state/ewasm-host/ewasm"
)

// runPrecompiled executes a precompiled contract in the already-opened
// active frame. Precompiles are priced by their own rules rather than the
// host's cost table; a failing precompile faults its frame and consumes the
// forwarded gas.
func (h *hostContext) runPrecompiled(addr ewasm.Address, input ewasm.Data) (ewasm.CallResult, error) {
	contract, ok := vm.PrecompiledContractsIstanbul[common.Address(addr)]
	if !ok {
		// Reserved but unassigned address, behaves like an account
		// without code.
		gasLeft := h.stack.finish(ewasm.StatusSuccess)
		return ewasm.CallResult{GasLeft: gasLeft, Status: ewasm.StatusSuccess}, nil
	}

	frame := h.stack.active()
	frame.status = frameExecuting
	if err := frame.gas.Charge(ewasm.Gas(contract.RequiredGas(input))); err != nil {
		h.stack.finish(ewasm.StatusOutOfGas)
		return ewasm.CallResult{Status: ewasm.StatusOutOfGas}, nil
	}
	output, err := contract.Run(input)
	if err != nil {
		h.stack.finish(ewasm.StatusFailure)
		return ewasm.CallResult{Status: ewasm.StatusFailure}, nil
	}
	gasLeft := h.stack.finish(ewasm.StatusSuccess)
	return ewasm.CallResult{Output: output, GasLeft: gasLeft, Status: ewasm.StatusSuccess}, nil
}
