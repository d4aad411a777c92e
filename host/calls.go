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
	"math"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/second-state/ewasm-host/ewasm"
)

// maxCodeSize is the upper bound on deployed contract code, per EIP-170.
const maxCodeSize = 24576

// executeCall validates and prices a nested call request, forwards gas
// according to the all-but-one-64th rule, and runs the callee in a child
// frame. Depth and balance refusals are reported through the result status
// without opening a frame; the full requested gas stays with the caller.
func (h *hostContext) executeCall(kind ewasm.CallKind, p ewasm.CallParameters) (ewasm.CallResult, error) {
	if h.stack.active().static && kind == ewasm.Call && !p.Value.IsZero() {
		return ewasm.CallResult{}, ewasm.ErrWriteProtection
	}

	cost := h.costs.Call
	withValue := (kind == ewasm.Call || kind == ewasm.CallCode) && !p.Value.IsZero()
	if withValue {
		cost += h.costs.CallValueTransfer
	}
	if err := h.charge(cost); err != nil {
		return ewasm.CallResult{}, err
	}

	if h.stack.depth()+1 >= MaxCallDepth {
		return ewasm.CallResult{Status: ewasm.StatusDepthExceeded, GasLeft: p.Gas}, nil
	}
	if withValue && h.state.GetBalance(p.Sender).Cmp(p.Value) < 0 {
		return ewasm.CallResult{Status: ewasm.StatusInsufficientBalance, GasLeft: p.Gas}, nil
	}

	forward := h.forwardGas(p.Gas)
	if err := h.charge(forward); err != nil {
		return ewasm.CallResult{}, err
	}

	codeAddress := p.Recipient
	if kind == ewasm.DelegateCall || kind == ewasm.CallCode {
		codeAddress = p.CodeAddress
	}
	static := h.stack.active().static || kind == ewasm.StaticCall
	transfer := kind == ewasm.Call && !p.Value.IsZero()

	return h.runCallFrame(kind, p.Sender, p.Recipient, codeAddress, p.Input, p.Value, forward, static, transfer)
}

// forwardGas bounds a requested child budget by all-but-one-64th of the
// caller's remaining gas.
func (h *hostContext) forwardGas(requested ewasm.Gas) ewasm.Gas {
	available := h.stack.active().gas.Remaining()
	limit := available - available/64
	if requested < limit {
		return requested
	}
	return limit
}

// runCallFrame opens a child frame with the given gas budget and executes
// the callee's code in it. The caller has already charged all call costs and
// debited the forwarded gas; unused gas flows back to the caller's meter
// when the frame is closed.
func (h *hostContext) runCallFrame(
	kind ewasm.CallKind,
	sender, recipient, codeAddress ewasm.Address,
	input ewasm.Data,
	value ewasm.Value,
	gas ewasm.Gas,
	static bool,
	transfer bool,
) (ewasm.CallResult, error) {
	if err := h.stack.push(sender, recipient, kind, static, gas); err != nil {
		return ewasm.CallResult{}, err
	}
	if transfer {
		h.transferValue(sender, recipient, value)
	}

	if ewasm.IsPrecompiled(codeAddress) {
		return h.runPrecompiled(codeAddress, input)
	}

	code := h.state.GetCode(codeAddress)
	if len(code) == 0 {
		// Calls to accounts without code succeed trivially.
		gasLeft := h.stack.finish(ewasm.StatusSuccess)
		return ewasm.CallResult{GasLeft: gasLeft, Status: ewasm.StatusSuccess}, nil
	}
	codeHash := h.state.GetCodeHash(codeAddress)

	h.stack.active().status = frameExecuting
	result, err := h.engine.Run(ewasm.Parameters{
		BlockParameters:       h.block,
		TransactionParameters: h.transaction,
		Host:                  h,
		Kind:                  kind,
		Static:                static,
		Depth:                 h.stack.depth(),
		Gas:                   gas,
		Recipient:             recipient,
		Sender:                sender,
		Input:                 input,
		Value:                 value,
		CodeHash:              &codeHash,
		Code:                  code,
	})
	if err != nil {
		h.stack.finish(ewasm.StatusFailure)
		return ewasm.CallResult{}, fmt.Errorf("engine run failed: %w", err)
	}

	if result.Status == ewasm.StatusSuccess || result.Status == ewasm.StatusRevert {
		h.stack.active().gas.CapAt(result.GasLeft)
	}
	gasLeft := h.stack.finish(result.Status)
	return ewasm.CallResult{Output: result.Output, GasLeft: gasLeft, Status: result.Status}, nil
}

// executeCreate validates and prices a contract creation request and runs
// the initialization code in a child frame bound to the derived address.
func (h *hostContext) executeCreate(kind ewasm.CallKind, p ewasm.CallParameters) (ewasm.CallResult, error) {
	if err := h.checkWritable(); err != nil {
		return ewasm.CallResult{}, err
	}
	if err := h.charge(h.costs.Create); err != nil {
		return ewasm.CallResult{}, err
	}

	if h.stack.depth()+1 >= MaxCallDepth {
		return ewasm.CallResult{Status: ewasm.StatusDepthExceeded, GasLeft: p.Gas}, nil
	}
	if !p.Value.IsZero() && h.state.GetBalance(p.Sender).Cmp(p.Value) < 0 {
		return ewasm.CallResult{Status: ewasm.StatusInsufficientBalance, GasLeft: p.Gas}, nil
	}

	nonce := h.state.GetNonce(p.Sender)
	if nonce == math.MaxUint64 {
		return ewasm.CallResult{Status: ewasm.StatusFailure}, nil
	}
	h.state.SetNonce(p.Sender, nonce+1)

	forward := h.forwardGas(p.Gas)
	if err := h.charge(forward); err != nil {
		return ewasm.CallResult{}, err
	}

	return h.runCreateFrame(kind, p.Sender, nonce, p.Value, ewasm.Code(p.Input), p.Salt, forward)
}

// runCreateFrame derives the address of the new contract, runs its
// initialization code in a child frame, and deploys the produced code. The
// sender's nonce has already been advanced; nonce is its value before the
// increment, as used for classic address derivation.
func (h *hostContext) runCreateFrame(
	kind ewasm.CallKind,
	sender ewasm.Address,
	nonce uint64,
	value ewasm.Value,
	initCode ewasm.Code,
	salt ewasm.Hash,
	gas ewasm.Gas,
) (ewasm.CallResult, error) {
	created := createAddress(kind, sender, nonce, salt, initCode)
	if h.state.GetNonce(created) != 0 || h.state.GetCodeSize(created) != 0 {
		// Address collision, the forwarded gas is lost.
		return ewasm.CallResult{Status: ewasm.StatusFailure}, nil
	}

	if err := h.stack.push(sender, created, kind, false, gas); err != nil {
		return ewasm.CallResult{}, err
	}
	h.state.SetNonce(created, 1)
	if !value.IsZero() {
		h.transferValue(sender, created, value)
	}

	h.stack.active().status = frameExecuting
	result, err := h.engine.Run(ewasm.Parameters{
		BlockParameters:       h.block,
		TransactionParameters: h.transaction,
		Host:                  h,
		Kind:                  kind,
		Depth:                 h.stack.depth(),
		Gas:                   gas,
		Recipient:             created,
		Sender:                sender,
		Value:                 value,
		Code:                  initCode,
	})
	if err != nil {
		h.stack.finish(ewasm.StatusFailure)
		return ewasm.CallResult{}, fmt.Errorf("engine run failed: %w", err)
	}

	switch result.Status {
	case ewasm.StatusSuccess:
		if len(result.Output) > maxCodeSize {
			h.stack.finish(ewasm.StatusFailure)
			return ewasm.CallResult{Status: ewasm.StatusFailure}, nil
		}
		frame := h.stack.active()
		frame.gas.CapAt(result.GasLeft)
		deposit := h.costs.CreateData * ewasm.Gas(len(result.Output))
		if err := frame.gas.Charge(deposit); err != nil {
			h.stack.finish(ewasm.StatusOutOfGas)
			return ewasm.CallResult{Status: ewasm.StatusOutOfGas}, nil
		}
		h.state.SetCode(created, ewasm.Code(result.Output))
		gasLeft := h.stack.finish(ewasm.StatusSuccess)
		return ewasm.CallResult{
			GasLeft:        gasLeft,
			CreatedAddress: created,
			Status:         ewasm.StatusSuccess,
		}, nil

	case ewasm.StatusRevert:
		h.stack.active().gas.CapAt(result.GasLeft)
		gasLeft := h.stack.finish(ewasm.StatusRevert)
		return ewasm.CallResult{Output: result.Output, GasLeft: gasLeft, Status: ewasm.StatusRevert}, nil

	default:
		gasLeft := h.stack.finish(result.Status)
		return ewasm.CallResult{Status: result.Status, GasLeft: gasLeft}, nil
	}
}

// transferValue moves chain currency between two accounts in the active
// overlay. The caller is responsible for the balance check.
func (h *hostContext) transferValue(from, to ewasm.Address, amount ewasm.Value) {
	if from == to || amount.IsZero() {
		return
	}
	h.state.SetBalance(from, ewasm.Sub(h.state.GetBalance(from), amount))
	h.state.SetBalance(to, ewasm.Add(h.state.GetBalance(to), amount))
}

// createAddress derives the address of a new contract: from sender and
// nonce for classic creates, and from sender, salt and the hash of the
// initialization code for Create2.
func createAddress(
	kind ewasm.CallKind,
	sender ewasm.Address,
	nonce uint64,
	salt ewasm.Hash,
	initCode ewasm.Code,
) ewasm.Address {
	if kind == ewasm.Create2 {
		initHash := crypto.Keccak256(initCode)
		return ewasm.Address(crypto.CreateAddress2(common.Address(sender), salt, initHash))
	}
	return ewasm.Address(crypto.CreateAddress(common.Address(sender), nonce))
}
