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

// BlockHashFunc resolves the hash of a past block by number. Implementations
// are provided by the embedding chain; a nil function makes every lookup
// yield the zero hash.
type BlockHashFunc func(number int64) ewasm.Hash

// blockHashWindow is the number of most recent blocks whose hashes are
// observable by contracts.
const blockHashWindow = 256

// hostContext is the bridge handed to the engine for the duration of one
// transaction. It implements ewasm.HostContext by charging every host
// function against the active frame's gas budget before routing it to the
// transaction's overlay state, and by running nested calls as new frames on
// the shared call stack.
type hostContext struct {
	engine      ewasm.Engine
	state       ewasm.TransactionContext
	stack       *callStack
	costs       CostTable
	block       ewasm.BlockParameters
	transaction ewasm.TransactionParameters
	blockHashes BlockHashFunc
}

var _ ewasm.HostContext = (*hostContext)(nil)

// charge debits the active frame's gas budget.
func (h *hostContext) charge(amount ewasm.Gas) error {
	return h.stack.active().gas.Charge(amount)
}

// checkWritable reports ErrWriteProtection if the active frame is static.
func (h *hostContext) checkWritable() error {
	if h.stack.active().static {
		return ewasm.ErrWriteProtection
	}
	return nil
}

func (h *hostContext) UseGas(amount ewasm.Gas) error {
	return h.charge(amount)
}

func (h *hostContext) AccountExists(addr ewasm.Address) (bool, error) {
	if err := h.charge(h.costs.AccountAccess); err != nil {
		return false, err
	}
	return h.state.AccountExists(addr), nil
}

func (h *hostContext) GetStorage(addr ewasm.Address, key ewasm.Key) (ewasm.Word, error) {
	if err := h.charge(h.costs.StorageRead); err != nil {
		return ewasm.Word{}, err
	}
	return h.state.GetStorage(addr, key), nil
}

func (h *hostContext) SetStorage(addr ewasm.Address, key ewasm.Key, value ewasm.Word) (ewasm.StorageStatus, error) {
	if err := h.checkWritable(); err != nil {
		return ewasm.StorageAssigned, err
	}
	original := h.state.GetCommittedStorage(addr, key)
	current := h.state.GetStorage(addr, key)
	status := ewasm.GetStorageStatus(original, current, value)
	if err := h.charge(h.costs.storageWriteCost(status)); err != nil {
		return status, err
	}
	if current != (ewasm.Word{}) && value == (ewasm.Word{}) {
		h.state.AddRefund(h.costs.StorageRefund)
	}
	h.state.SetStorage(addr, key, value)
	return status, nil
}

func (h *hostContext) GetBalance(addr ewasm.Address) (ewasm.Value, error) {
	if err := h.charge(h.costs.AccountAccess); err != nil {
		return ewasm.Value{}, err
	}
	return h.state.GetBalance(addr), nil
}

func (h *hostContext) GetCode(addr ewasm.Address) (ewasm.Code, error) {
	if err := h.charge(h.costs.AccountAccess); err != nil {
		return nil, err
	}
	return h.state.GetCode(addr), nil
}

func (h *hostContext) GetCodeSize(addr ewasm.Address) (int, error) {
	if err := h.charge(h.costs.AccountAccess); err != nil {
		return 0, err
	}
	return h.state.GetCodeSize(addr), nil
}

func (h *hostContext) GetCodeHash(addr ewasm.Address) (ewasm.Hash, error) {
	if err := h.charge(h.costs.AccountAccess); err != nil {
		return ewasm.Hash{}, err
	}
	return h.state.GetCodeHash(addr), nil
}

func (h *hostContext) EmitLog(log ewasm.Log) error {
	if err := h.checkWritable(); err != nil {
		return err
	}
	cost := h.costs.LogBase +
		h.costs.LogTopic*ewasm.Gas(len(log.Topics)) +
		h.costs.LogData*ewasm.Gas(len(log.Data))
	if err := h.charge(cost); err != nil {
		return err
	}
	h.state.EmitLog(log)
	return nil
}

func (h *hostContext) SelfDestruct(addr, beneficiary ewasm.Address) error {
	if err := h.checkWritable(); err != nil {
		return err
	}
	if err := h.charge(h.costs.SelfDestruct); err != nil {
		return err
	}
	h.state.SelfDestruct(addr, beneficiary)
	return nil
}

func (h *hostContext) GetTxContext() ewasm.TxContext {
	return ewasm.TxContext{
		GasPrice:    h.transaction.GasPrice,
		Origin:      h.transaction.Origin,
		Coinbase:    h.block.Coinbase,
		BlockNumber: h.block.BlockNumber,
		Timestamp:   h.block.Timestamp,
		GasLimit:    h.block.GasLimit,
		Difficulty:  h.block.Difficulty,
		ChainID:     h.block.ChainID,
	}
}

func (h *hostContext) GetBlockHash(number int64) ewasm.Hash {
	if err := h.charge(h.costs.BlockHash); err != nil {
		// The meter is zeroed; the engine observes the fault on its next
		// metered host call.
		return ewasm.Hash{}
	}
	if h.blockHashes == nil {
		return ewasm.Hash{}
	}
	if number < 0 || number >= h.block.BlockNumber {
		return ewasm.Hash{}
	}
	if h.block.BlockNumber-number > blockHashWindow {
		return ewasm.Hash{}
	}
	return h.blockHashes(number)
}

func (h *hostContext) Call(kind ewasm.CallKind, parameters ewasm.CallParameters) (ewasm.CallResult, error) {
	switch kind {
	case ewasm.Call, ewasm.CallCode, ewasm.DelegateCall, ewasm.StaticCall:
		return h.executeCall(kind, parameters)
	case ewasm.Create, ewasm.Create2:
		return h.executeCreate(kind, parameters)
	}
	return ewasm.CallResult{}, fmt.Errorf("unsupported call kind: %v", kind)
}
