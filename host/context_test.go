// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"errors"
	"testing"

	"github.com/second-state/ewasm-host/ewasm"
	"github.com/second-state/ewasm-host/state"
)

// newTestContext builds a host context over an in-memory state with a single
// open root frame holding the given gas budget.
func newTestContext(t *testing.T, gas ewasm.Gas, static bool) (*hostContext, *state.TransactionState) {
	t.Helper()
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)
	if err := stack.push(addrA, addrB, ewasm.Call, static, gas); err != nil {
		t.Fatalf("failed to open root frame: %v", err)
	}
	return &hostContext{
		state: txState,
		stack: stack,
		costs: DefaultCostTable(),
	}, txState
}

func TestHostContext_UseGasChargesTheActiveFrame(t *testing.T) {
	host, _ := newTestContext(t, 100, false)

	if err := host.UseGas(40); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := ewasm.Gas(60), host.stack.active().gas.Remaining(); want != got {
		t.Errorf("unexpected remaining gas, wanted %v, got %v", want, got)
	}
	if err := host.UseGas(61); !errors.Is(err, ewasm.ErrOutOfGas) {
		t.Fatalf("expected out-of-gas error, got %v", err)
	}
}

func TestHostContext_SetStoragePricesByTransition(t *testing.T) {
	costs := DefaultCostTable()

	tests := map[string]struct {
		prepare func(*state.TransactionState)
		value   ewasm.Word
		cost    ewasm.Gas
	}{
		"fresh slot set": {
			prepare: func(*state.TransactionState) {},
			value:   wordW,
			cost:    costs.StorageSet,
		},
		"fresh slot noop": {
			prepare: func(*state.TransactionState) {},
			value:   ewasm.Word{},
			cost:    costs.StorageRead,
		},
		"dirty slot rewrite": {
			prepare: func(s *state.TransactionState) {
				s.SetStorage(addrB, keyK, ewasm.Word{0x07})
			},
			value: wordW,
			cost:  costs.StorageRead,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			host, txState := newTestContext(t, 1_000_000, false)
			test.prepare(txState)

			before := host.stack.active().gas.Remaining()
			if _, err := host.SetStorage(addrB, keyK, test.value); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := test.cost, before-host.stack.active().gas.Remaining(); want != got {
				t.Errorf("unexpected charge, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestHostContext_SetStorageOfCommittedSlots(t *testing.T) {
	costs := DefaultCostTable()
	store := state.NewMemoryStore()
	store.SetStorage(addrB, keyK, wordW)
	txState := state.NewTransactionState(store)
	stack := newCallStack(txState)
	if err := stack.push(addrA, addrB, ewasm.Call, false, 1_000_000); err != nil {
		t.Fatalf("failed to open root frame: %v", err)
	}
	host := &hostContext{state: txState, stack: stack, costs: costs}

	before := stack.active().gas.Remaining()
	status, err := host.SetStorage(addrB, keyK, ewasm.Word{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := ewasm.StorageDeleted, status; want != got {
		t.Errorf("unexpected status, wanted %v, got %v", want, got)
	}
	if want, got := costs.StorageReset, before-stack.active().gas.Remaining(); want != got {
		t.Errorf("unexpected charge, wanted %v, got %v", want, got)
	}
	if want, got := costs.StorageRefund, txState.GetRefund(); want != got {
		t.Errorf("deleting a slot must earn a refund, wanted %v, got %v", want, got)
	}
}

func TestHostContext_StaticFramesRejectMutations(t *testing.T) {
	host, txState := newTestContext(t, 1_000_000, true)

	before := host.stack.active().gas.Remaining()

	if _, err := host.SetStorage(addrB, keyK, wordW); !errors.Is(err, ewasm.ErrWriteProtection) {
		t.Errorf("expected write protection error, got %v", err)
	}
	if err := host.EmitLog(ewasm.Log{Address: addrB}); !errors.Is(err, ewasm.ErrWriteProtection) {
		t.Errorf("expected write protection error, got %v", err)
	}
	if err := host.SelfDestruct(addrB, addrA); !errors.Is(err, ewasm.ErrWriteProtection) {
		t.Errorf("expected write protection error, got %v", err)
	}

	if got := host.stack.active().gas.Remaining(); got != before {
		t.Errorf("refused mutations must not be charged, lost %v gas", before-got)
	}
	if got := txState.GetLogs(); len(got) != 0 {
		t.Errorf("log emitted despite write protection: %v", got)
	}
}

func TestHostContext_ReadsAreStillAllowedInStaticFrames(t *testing.T) {
	host, txState := newTestContext(t, 1_000_000, true)
	txState.SetBalance(addrB, ewasm.NewValue(7))

	balance, err := host.GetBalance(addrB)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := ewasm.NewValue(7), balance; want != got {
		t.Errorf("unexpected balance, wanted %v, got %v", want, got)
	}
}

func TestHostContext_EmitLogPricesTopicsAndData(t *testing.T) {
	host, txState := newTestContext(t, 1_000_000, false)
	costs := host.costs

	log := ewasm.Log{
		Address: addrB,
		Topics:  []ewasm.Hash{{1}, {2}},
		Data:    []byte{1, 2, 3},
	}
	before := host.stack.active().gas.Remaining()
	if err := host.EmitLog(log); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := costs.LogBase + 2*costs.LogTopic + 3*costs.LogData
	if got := before - host.stack.active().gas.Remaining(); want != got {
		t.Errorf("unexpected charge, wanted %v, got %v", want, got)
	}
	if got := txState.GetLogs(); len(got) != 1 {
		t.Fatalf("log not recorded: %v", got)
	}
}

func TestHostContext_GetTxContextBundlesEnvironmentData(t *testing.T) {
	host, _ := newTestContext(t, 100, false)
	host.block = ewasm.BlockParameters{
		ChainID:     ewasm.Word{31: 42},
		BlockNumber: 12,
		Timestamp:   34,
		Coinbase:    addrC,
		GasLimit:    1000,
	}
	host.transaction = ewasm.TransactionParameters{
		Origin:   addrA,
		GasPrice: ewasm.NewValue(2),
	}

	context := host.GetTxContext()
	if context.BlockNumber != 12 || context.Timestamp != 34 ||
		context.Coinbase != addrC || context.Origin != addrA ||
		context.GasPrice != ewasm.NewValue(2) || context.ChainID != (ewasm.Word{31: 42}) {
		t.Errorf("unexpected transaction context: %+v", context)
	}
}

func TestHostContext_GetBlockHashHonorsTheVisibilityWindow(t *testing.T) {
	known := ewasm.Hash{0x0f}
	host, _ := newTestContext(t, 1_000_000, false)
	host.block.BlockNumber = 1000
	host.blockHashes = func(number int64) ewasm.Hash {
		return known
	}

	tests := map[string]struct {
		number int64
		want   ewasm.Hash
	}{
		"previous block":      {999, known},
		"oldest in window":    {1000 - blockHashWindow, known},
		"beyond window":       {1000 - blockHashWindow - 1, ewasm.Hash{}},
		"current block":       {1000, ewasm.Hash{}},
		"future block":        {1234, ewasm.Hash{}},
		"negative number":     {-1, ewasm.Hash{}},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.want, host.GetBlockHash(test.number); want != got {
				t.Errorf("unexpected hash, wanted %v, got %v", want, got)
			}
		})
	}
}

func TestHostContext_GetBlockHashWithoutSourceIsZero(t *testing.T) {
	host, _ := newTestContext(t, 1_000_000, false)
	host.block.BlockNumber = 10
	if got := host.GetBlockHash(9); got != (ewasm.Hash{}) {
		t.Errorf("expected zero hash without a source, got %v", got)
	}
}
