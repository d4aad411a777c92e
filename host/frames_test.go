// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"testing"

	"github.com/second-state/ewasm-host/ewasm"
	"github.com/second-state/ewasm-host/state"
)

var (
	addrA = ewasm.Address{0xaa}
	addrB = ewasm.Address{0xbb}
	addrC = ewasm.Address{0xcc}
	keyK  = ewasm.Key{0x01}
	wordW = ewasm.Word{0x01}
)

func TestCallStack_FramesTrackDepthAndParent(t *testing.T) {
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)

	if err := stack.push(addrA, addrB, ewasm.Call, false, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := stack.push(addrB, addrC, ewasm.StaticCall, true, 50); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	frame := stack.active()
	if frame.depth != 1 || frame.parent != 0 || !frame.static {
		t.Errorf("unexpected frame: %+v", frame)
	}
	if want, got := 1, txState.Depth(); want != got {
		t.Errorf("child frame must own an overlay, wanted depth %v, got %v", want, got)
	}
}

func TestCallStack_SuccessMergesStateAndReturnsGas(t *testing.T) {
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)

	_ = stack.push(addrA, addrB, ewasm.Call, false, 100)
	_ = stack.push(addrB, addrC, ewasm.Call, false, 50)
	txState.SetStorage(addrC, keyK, wordW)
	_ = stack.active().gas.Charge(20)

	gasLeft := stack.finish(ewasm.StatusSuccess)

	if want, got := ewasm.Gas(30), gasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %v, got %v", want, got)
	}
	if want, got := ewasm.Gas(130), stack.active().gas.Remaining(); want != got {
		t.Errorf("unused gas not credited to the caller, wanted %v, got %v", want, got)
	}
	if want, got := wordW, txState.GetStorage(addrC, keyK); want != got {
		t.Errorf("child writes lost, wanted %v, got %v", want, got)
	}
	if want, got := 0, txState.Depth(); want != got {
		t.Errorf("overlay not resolved, wanted depth %v, got %v", want, got)
	}
}

func TestCallStack_RevertDiscardsStateButReturnsGas(t *testing.T) {
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)

	_ = stack.push(addrA, addrB, ewasm.Call, false, 100)
	_ = stack.push(addrB, addrC, ewasm.Call, false, 50)
	txState.SetStorage(addrC, keyK, wordW)
	_ = stack.active().gas.Charge(20)

	gasLeft := stack.finish(ewasm.StatusRevert)

	if want, got := ewasm.Gas(30), gasLeft; want != got {
		t.Errorf("revert must preserve unused gas, wanted %v, got %v", want, got)
	}
	if got := txState.GetStorage(addrC, keyK); got != (ewasm.Word{}) {
		t.Errorf("reverted writes must be discarded, got %v", got)
	}
}

func TestCallStack_FaultConsumesTheEntireBudget(t *testing.T) {
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)

	_ = stack.push(addrA, addrB, ewasm.Call, false, 100)
	_ = stack.push(addrB, addrC, ewasm.Call, false, 50)

	gasLeft := stack.finish(ewasm.StatusOutOfGas)

	if want, got := ewasm.Gas(0), gasLeft; want != got {
		t.Errorf("fault must consume the child budget, got %v", got)
	}
	if want, got := ewasm.Gas(100), stack.active().gas.Remaining(); want != got {
		t.Errorf("caller must not regain faulted gas, wanted %v, got %v", want, got)
	}
}

func TestCallStack_DepthLimitIsEnforced(t *testing.T) {
	txState := state.NewTransactionState(state.NewMemoryStore())
	stack := newCallStack(txState)

	for i := 0; i < MaxCallDepth; i++ {
		if err := stack.push(addrA, addrB, ewasm.Call, false, 0); err != nil {
			t.Fatalf("push %d failed unexpectedly: %v", i, err)
		}
	}
	if err := stack.push(addrA, addrB, ewasm.Call, false, 0); err == nil {
		t.Errorf("expected push beyond the depth limit to fail")
	}
}
