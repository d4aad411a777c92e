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

// MaxCallDepth is the maximum nesting depth of call frames. A call that
// would exceed it is refused before any frame state is created.
const MaxCallDepth = 1024

type frameStatus int

const (
	frameCreated frameStatus = iota
	frameExecuting
	frameReturned
	frameReverted
	frameFaulted
)

func (s frameStatus) String() string {
	switch s {
	case frameCreated:
		return "created"
	case frameExecuting:
		return "executing"
	case frameReturned:
		return "returned"
	case frameReverted:
		return "reverted"
	case frameFaulted:
		return "faulted"
	}
	return fmt.Sprintf("frameStatus(%d)", s)
}

// frame is one entry of the call stack. Frames live in the stack's arena
// slice and refer to their caller by index, so opening and closing a frame
// never copies or re-links the stack.
type frame struct {
	caller ewasm.Address
	callee ewasm.Address
	kind   ewasm.CallKind
	static bool
	depth  int
	parent int // arena index of the calling frame, -1 for the root
	status frameStatus
	gas    gasMeter
}

// callStack is the arena of active call frames. Every non-root frame owns a
// state overlay pushed at frame creation; closing the frame merges or
// discards that overlay in lock step. The root frame writes directly into
// the transaction's root overlay, which the processor resolves at commit.
type callStack struct {
	frames []frame
	state  ewasm.TransactionContext
}

func newCallStack(state ewasm.TransactionContext) *callStack {
	return &callStack{state: state}
}

func (cs *callStack) active() *frame {
	return &cs.frames[len(cs.frames)-1]
}

// depth reports the nesting depth of the active frame, or -1 if no frame is
// open.
func (cs *callStack) depth() int {
	if len(cs.frames) == 0 {
		return -1
	}
	return cs.active().depth
}

// push opens a new frame with the given gas budget. Non-root frames get a
// fresh state overlay.
func (cs *callStack) push(caller, callee ewasm.Address, kind ewasm.CallKind, static bool, gas ewasm.Gas) error {
	depth, parent := 0, -1
	if len(cs.frames) > 0 {
		parent = len(cs.frames) - 1
		depth = cs.frames[parent].depth + 1
	}
	if depth >= MaxCallDepth {
		return fmt.Errorf("call depth limit of %d exceeded", MaxCallDepth)
	}
	if parent >= 0 {
		cs.state.Push()
	}
	cs.frames = append(cs.frames, frame{
		caller: caller,
		callee: callee,
		kind:   kind,
		static: static,
		depth:  depth,
		parent: parent,
		status: frameCreated,
		gas:    newGasMeter(gas),
	})
	return nil
}

// finish closes the active frame according to the execution outcome. State
// changes are merged into the caller's overlay on success and discarded
// otherwise; a faulting frame additionally forfeits its remaining gas. The
// unused gas is credited back to the calling frame and returned.
func (cs *callStack) finish(status ewasm.Status) ewasm.Gas {
	f := cs.active()
	switch {
	case status == ewasm.StatusSuccess:
		f.status = frameReturned
		if f.parent >= 0 {
			cs.state.PopMerge()
		}
	case status == ewasm.StatusRevert:
		f.status = frameReverted
		if f.parent >= 0 {
			cs.state.PopDiscard()
		}
	default:
		f.status = frameFaulted
		f.gas.ConsumeAll()
		if f.parent >= 0 {
			cs.state.PopDiscard()
		}
	}
	gasLeft := f.gas.Remaining()
	if f.parent >= 0 {
		cs.frames[f.parent].gas.Credit(gasLeft)
	}
	cs.frames = cs.frames[:len(cs.frames)-1]
	return gasLeft
}
