// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package state

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/second-state/ewasm-host/ewasm"
)

// TransactionState is the state of one transaction in flight. It implements
// ewasm.TransactionContext on top of a chain of frame-scoped overlays backed
// by an AccountStore. A transaction is strictly single-threaded; the type is
// not safe for concurrent use.
type TransactionState struct {
	store  AccountStore
	active *overlay
}

var _ ewasm.TransactionContext = (*TransactionState)(nil)

// NewTransactionState opens a transaction over the given store with a fresh
// root overlay.
func NewTransactionState(store AccountStore) *TransactionState {
	return &TransactionState{
		store:  store,
		active: newOverlay(nil),
	}
}

// Push opens a new frame overlay on top of the active one.
func (s *TransactionState) Push() {
	s.active = newOverlay(s.active)
}

// PopMerge folds the active overlay into its parent and resumes the parent
// as active.
func (s *TransactionState) PopMerge() {
	if s.active.parent == nil {
		panic("cannot pop the root overlay")
	}
	s.active.mergeIntoParent()
	s.active = s.active.parent
}

// PopDiscard drops the active overlay together with all buffered mutations
// and resumes the parent as active.
func (s *TransactionState) PopDiscard() {
	if s.active.parent == nil {
		panic("cannot pop the root overlay")
	}
	s.active = s.active.parent
}

// Depth returns the number of overlays above the root. Intended for
// invariant checks in tests.
func (s *TransactionState) Depth() int {
	depth := 0
	for o := s.active; o.parent != nil; o = o.parent {
		depth++
	}
	return depth
}

// Commit merges the root overlay into the durable store. All nested
// overlays must have been resolved before.
func (s *TransactionState) Commit() error {
	if s.active.parent != nil {
		return fmt.Errorf("cannot commit: %d unresolved frame overlays", s.Depth())
	}
	return s.store.Commit(s.active.changeSet())
}

// ----------------------------------------------------------------------------
// ewasm.WorldState
// ----------------------------------------------------------------------------

func (s *TransactionState) AccountExists(addr ewasm.Address) bool {
	if s.HasSelfDestructed(addr) {
		return false
	}
	return !s.GetBalance(addr).IsZero() ||
		s.GetNonce(addr) != 0 ||
		s.GetCodeSize(addr) != 0
}

func (s *TransactionState) GetBalance(addr ewasm.Address) ewasm.Value {
	for o := s.active; o != nil; o = o.parent {
		if d := o.accounts[addr]; d != nil && d.balance != nil {
			return *d.balance
		}
	}
	return s.store.GetAccount(addr).Balance
}

func (s *TransactionState) SetBalance(addr ewasm.Address, balance ewasm.Value) {
	s.active.delta(addr).balance = &balance
}

func (s *TransactionState) GetNonce(addr ewasm.Address) uint64 {
	for o := s.active; o != nil; o = o.parent {
		if d := o.accounts[addr]; d != nil && d.nonce != nil {
			return *d.nonce
		}
	}
	return s.store.GetAccount(addr).Nonce
}

func (s *TransactionState) SetNonce(addr ewasm.Address, nonce uint64) {
	s.active.delta(addr).nonce = &nonce
}

func (s *TransactionState) GetCode(addr ewasm.Address) ewasm.Code {
	for o := s.active; o != nil; o = o.parent {
		if d := o.accounts[addr]; d != nil && d.codeSet {
			return bytes.Clone(d.code)
		}
	}
	return s.store.GetAccount(addr).Code
}

func (s *TransactionState) GetCodeHash(addr ewasm.Address) ewasm.Hash {
	code := s.GetCode(addr)
	if len(code) == 0 && !s.AccountExists(addr) {
		return ewasm.Hash{}
	}
	return CodeHash(code)
}

func (s *TransactionState) GetCodeSize(addr ewasm.Address) int {
	return len(s.GetCode(addr))
}

func (s *TransactionState) SetCode(addr ewasm.Address, code ewasm.Code) {
	d := s.active.delta(addr)
	d.code = bytes.Clone(code)
	d.codeSet = true
}

func (s *TransactionState) GetStorage(addr ewasm.Address, key ewasm.Key) ewasm.Word {
	for o := s.active; o != nil; o = o.parent {
		if d := o.accounts[addr]; d != nil {
			if value, found := d.storage[key]; found {
				return value
			}
		}
	}
	return s.store.GetStorage(addr, key)
}

func (s *TransactionState) SetStorage(addr ewasm.Address, key ewasm.Key, value ewasm.Word) ewasm.StorageStatus {
	original := s.GetCommittedStorage(addr, key)
	current := s.GetStorage(addr, key)

	d := s.active.delta(addr)
	if d.storage == nil {
		d.storage = map[ewasm.Key]ewasm.Word{}
	}
	d.storage[key] = value

	return ewasm.GetStorageStatus(original, current, value)
}

func (s *TransactionState) SelfDestruct(addr, beneficiary ewasm.Address) bool {
	alreadyMarked := s.HasSelfDestructed(addr)

	balance := s.GetBalance(addr)
	if addr != beneficiary {
		s.SetBalance(beneficiary, ewasm.Add(s.GetBalance(beneficiary), balance))
	}
	s.SetBalance(addr, ewasm.Value{})
	s.active.delta(addr).destroyed = true

	return !alreadyMarked
}

// ----------------------------------------------------------------------------
// Transaction bookkeeping
// ----------------------------------------------------------------------------

func (s *TransactionState) GetCommittedStorage(addr ewasm.Address, key ewasm.Key) ewasm.Word {
	return s.store.GetStorage(addr, key)
}

func (s *TransactionState) HasSelfDestructed(addr ewasm.Address) bool {
	for o := s.active; o != nil; o = o.parent {
		if d := o.accounts[addr]; d != nil && d.destroyed {
			return true
		}
	}
	return false
}

func (s *TransactionState) AddRefund(amount ewasm.Gas) {
	s.active.refund += amount
}

func (s *TransactionState) GetRefund() ewasm.Gas {
	refund := ewasm.Gas(0)
	for o := s.active; o != nil; o = o.parent {
		refund += o.refund
	}
	return refund
}

func (s *TransactionState) EmitLog(log ewasm.Log) {
	s.active.logs = append(s.active.logs, log)
}

// GetLogs returns all logs pending in the overlay chain, ordered oldest
// first.
func (s *TransactionState) GetLogs() []ewasm.Log {
	var chain []*overlay
	for o := s.active; o != nil; o = o.parent {
		chain = append(chain, o)
	}
	slices.Reverse(chain)
	var logs []ewasm.Log
	for _, o := range chain {
		logs = append(logs, o.logs...)
	}
	return logs
}
