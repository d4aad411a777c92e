// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package state

import (
	"github.com/second-state/ewasm-host/ewasm"
)

// overlay is one frame's pending state diff, layered over the overlay of the
// enclosing frame. Reads fall through to the parent chain and finally to the
// durable store; writes always land in the topmost overlay. Merging and
// discarding an overlay are structural operations; no state is copied when a
// frame is entered.
type overlay struct {
	parent   *overlay
	accounts map[ewasm.Address]*accountDelta
	logs     []ewasm.Log
	refund   ewasm.Gas
}

// accountDelta buffers the pending mutations of a single account. Nil
// pointers mark untouched properties, so an unrelated write to one property
// never shadows the parent's value of another.
type accountDelta struct {
	balance   *ewasm.Value
	nonce     *uint64
	code      ewasm.Code
	codeSet   bool
	storage   map[ewasm.Key]ewasm.Word
	destroyed bool
}

func newOverlay(parent *overlay) *overlay {
	return &overlay{
		parent:   parent,
		accounts: map[ewasm.Address]*accountDelta{},
	}
}

func (o *overlay) delta(addr ewasm.Address) *accountDelta {
	d, found := o.accounts[addr]
	if !found {
		d = &accountDelta{}
		o.accounts[addr] = d
	}
	return d
}

// mergeIntoParent folds this overlay's buffered mutations into the enclosing
// overlay, making them visible to the parent frame. Must not be called on
// the root overlay.
func (o *overlay) mergeIntoParent() {
	p := o.parent
	for addr, d := range o.accounts {
		pd := p.delta(addr)
		if d.balance != nil {
			pd.balance = d.balance
		}
		if d.nonce != nil {
			pd.nonce = d.nonce
		}
		if d.codeSet {
			pd.code = d.code
			pd.codeSet = true
		}
		if d.destroyed {
			pd.destroyed = true
		}
		if len(d.storage) > 0 {
			if pd.storage == nil {
				pd.storage = map[ewasm.Key]ewasm.Word{}
			}
			for key, value := range d.storage {
				pd.storage[key] = value
			}
		}
	}
	p.logs = append(p.logs, o.logs...)
	p.refund += o.refund
}

// changeSet flattens a root overlay into its exported, committable form.
func (o *overlay) changeSet() ChangeSet {
	changes := ChangeSet{Accounts: map[ewasm.Address]AccountChange{}}
	for addr, d := range o.accounts {
		if d.destroyed {
			changes.Destroyed = append(changes.Destroyed, addr)
			continue
		}
		change := AccountChange{
			Balance: d.balance,
			Nonce:   d.nonce,
			Code:    d.code,
			CodeSet: d.codeSet,
		}
		if len(d.storage) > 0 {
			change.Storage = make(map[ewasm.Key]ewasm.Word, len(d.storage))
			for key, value := range d.storage {
				change.Storage[key] = value
			}
		}
		changes.Accounts[addr] = change
	}
	return changes
}
