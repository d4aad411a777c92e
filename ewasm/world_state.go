// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

import "fmt"

//go:generate mockgen -source world_state.go -destination world_state_mock.go -package ewasm

// WorldState is the view of chain state offered to executing contracts. The
// state is a collection of accounts, each holding a balance, a nonce, optional
// contract code, and a key/value storage space. Reads resolve through any
// pending frame overlays down to the durable account store; writes always
// target the currently active frame's overlay only.
type WorldState interface {
	AccountExists(Address) bool

	GetBalance(Address) Value
	SetBalance(Address, Value)

	GetNonce(Address) uint64
	SetNonce(Address, uint64)

	GetCode(Address) Code
	GetCodeHash(Address) Hash
	GetCodeSize(Address) int
	SetCode(Address, Code)

	GetStorage(Address, Key) Word
	SetStorage(Address, Key, Word) StorageStatus

	// SelfDestruct marks addr for removal and credits its remaining balance
	// to beneficiary. If beneficiary does not exist it is implicitly created.
	// The removal only becomes durable if every enclosing frame commits.
	// Returns true if addr has not been marked before in the ongoing
	// transaction.
	SelfDestruct(addr Address, beneficiary Address) bool
}

// TransactionContext is the state of one transaction in flight. All world
// state modifications are buffered in a chain of frame-scoped overlays which
// can be pushed, merged into their parent, or discarded. Beyond the world
// state itself it tracks emitted logs, storage refunds, and self-destruct
// markers, and it is the unit that is finally committed to the durable
// account store.
type TransactionContext interface {
	WorldState

	// Push opens a fresh, empty overlay for a new frame. Subsequent writes
	// are buffered there until the overlay is either merged or discarded.
	Push()
	// PopMerge folds the active overlay into its parent, making its
	// mutations visible to the enclosing frame.
	PopMerge()
	// PopDiscard drops the active overlay and every mutation it buffered,
	// restoring the view of the enclosing frame untouched.
	PopDiscard()

	// Commit merges the fully resolved root overlay into the durable
	// account store. It must only be called once all nested overlays have
	// been resolved.
	Commit() error

	// GetCommittedStorage returns the value of a storage slot as it was at
	// the beginning of the transaction, bypassing all overlays.
	GetCommittedStorage(Address, Key) Word

	HasSelfDestructed(Address) bool

	// AddRefund accumulates storage gas refunds earned in the active frame.
	// Refunds are merged and discarded together with their overlay.
	AddRefund(Gas)
	GetRefund() Gas

	EmitLog(Log)
	GetLogs() []Log
}

// Address represents the 160-bit (20 bytes) address of an account.
type Address [20]byte

// Key represents the 256-bit (32 bytes) key of a storage slot.
type Key [32]byte

// Word represents an arbitrary 256-bit (32 bytes) word.
type Word [32]byte

// Value represents an amount of chain currency, typically wei.
type Value [32]byte

// Hash represents the 256-bit (32 bytes) hash of code, a block, a log topic,
// or a similar piece of cryptographic summary information.
type Hash [32]byte

// Code represents the byte-code of a contract.
type Code []byte

// Data represents the input or output of contract invocations.
type Data []byte

// Gas represents an amount of execution gas.
type Gas int64

// Log is a log record emitted as a side effect of contract execution. Logs
// are collected in the emitting frame's overlay; they survive only if every
// enclosing frame commits.
type Log struct {
	Address Address
	Topics  []Hash
	Data    Data
}

// StorageStatus classifies the effect of a storage write relative to the
// slot's committed (original) value and its overlay-resolved current value.
// The distinction drives dynamic gas pricing and refund accounting of
// storage writes.
type StorageStatus int

const (
	// The comment indicates the storage values for the corresponding
	// transition. X, Y, Z are non-zero values, distinct from each other,
	// while 0 is zero.
	//
	// <original> -> <current> -> <new>
	StorageAssigned         StorageStatus = iota
	StorageAdded                          // 0 -> 0 -> Z
	StorageDeleted                        // X -> X -> 0
	StorageModified                       // X -> X -> Z
	StorageDeletedAdded                   // X -> 0 -> Z
	StorageModifiedDeleted                // X -> Y -> 0
	StorageDeletedRestored                // X -> 0 -> X
	StorageAddedDeleted                   // 0 -> Y -> 0
	StorageModifiedRestored               // X -> Y -> X
)

func (s StorageStatus) String() string {
	switch s {
	case StorageAssigned:
		return "StorageAssigned"
	case StorageAdded:
		return "StorageAdded"
	case StorageDeleted:
		return "StorageDeleted"
	case StorageModified:
		return "StorageModified"
	case StorageDeletedAdded:
		return "StorageDeletedAdded"
	case StorageModifiedDeleted:
		return "StorageModifiedDeleted"
	case StorageDeletedRestored:
		return "StorageDeletedRestored"
	case StorageAddedDeleted:
		return "StorageAddedDeleted"
	case StorageModifiedRestored:
		return "StorageModifiedRestored"
	}
	return fmt.Sprintf("StorageStatus(%d)", int(s))
}
