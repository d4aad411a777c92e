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
	"maps"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/crypto/sha3"

	"github.com/second-state/ewasm-host/ewasm"
)

// Account is a snapshot of the durable part of an account record. Accounts
// absent from the store are represented by the zero value.
type Account struct {
	Balance ewasm.Value
	Nonce   uint64
	Code    ewasm.Code
}

// Empty returns true if the account holds no balance, nonce, or code.
// Empty accounts are indistinguishable from absent ones.
func (a *Account) Empty() bool {
	return a.Balance.IsZero() && a.Nonce == 0 && len(a.Code) == 0
}

// AccountStore is the durable persistence boundary of the host. Reads are
// synchronous lookups; Commit merges a fully resolved root change set
// atomically with respect to concurrent reads. The atomicity of the commit
// is a capability expected from the backing persistence engine, not
// re-implemented here.
type AccountStore interface {
	GetAccount(ewasm.Address) Account
	GetStorage(ewasm.Address, ewasm.Key) ewasm.Word
	Commit(ChangeSet) error
}

// ChangeSet is the exported view of a resolved root overlay, ready to be
// merged into an AccountStore.
type ChangeSet struct {
	Accounts  map[ewasm.Address]AccountChange
	Destroyed []ewasm.Address
}

// AccountChange lists the pending mutations of one account. Nil pointer
// fields denote untouched properties.
type AccountChange struct {
	Balance *ewasm.Value
	Nonce   *uint64
	Code    ewasm.Code
	CodeSet bool
	Storage map[ewasm.Key]ewasm.Word
}

// MemoryStore is an in-memory AccountStore, primarily backing tests and
// stand-alone deployments without a persistence engine.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[ewasm.Address]*storedAccount
}

type storedAccount struct {
	balance ewasm.Value
	nonce   uint64
	code    ewasm.Code
	storage map[ewasm.Key]ewasm.Word
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: map[ewasm.Address]*storedAccount{}}
}

func (s *MemoryStore) GetAccount(addr ewasm.Address) Account {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, found := s.accounts[addr]
	if !found {
		return Account{}
	}
	return Account{
		Balance: account.balance,
		Nonce:   account.nonce,
		Code:    bytes.Clone(account.code),
	}
}

func (s *MemoryStore) GetStorage(addr ewasm.Address, key ewasm.Key) ewasm.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, found := s.accounts[addr]
	if !found {
		return ewasm.Word{}
	}
	return account.storage[key]
}

func (s *MemoryStore) Commit(changes ChangeSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for addr, change := range changes.Accounts {
		account := s.getOrCreate(addr)
		if change.Balance != nil {
			account.balance = *change.Balance
		}
		if change.Nonce != nil {
			account.nonce = *change.Nonce
		}
		if change.CodeSet {
			account.code = bytes.Clone(change.Code)
		}
		for key, value := range change.Storage {
			if value == (ewasm.Word{}) {
				delete(account.storage, key)
			} else {
				account.storage[key] = value
			}
		}
	}
	for _, addr := range changes.Destroyed {
		delete(s.accounts, addr)
	}
	return nil
}

// SetAccount installs an account in the store, bypassing the transaction
// machinery. Intended for genesis construction and tests.
func (s *MemoryStore) SetAccount(addr ewasm.Address, account Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := s.getOrCreate(addr)
	stored.balance = account.Balance
	stored.nonce = account.Nonce
	stored.code = bytes.Clone(account.Code)
}

// SetStorage installs a storage slot value, bypassing the transaction
// machinery. Intended for genesis construction and tests.
func (s *MemoryStore) SetStorage(addr ewasm.Address, key ewasm.Key, value ewasm.Word) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreate(addr).storage[key] = value
}

// Storage returns a copy of an account's storage. Intended for tests.
func (s *MemoryStore) Storage(addr ewasm.Address) map[ewasm.Key]ewasm.Word {
	s.mu.RLock()
	defer s.mu.RUnlock()
	account, found := s.accounts[addr]
	if !found {
		return nil
	}
	return maps.Clone(account.storage)
}

func (s *MemoryStore) getOrCreate(addr ewasm.Address) *storedAccount {
	account, found := s.accounts[addr]
	if !found {
		account = &storedAccount{storage: map[ewasm.Key]ewasm.Word{}}
		s.accounts[addr] = account
	}
	return account
}

// ----------------------------------------------------------------------------
// Code hashing
// ----------------------------------------------------------------------------

// codeHashCacheCapacity bounds the number of cached code hashes. Contract
// code is read far more often than it changes, so recomputing Keccak-256 for
// every GetCodeHash would dominate hot call paths.
const codeHashCacheCapacity = 4096

var codeHashCache *lru.Cache[string, ewasm.Hash]

func init() {
	cache, err := lru.New[string, ewasm.Hash](codeHashCacheCapacity)
	if err != nil {
		panic(err)
	}
	codeHashCache = cache
}

// CodeHash computes the Keccak-256 hash of the given contract code, serving
// repeated requests from a process-wide cache.
func CodeHash(code ewasm.Code) ewasm.Hash {
	if hash, found := codeHashCache.Get(string(code)); found {
		return hash
	}
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(code)
	var hash ewasm.Hash
	hasher.Sum(hash[:0])
	codeHashCache.Add(string(code), hash)
	return hash
}
