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
	"testing"

	"github.com/second-state/ewasm-host/ewasm"
)

func TestAccount_EmptyDetection(t *testing.T) {
	tests := map[string]struct {
		account Account
		empty   bool
	}{
		"zero value":   {Account{}, true},
		"with balance": {Account{Balance: ewasm.NewValue(1)}, false},
		"with nonce":   {Account{Nonce: 1}, false},
		"with code":    {Account{Code: []byte{0x00}}, false},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if want, got := test.empty, test.account.Empty(); want != got {
				t.Errorf("wanted %v, got %v", want, got)
			}
		})
	}
}

func TestMemoryStore_AccountsAreReturnedByValue(t *testing.T) {
	store := NewMemoryStore()
	store.SetAccount(addr1, Account{Code: []byte{1, 2, 3}})

	account := store.GetAccount(addr1)
	account.Code[0] = 0xff

	if want, got := byte(1), store.GetAccount(addr1).Code[0]; want != got {
		t.Errorf("store content must not be aliased, wanted %v, got %v", want, got)
	}
}

func TestMemoryStore_CommitOnlyTouchesChangedProperties(t *testing.T) {
	store := NewMemoryStore()
	store.SetAccount(addr1, Account{Balance: ewasm.NewValue(10), Nonce: 5, Code: []byte{1}})

	nonce := uint64(6)
	err := store.Commit(ChangeSet{
		Accounts: map[ewasm.Address]AccountChange{
			addr1: {Nonce: &nonce},
		},
	})
	if err != nil {
		t.Fatalf("commit failed: %v", err)
	}

	account := store.GetAccount(addr1)
	if want, got := ewasm.NewValue(10), account.Balance; want != got {
		t.Errorf("untouched balance modified, wanted %v, got %v", want, got)
	}
	if want, got := uint64(6), account.Nonce; want != got {
		t.Errorf("nonce not committed, wanted %v, got %v", want, got)
	}
	if !bytes.Equal(account.Code, []byte{1}) {
		t.Errorf("untouched code modified: %v", account.Code)
	}
}

func TestCodeHash_MatchesKnownKeccakResults(t *testing.T) {
	tests := []struct {
		code ewasm.Code
		want string
	}{
		{nil, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{[]byte{}, "0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"},
		{[]byte("abc"), "0x4e03657aea45a94fc7d47ba826c8d667c0d1e6e33a64a036ec44f58fa12d6c45"},
	}

	for _, test := range tests {
		if want, got := test.want, fmt.Sprintf("%v", CodeHash(test.code)); want != got {
			t.Errorf("unexpected hash of %q, wanted %v, got %v", test.code, want, got)
		}
	}
}

func TestCodeHash_RepeatedRequestsAreConsistent(t *testing.T) {
	code := ewasm.Code{0x60, 0x00, 0x60, 0x00}
	first := CodeHash(code)
	for i := 0; i < 10; i++ {
		if got := CodeHash(code); first != got {
			t.Fatalf("cached hash diverged, wanted %v, got %v", first, got)
		}
	}
}
