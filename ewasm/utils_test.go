// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

import "testing"

func TestGetStorageStatus_AllTransitionsAreClassified(t *testing.T) {
	o := Word{31: 1} // original X
	y := Word{31: 2}
	z := Word{31: 3}
	zero := Word{}

	tests := map[string]struct {
		original, current, new Word
		want                   StorageStatus
	}{
		"same value assigned":    {o, o, o, StorageAssigned},
		"added":                  {zero, zero, z, StorageAdded},
		"deleted":                {o, o, zero, StorageDeleted},
		"modified":               {o, o, z, StorageModified},
		"deleted then added":     {o, zero, z, StorageDeletedAdded},
		"modified then deleted":  {o, y, zero, StorageModifiedDeleted},
		"deleted then restored":  {o, zero, o, StorageDeletedRestored},
		"added then deleted":     {zero, y, zero, StorageAddedDeleted},
		"modified then restored": {o, y, o, StorageModifiedRestored},
		"dirty slot reassigned":  {o, y, z, StorageAssigned},
		"zero to zero":           {zero, zero, zero, StorageAssigned},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := GetStorageStatus(test.original, test.current, test.new)
			if test.want != got {
				t.Errorf("wanted %v, got %v", test.want, got)
			}
		})
	}
}

func TestIsPrecompiled_ReservedRangeIsDetected(t *testing.T) {
	for i := byte(1); i <= 9; i++ {
		if !IsPrecompiled(Address{19: i}) {
			t.Errorf("address %d must be precompiled", i)
		}
	}

	notPrecompiled := []Address{
		{},          // zero address
		{19: 10},    // first address after the reserved range
		{18: 1},     // high byte set
		{0: 1, 19: 1},
	}
	for _, addr := range notPrecompiled {
		if IsPrecompiled(addr) {
			t.Errorf("address %v must not be precompiled", addr)
		}
	}
}
