// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

// GetStorageStatus classifies a storage write given the committed (original)
// value of the slot, its overlay-resolved current value, and the value being
// written. The classification prices repeated writes within one transaction
// consistently, independent of what has already been flushed to the overlay.
func GetStorageStatus(original, current, new Word) StorageStatus {
	var zero = Word{}

	if current == new {
		return StorageAssigned
	}

	switch {
	// 0 -> 0 -> Z
	case original == zero && current == zero && new != zero:
		return StorageAdded
	// X -> X -> 0
	case original != zero && current == original && new == zero:
		return StorageDeleted
	// X -> X -> Z
	case original != zero && current == original && new != zero && new != original:
		return StorageModified
	// X -> 0 -> Z
	case original != zero && current == zero && new != zero && new != original:
		return StorageDeletedAdded
	// X -> Y -> 0
	case original != zero && current != original && current != zero && new == zero:
		return StorageModifiedDeleted
	// X -> 0 -> X
	case original != zero && current == zero && new == original:
		return StorageDeletedRestored
	// 0 -> Y -> 0
	case original == zero && current != zero && new == zero:
		return StorageAddedDeleted
	// X -> Y -> X
	case original != zero && current != original && current != zero && new == original:
		return StorageModifiedRestored
	}

	return StorageAssigned
}

// IsPrecompiled returns true if the given address belongs to the reserved
// precompiled contract range (addresses 1 through 9).
func IsPrecompiled(addr Address) bool {
	for i := 0; i < 19; i++ {
		if addr[i] != 0 {
			return false
		}
	}
	return 1 <= addr[19] && addr[19] <= 9
}
