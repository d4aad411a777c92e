// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import "github.com/second-state/ewasm-host/ewasm"

// CostTable lists the gas costs of all host functions. The values are policy
// data of the embedding chain, not constants of the host: deployments supply
// their own table, typically decoded from the chain configuration. The zero
// value is a valid table making all host functions free.
type CostTable struct {
	// Transaction-level intrinsic costs.
	TxBase         ewasm.Gas `json:"tx_base"`
	TxCreate       ewasm.Gas `json:"tx_create"`
	TxDataZero     ewasm.Gas `json:"tx_data_zero"`      // per zero input byte
	TxDataNonZero  ewasm.Gas `json:"tx_data_non_zero"`  // per non-zero input byte

	// Account and storage access.
	AccountAccess ewasm.Gas `json:"account_access"` // balance, nonce, code queries
	StorageRead   ewasm.Gas `json:"storage_read"`
	StorageSet    ewasm.Gas `json:"storage_set"`    // zero -> non-zero on a clean slot
	StorageReset  ewasm.Gas `json:"storage_reset"`  // any other write to a clean slot
	StorageRefund ewasm.Gas `json:"storage_refund"` // earned on non-zero -> zero

	// Log emission.
	LogBase  ewasm.Gas `json:"log_base"`
	LogTopic ewasm.Gas `json:"log_topic"` // per topic
	LogData  ewasm.Gas `json:"log_data"`  // per payload byte

	// Nested calls.
	Call              ewasm.Gas `json:"call"`
	CallValueTransfer ewasm.Gas `json:"call_value_transfer"`
	Create            ewasm.Gas `json:"create"`
	CreateData        ewasm.Gas `json:"create_data"` // per byte of deployed code

	SelfDestruct ewasm.Gas `json:"self_destruct"`
	BlockHash    ewasm.Gas `json:"block_hash"`
}

// DefaultCostTable returns an Istanbul-flavoured cost table. Embedding
// chains with their own pricing policy should supply their own table
// instead.
func DefaultCostTable() CostTable {
	return CostTable{
		TxBase:        21_000,
		TxCreate:      53_000,
		TxDataZero:    4,
		TxDataNonZero: 16,

		AccountAccess: 700,
		StorageRead:   800,
		StorageSet:    20_000,
		StorageReset:  5_000,
		StorageRefund: 15_000,

		LogBase:  375,
		LogTopic: 375,
		LogData:  8,

		Call:              700,
		CallValueTransfer: 9_000,
		Create:            32_000,
		CreateData:        200,

		SelfDestruct: 5_000,
		BlockHash:    20,
	}
}

// storageWriteCost prices a storage write based on its overlay-resolved
// transition class. Writes to slots already dirtied in this transaction are
// priced like reads; clean-slot writes pay the full set or reset cost.
func (c *CostTable) storageWriteCost(status ewasm.StorageStatus) ewasm.Gas {
	switch status {
	case ewasm.StorageAdded:
		return c.StorageSet
	case ewasm.StorageModified, ewasm.StorageDeleted:
		return c.StorageReset
	default:
		// StorageAssigned and all dirty-slot transitions.
		return c.StorageRead
	}
}
