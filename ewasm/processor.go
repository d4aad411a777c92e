// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

//go:generate mockgen -source processor.go -destination processor_mock.go -package ewasm

// Processor is a component capable of executing transactions against the
// world state. An implementation handles gas fees, nonce checks, the
// (potentially recursive) execution of contract calls through an Engine, and
// the creation of new contracts. The provided transaction context is
// committed on success and left untouched by failed transactions.
type Processor interface {
	Run(BlockParameters, Transaction, TransactionContext) (Receipt, error)
}

// Transaction summarizes a single state-transition request.
type Transaction struct {
	Sender    Address  // the account paying for and issuing the transaction
	Recipient *Address // the called account, nil if a contract is to be created
	Nonce     uint64   // the expected nonce of the sender account
	Input     Data     // call input, or initialization code for a create
	Value     Value    // amount of chain currency transferred to the recipient
	GasLimit  Gas      // the maximum amount of gas the transaction may consume
	GasPrice  Value    // the price of one unit of gas in chain currency
}

// Receipt summarizes the outcome of a transaction execution.
type Receipt struct {
	Success         bool
	Output          Data
	ContractAddress *Address // filled if a contract was created
	GasUsed         Gas
	Logs            []Log // emitted logs, in order; empty unless successful
}
