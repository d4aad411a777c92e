// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"math"

	"github.com/second-state/ewasm-host/ewasm"
)

// Processor executes transactions against a transaction context using a
// configurable engine for the byte-code and a cost table for the host
// functions. It implements ewasm.Processor.
//
// A transaction that is refused or ends in a revert or fault yields a
// receipt with Success set to false; the transaction context is left
// uncommitted in that case, so none of its effects reach the account store.
// A non-nil error is only returned for malfunctions of the engine or the
// store, rendering the outcome undefined.
type Processor struct {
	engine      ewasm.Engine
	costs       CostTable
	blockHashes BlockHashFunc
}

var _ ewasm.Processor = (*Processor)(nil)

// Option configures a Processor.
type Option func(*Processor)

// WithCostTable overrides the default host function pricing.
func WithCostTable(costs CostTable) Option {
	return func(p *Processor) { p.costs = costs }
}

// WithBlockHashSource provides the lookup for past block hashes. Without it
// every block hash query resolves to the zero hash.
func WithBlockHashSource(f BlockHashFunc) Option {
	return func(p *Processor) { p.blockHashes = f }
}

func NewProcessor(engine ewasm.Engine, opts ...Option) *Processor {
	p := &Processor{
		engine: engine,
		costs:  DefaultCostTable(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Run(
	block ewasm.BlockParameters,
	transaction ewasm.Transaction,
	context ewasm.TransactionContext,
) (ewasm.Receipt, error) {
	refused := ewasm.Receipt{GasUsed: transaction.GasLimit}

	intrinsic := p.intrinsicGas(transaction)
	if transaction.GasLimit < intrinsic {
		return refused, nil
	}
	if transaction.Nonce == math.MaxUint64 {
		return refused, nil
	}
	if context.GetNonce(transaction.Sender) != transaction.Nonce {
		return refused, nil
	}
	if err := buyGas(transaction, context); err != nil {
		return refused, nil
	}
	context.SetNonce(transaction.Sender, transaction.Nonce+1)
	gas := transaction.GasLimit - intrinsic

	host := &hostContext{
		engine: p.engine,
		state:  context,
		stack:  newCallStack(context),
		costs:  p.costs,
		block:  block,
		transaction: ewasm.TransactionParameters{
			Origin:   transaction.Sender,
			GasPrice: transaction.GasPrice,
		},
		blockHashes: p.blockHashes,
	}

	var result ewasm.CallResult
	var err error
	if transaction.Recipient == nil {
		result, err = host.runCreateFrame(
			ewasm.Create,
			transaction.Sender,
			transaction.Nonce,
			transaction.Value,
			ewasm.Code(transaction.Input),
			ewasm.Hash{},
			gas,
		)
	} else {
		if !transaction.Value.IsZero() &&
			context.GetBalance(transaction.Sender).Cmp(transaction.Value) < 0 {
			return refused, nil
		}
		result, err = host.runCallFrame(
			ewasm.Call,
			transaction.Sender,
			*transaction.Recipient,
			*transaction.Recipient,
			transaction.Input,
			transaction.Value,
			gas,
			false,
			!transaction.Value.IsZero(),
		)
	}
	if err != nil {
		return ewasm.Receipt{}, err
	}

	gasLeft := result.GasLeft
	if result.Status == ewasm.StatusSuccess {
		// Storage refunds are granted at most up to half the gas used.
		refund := context.GetRefund()
		if limit := (transaction.GasLimit - gasLeft) / 2; refund > limit {
			refund = limit
		}
		gasLeft += refund
	}
	returnGas(transaction, context, gasLeft)

	receipt := ewasm.Receipt{GasUsed: transaction.GasLimit - gasLeft}
	if result.Status != ewasm.StatusSuccess {
		return receipt, nil
	}

	receipt.Success = true
	receipt.Output = result.Output
	receipt.Logs = context.GetLogs()
	if transaction.Recipient == nil {
		created := result.CreatedAddress
		receipt.ContractAddress = &created
		receipt.Output = created[:]
	}
	if err := context.Commit(); err != nil {
		return ewasm.Receipt{}, err
	}
	return receipt, nil
}

// intrinsicGas is the gas charged for the transaction itself, before any
// code execution: a base cost depending on whether a contract is created,
// plus a per-byte cost of the input data.
func (p *Processor) intrinsicGas(transaction ewasm.Transaction) ewasm.Gas {
	gas := p.costs.TxBase
	if transaction.Recipient == nil {
		gas = p.costs.TxCreate
	}
	for _, b := range transaction.Input {
		if b == 0 {
			gas += p.costs.TxDataZero
		} else {
			gas += p.costs.TxDataNonZero
		}
	}
	return gas
}

// buyGas debits the maximum possible gas fee from the sender up front.
func buyGas(transaction ewasm.Transaction, context ewasm.TransactionContext) error {
	fee := transaction.GasPrice.Scale(uint64(transaction.GasLimit))
	balance := context.GetBalance(transaction.Sender)
	if balance.Cmp(fee) < 0 {
		return ewasm.ConstError("insufficient balance for gas")
	}
	context.SetBalance(transaction.Sender, ewasm.Sub(balance, fee))
	return nil
}

// returnGas credits the sender for the gas bought but not used.
func returnGas(transaction ewasm.Transaction, context ewasm.TransactionContext, gasLeft ewasm.Gas) {
	if gasLeft <= 0 {
		return
	}
	refund := transaction.GasPrice.Scale(uint64(gasLeft))
	context.SetBalance(transaction.Sender, ewasm.Add(context.GetBalance(transaction.Sender), refund))
}
