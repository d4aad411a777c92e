// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

//go:generate mockgen -source engine.go -destination engine_mock.go -package ewasm

// Engine is a component capable of executing ewasm byte-code. The engine is
// treated as an opaque executor: it consumes the code and input of a single
// frame and synchronously calls back into the provided HostContext for every
// state access or nested call. The resulting error is nil whenever the code
// was processed, even if execution ended in a revert or fault; a non-nil
// error indicates a malfunction of the engine itself, in which case the
// result is undefined. Engines are required to be thread-safe with respect
// to independent runs.
type Engine interface {
	Run(Parameters) (Result, error)
}

// Parameters summarizes the inputs for executing the byte-code of one frame.
type Parameters struct {
	BlockParameters
	TransactionParameters
	Host      HostContext
	Kind      CallKind
	Static    bool
	Depth     int
	Gas       Gas
	Recipient Address
	Sender    Address
	Input     Data
	Value     Value
	CodeHash  *Hash
	Code      Code
}

// BlockParameters describes the block an execution is embedded in.
type BlockParameters struct {
	ChainID     Word
	BlockNumber int64
	Timestamp   int64
	Coinbase    Address
	GasLimit    Gas
	Difficulty  Word
}

// TransactionParameters describes the enclosing transaction.
type TransactionParameters struct {
	Origin   Address
	GasPrice Value
}

// TxContext bundles the environment metadata an engine may query through a
// single host call.
type TxContext struct {
	GasPrice    Value
	Origin      Address
	Coinbase    Address
	BlockNumber int64
	Timestamp   int64
	GasLimit    Gas
	Difficulty  Word
	ChainID     Word
}

// HostContext is the sole contract between an executing engine and the rest
// of the system. Every host function an engine may issue during a run is
// resolved here: state reads and writes, gas metering, log emission, nested
// calls, and environment queries.
//
// Methods that consume gas report ErrOutOfGas once the frame's budget is
// exhausted, and ErrWriteProtection when a state mutation is attempted
// inside a static frame. An engine receiving either error must abort the
// current run and report the corresponding fault status; it must not
// continue issuing host calls for that frame.
type HostContext interface {
	// UseGas charges byte-code execution costs against the active frame's
	// budget. Engines call this for metered instruction blocks; host
	// function costs are charged internally and need not be reported.
	UseGas(Gas) error

	AccountExists(Address) (bool, error)

	GetStorage(Address, Key) (Word, error)
	SetStorage(Address, Key, Word) (StorageStatus, error)

	GetBalance(Address) (Value, error)
	GetCode(Address) (Code, error)
	GetCodeSize(Address) (int, error)
	GetCodeHash(Address) (Hash, error)

	EmitLog(Log) error
	SelfDestruct(addr Address, beneficiary Address) error

	// GetTxContext returns the environment metadata of the enclosing block
	// and transaction.
	GetTxContext() TxContext
	// GetBlockHash returns the hash of the block with the given number, or
	// the zero hash if the number is out of the supported range.
	GetBlockHash(number int64) Hash

	// Call runs a nested call in a child frame. Failures of the child are
	// reported through the result status and never abort the calling
	// frame; the returned error reports faults of the calling frame
	// itself, per the rules above, or a malfunction of a nested engine
	// run.
	Call(kind CallKind, parameters CallParameters) (CallResult, error)
}

// Result summarizes the outcome of one engine run.
type Result struct {
	Status Status
	Output Data
	// GasLeft is the gas remaining from the frame's budget as observed by
	// the engine. Host-side charges are reconciled by the frame, so the
	// effective remaining gas is never larger than the host's own meter.
	GasLeft Gas
}

// Success returns true if the run completed without revert or fault.
func (r Result) Success() bool {
	return r.Status == StatusSuccess
}

// CallKind distinguishes the kinds of recursive contract calls.
type CallKind int

const (
	Call CallKind = iota
	DelegateCall
	StaticCall
	CallCode
	Create
	Create2
)

// CallParameters summarizes the arguments of a nested call request.
type CallParameters struct {
	Sender      Address
	Recipient   Address // ignored for Create and Create2
	Value       Value   // considered zero for static calls
	Input       Data
	Gas         Gas
	Salt        Hash    // only relevant for Create2
	CodeAddress Address // code source for DelegateCall and CallCode
}

// CallResult summarizes the outcome of a nested call as observed by the
// calling frame.
type CallResult struct {
	Output         Data
	GasLeft        Gas
	CreatedAddress Address // only meaningful for Create and Create2
	Status         Status
}

// Success returns true if the nested call completed without revert or fault.
func (r CallResult) Success() bool {
	return r.Status == StatusSuccess
}
