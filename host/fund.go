// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package host

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/second-state/ewasm-host/ewasm"
)

// FundBeneficiary is the account the token unlock schedule releases funds
// to. Its storage slots hold the schedule's bookkeeping:
//
//	slot 0, bytes [24:32): timestamp the schedule started at
//	slot 1, bytes [24:32): first round not yet fully unlocked
//	slot 2, bytes [24:32): ticks already unlocked in that round
//	slot 3, bytes [16:24): round-shortening factor (testing aid)
//	slot 3, bytes [24:32): period-shortening factor (testing aid)
var FundBeneficiary = ewasm.Address{
	0x71, 0x10, 0x31, 0x6b, 0x61, 0x8d, 0x20, 0xd0, 0xc4, 0x47,
	0x28, 0xac, 0x2a, 0x3d, 0x68, 0x35, 0x36, 0xea, 0x68, 0x2b,
}

const (
	// fundPeriod is the number of rounds after which the release rate is
	// halved.
	fundPeriod = 20
	// fundTicksInRound is the seconds in one unlock round of 30 days.
	fundTicksInRound = 30 * 24 * 3600
)

// fundTotalAmount is the total fixed supply of 21 million tokens, in wei.
var fundTotalAmount = uint256.MustFromHex("0x115EEC47F6CF7E35000000")

// UnlockFunds advances the token unlock schedule to the given block
// timestamp and credits the released amount to the beneficiary's balance.
// The total supply is released in 30-day rounds: a constant amount per round
// for the first 20 rounds, after which the per-round amount is cut in half
// every 20 rounds. Within a round, funds accrue linearly per second.
//
// The released amount is returned. A schedule that has not been initialized
// (zero start timestamp) or has not started yet releases nothing.
func UnlockFunds(timestamp int64, state ewasm.WorldState) ewasm.Value {
	initTimestamp := fundSlotInt64(state, 0)
	if timestamp <= initTimestamp || initTimestamp == 0 {
		return ewasm.Value{}
	}

	pendingRound := fundSlotInt64(state, 1)
	unlockedTicks := fundSlotInt64(state, 2)

	// The schedule can be sped up for testing deployments by shortening
	// rounds and the halving period.
	speedup := state.GetStorage(FundBeneficiary, fundSlotKey(3))
	ticksInRound := int64(fundTicksInRound)
	if f := int64(binary.BigEndian.Uint64(speedup[16:24])); f > 1 {
		ticksInRound /= f
	}
	period := int64(fundPeriod)
	if f := int64(binary.BigEndian.Uint64(speedup[24:32])); f > 1 {
		period /= f
	}

	expectedRound := (timestamp - initTimestamp) / ticksInRound

	initialBucket := new(uint256.Int).Div(
		fundTotalAmount, uint256.NewInt(2*uint64(period)))
	bucket := initialBucket.Clone()
	tickBucket := new(uint256.Int).Div(bucket, uint256.NewInt(uint64(ticksInRound)))

	funding := new(uint256.Int)
	exponent := int64(0)
	for expectedRound >= pendingRound {
		if e := pendingRound / period; e != exponent {
			exponent = e
			bucket = new(uint256.Int).Rsh(initialBucket, uint(exponent))
			tickBucket = new(uint256.Int).Div(bucket, uint256.NewInt(uint64(ticksInRound)))
		}
		if expectedRound-pendingRound >= 1 {
			// Release the remainder of a fully elapsed round.
			spent := new(uint256.Int).Mul(uint256.NewInt(uint64(unlockedTicks)), tickBucket)
			funding.Add(funding, new(uint256.Int).Sub(bucket, spent))
			unlockedTicks = 0
			pendingRound++
		} else {
			// Release the elapsed ticks of the current, partial round.
			ticks := timestamp - initTimestamp - ticksInRound*pendingRound - unlockedTicks
			funding.Add(funding, new(uint256.Int).Mul(uint256.NewInt(uint64(ticks)), tickBucket))
			unlockedTicks = (unlockedTicks + ticks) % ticksInRound
			break
		}
	}

	released := ewasm.ValueFromUint256(funding)
	state.SetBalance(FundBeneficiary,
		ewasm.Add(state.GetBalance(FundBeneficiary), released))
	state.SetStorage(FundBeneficiary, fundSlotKey(1), fundWordFromInt64(pendingRound))
	state.SetStorage(FundBeneficiary, fundSlotKey(2), fundWordFromInt64(unlockedTicks))
	return released
}

func fundSlotKey(slot byte) ewasm.Key {
	return ewasm.Key{31: slot}
}

func fundSlotInt64(state ewasm.WorldState, slot byte) int64 {
	word := state.GetStorage(FundBeneficiary, fundSlotKey(slot))
	return int64(binary.BigEndian.Uint64(word[24:32]))
}

func fundWordFromInt64(v int64) (word ewasm.Word) {
	binary.BigEndian.PutUint64(word[24:32], uint64(v))
	return
}
