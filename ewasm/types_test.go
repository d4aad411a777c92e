// Copyright (C) 2024 Second State.
// This file is part of the ewasm-host library.
//
// The ewasm-host library is free software: you can redistribute it and/or
// modify it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.

package ewasm

import (
	"encoding/json"
	"fmt"
	"math"
	"testing"

	"github.com/holiman/uint256"
)

func TestValue_NewValue(t *testing.T) {
	tests := []struct {
		value Value
		index int
	}{
		{NewValue(1), 31},
		{NewValue(1, 0), 23},
		{NewValue(1, 0, 0), 15},
		{NewValue(1, 0, 0, 0), 7},
	}

	for _, test := range tests {
		t.Run(fmt.Sprintf("%v[%d]", test.value, test.index), func(t *testing.T) {
			if test.value[test.index] != 1 {
				t.Errorf("NewValue failed to set the correct byte")
			}
		})
	}
}

func TestValue_NewValueTooManyArgumentsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic for too many arguments")
		}
	}()
	NewValue(1, 2, 3, 4, 5)
}

func TestValue_Uint256Conversion(t *testing.T) {
	tests := []*uint256.Int{
		nil,
		uint256.NewInt(0),
		uint256.NewInt(1),
		uint256.NewInt(math.MaxUint64),
		new(uint256.Int).Lsh(uint256.NewInt(1), 255),
	}

	for _, test := range tests {
		value := ValueFromUint256(test)
		want := new(uint256.Int)
		if test != nil {
			want = test
		}
		if got := value.ToUint256(); want.Cmp(got) != 0 {
			t.Errorf("conversion round trip failed, wanted %v, got %v", want, got)
		}
	}
}

func TestValue_Arithmetic(t *testing.T) {
	tests := map[string]struct {
		got  Value
		want Value
	}{
		"add":                {Add(NewValue(1), NewValue(2)), NewValue(3)},
		"add with carry":     {Add(NewValue(math.MaxUint64), NewValue(1)), NewValue(1, 0)},
		"sub":                {Sub(NewValue(3), NewValue(1)), NewValue(2)},
		"sub with borrow":    {Sub(NewValue(1, 0), NewValue(1)), NewValue(math.MaxUint64)},
		"scale":              {NewValue(21).Scale(2), NewValue(42)},
		"scale zero":         {NewValue(21).Scale(0), NewValue()},
		"scale of zero":      {NewValue().Scale(100), NewValue()},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			if test.want != test.got {
				t.Errorf("wanted %v, got %v", test.want, test.got)
			}
		})
	}
}

func TestValue_Cmp(t *testing.T) {
	small := NewValue(1)
	big := NewValue(1, 0)

	if small.Cmp(big) >= 0 {
		t.Errorf("expected %v < %v", small, big)
	}
	if big.Cmp(small) <= 0 {
		t.Errorf("expected %v > %v", big, small)
	}
	if small.Cmp(small) != 0 {
		t.Errorf("expected %v == %v", small, small)
	}
}

func TestValue_IsZero(t *testing.T) {
	if !NewValue().IsZero() {
		t.Errorf("default value must be zero")
	}
	if NewValue(1).IsZero() {
		t.Errorf("non-zero value reported as zero")
	}
}

func TestAddress_JSON_Encoding(t *testing.T) {
	tests := []struct {
		address Address
		json    string
	}{
		{Address{}, "\"0x0000000000000000000000000000000000000000\""},
		{Address{1}, "\"0x0100000000000000000000000000000000000000\""},
		{Address{0xAB}, "\"0xab00000000000000000000000000000000000000\""},
	}

	for _, test := range tests {
		encoded, err := json.Marshal(test.address)
		if err != nil {
			t.Fatalf("failed to encode into JSON: %v", err)
		}
		if want, got := test.json, string(encoded); want != got {
			t.Errorf("unexpected JSON encoding, wanted %v, got %v", want, got)
		}

		var restored Address
		if err := json.Unmarshal(encoded, &restored); err != nil {
			t.Fatalf("failed to restore address: %v", err)
		}
		if test.address != restored {
			t.Errorf("unexpected restored value, wanted %v, got %v", test.address, restored)
		}
	}
}

func TestAddress_JSON_InvalidValueDecodingFails(t *testing.T) {
	tests := map[string]string{
		"empty":             "\"\"",
		"no hex prefix":     "\"0000000000000000000000000000000000000000\"",
		"too short":         "\"0x00000000000000000000000000000000000000\"",
		"too long":          "\"0x000000000000000000000000000000000000000000\"",
		"invalid hex":       "\"0x0g00000000000000000000000000000000000000\"",
		"not a JSON string": "0x000102030405060708090a0b0c0d0e0f10111213",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			var address Address
			if json.Unmarshal([]byte(data), &address) == nil {
				t.Errorf("expected decoding to fail, but instead it produced %v", address)
			}
		})
	}
}

func TestCallKind_JSON_RoundTrip(t *testing.T) {
	kinds := []CallKind{Call, DelegateCall, StaticCall, CallCode, Create, Create2}

	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			encoded, err := json.Marshal(kind)
			if err != nil {
				t.Fatalf("failed to encode into JSON: %v", err)
			}
			var restored CallKind
			if err := json.Unmarshal(encoded, &restored); err != nil {
				t.Fatalf("failed to restore call kind: %v", err)
			}
			if kind != restored {
				t.Errorf("unexpected restored value, wanted %v, got %v", kind, restored)
			}
		})
	}
}

func TestCallKind_JSON_InvalidValuesAreRejected(t *testing.T) {
	if _, err := json.Marshal(CallKind(99)); err == nil {
		t.Errorf("expected encoding of invalid kind to fail")
	}
	var kind CallKind
	if err := json.Unmarshal([]byte("\"jump\""), &kind); err == nil {
		t.Errorf("expected decoding of unknown kind to fail")
	}
}
