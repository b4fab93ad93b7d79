package main

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAmount(t *testing.T) {
	testCases := []struct {
		name     string
		amount   uint64
		decimals int32
		expected string
	}{
		{name: "whole units", amount: 180, decimals: 0, expected: "180"},
		{name: "two decimals", amount: 12345, decimals: 2, expected: "123.45"},
		{name: "padded", amount: 5, decimals: 3, expected: "0.005"},
		{name: "max", amount: math.MaxUint64, decimals: 0, expected: "18446744073709551615"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, formatAmount(tc.amount, tc.decimals))
		})
	}
}

func TestParseAmount(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		decimals int32
		expected uint64
		wantErr  bool
	}{
		{name: "whole units", input: "100", decimals: 0, expected: 100},
		{name: "fraction", input: "1.25", decimals: 2, expected: 125},
		{name: "short fraction", input: "1.5", decimals: 3, expected: 1500},
		{name: "max", input: "18446744073709551615", decimals: 0, expected: math.MaxUint64},
		{name: "too precise", input: "1.255", decimals: 2, wantErr: true},
		{name: "negative", input: "-1", decimals: 0, wantErr: true},
		{name: "too large", input: "18446744073709551616", decimals: 0, wantErr: true},
		{name: "garbage", input: "ten", decimals: 0, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseAmount(tc.input, tc.decimals)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}
