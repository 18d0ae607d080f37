package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddressValid(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"checksummed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"lower case", "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"upper case", "0x5AAEB6053F3E94C9B9A09F33669435E7EF1BEAED", "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"},
		{"no prefix", "fb6916095ca1df60bb79ce92ce3ea74c37c5d359", "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"},
		{"digits only body", "0xd1220a0cf47c7b9be7a2e6ba89f429762e7b9adb", "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeAddress(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNormalizeAddressIdempotent(t *testing.T) {
	inputs := []string{
		"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"0xdbf03b407c01e7cd3cbea99509d93f8dddc8c6fb",
		"0XD1220A0CF47C7B9BE7A2E6BA89F429762E7B9ADB",
		"0x0000000000000000000000000000000000000000",
	}
	for _, in := range inputs {
		once, err := NormalizeAddress(in)
		require.NoError(t, err, in)
		twice, err := NormalizeAddress(once)
		require.NoError(t, err, in)
		assert.Equal(t, once, twice)
	}
}

func TestNormalizeAddressInvalid(t *testing.T) {
	inputs := map[string]string{
		"empty":          "",
		"prefix only":    "0x",
		"too short":      "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeA",
		"too long":       "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed00",
		"bad characters": "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAzz",
		"bad checksum":   "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAeD",
		"spaces":         " 0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		"ens name":       "vitalik.eth",
	}
	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			got, err := NormalizeAddress(in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidAddress))
			assert.Empty(t, got)
		})
	}
}
