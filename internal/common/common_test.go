package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsClassicAddress(t *testing.T) {
	for _, a := range []string{
		"rHb9CJAWyB4rj91VRWn96DkukG4bwdtyTh",
		"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe",
		"r9cZA1mLK5R5Am25ArfXFmqgNwjZgnfk59",
		"rf1BiGeXwwQoi8Z2ueFYTEXSwuJYfV2Jpn",
	} {
		assert.True(t, IsClassicAddress(a), a)
	}

	for _, a := range []string{
		"",
		"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYf", // checksum
		"xPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAYe", // prefix
		"rPT1Sjq2YGrBMTttX4GZHjKu9dyfzbpAY0", // 0 is outside the alphabet
		"rrrr",
		"EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v",
	} {
		assert.False(t, IsClassicAddress(a), a)
	}
}

func TestTransferFeeToPercent(t *testing.T) {
	tests := map[uint16]string{
		0:              "0.000",
		1:              "0.001",
		2500:           "2.500",
		MaxTransferFee: "50.000",
	}
	for fee, want := range tests {
		assert.Equal(t, want, TransferFeeToPercent(fee))
	}
}

func TestDropsToXRP(t *testing.T) {
	tests := []struct {
		drops string
		want  string
	}{
		{"0", "0.000000"},
		{"1", "0.000001"},
		{"1500000", "1.500000"},
		{"100000000000000000", "100000000000.000000"},
	}
	for _, tt := range tests {
		got, err := DropsToXRP(tt.drops)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "-1", "1.5", "abc"} {
		_, err := DropsToXRP(bad)
		assert.Error(t, err, "drops %q", bad)
	}
}
