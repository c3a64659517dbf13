package common

import (
	"fmt"
	"strconv"
)

// TransferFeeDecimals is the precision of an NFT transfer fee: the ledger
// stores it in units of 1/1000 of a percent (0-50000).
const TransferFeeDecimals = 3

// MaxTransferFee is the largest transfer fee the ledger accepts (50%).
const MaxTransferFee = 50000

// TransferFeeToPercent converts a ledger transfer fee to a percent string
// without float precision loss.
// Example: TransferFeeToPercent(2500) = "2.500"
func TransferFeeToPercent(fee uint16) string {
	return formatWithDecimals(uint64(fee), TransferFeeDecimals)
}

// XRPDecimals is the number of drops digits in one XRP.
const XRPDecimals = 6

// DropsToXRP converts a drops amount as the ledger writes it to an XRP
// decimal string.
// Example: DropsToXRP("1500000") = "1.500000"
func DropsToXRP(drops string) (string, error) {
	v, err := strconv.ParseUint(drops, 10, 64)
	if err != nil {
		return "", fmt.Errorf("invalid drops amount %q: %w", drops, err)
	}
	return formatWithDecimals(v, XRPDecimals), nil
}

// formatWithDecimals converts integer to decimal string by inserting decimal point
// Example: formatWithDecimals(24981836, 9) = "0.024981836"
func formatWithDecimals(value uint64, decimals int) string {
	s := fmt.Sprintf("%d", value)

	// Pad with leading zeros if needed
	for len(s) <= decimals {
		s = "0" + s
	}

	// Insert decimal point
	pos := len(s) - decimals
	return s[:pos] + "." + s[pos:]
}
