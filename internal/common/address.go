package common

import (
	"bytes"
	"crypto/sha256"
	"strings"

	"github.com/mr-tron/base58"
)

// rippleAlphabet is the base58 alphabet of XRPL addresses and seeds.
const rippleAlphabet = "rpshnaf39wBUDNEGHJKLM4PQRST7VWXYZ2bcdeCg65jkm8oFqi1tuvAxyz"

const (
	accountIDPrefix = 0x00
	accountIDLen    = 20
	checksumLen     = 4
)

var rippleEncoding = base58.NewAlphabet(rippleAlphabet)

// IsClassicAddress reports whether s is a well-formed classic XRPL address
// (r..., base58check over a 20 byte account id).
func IsClassicAddress(s string) bool {
	if len(s) < 25 || len(s) > 35 || !strings.HasPrefix(s, "r") {
		return false
	}
	raw, err := base58.DecodeAlphabet(s, rippleEncoding)
	if err != nil || len(raw) != 1+accountIDLen+checksumLen || raw[0] != accountIDPrefix {
		return false
	}
	payload, sum := raw[:1+accountIDLen], raw[1+accountIDLen:]
	return bytes.Equal(checksum(payload), sum)
}

func checksum(payload []byte) []byte {
	first := sha256.Sum256(payload)
	second := sha256.Sum256(first[:])
	return second[:checksumLen]
}
