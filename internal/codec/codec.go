// Package codec turns the on-chain URI field into text.
//
// Ledger URIs are canonically hex, but older mints stored base64 or the raw
// string. Decode tries hex first, then base64, and otherwise passes the
// input through unchanged. Malformed input never produces an error.
package codec

import (
	"encoding/base64"
	"encoding/hex"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Encoding names the form Detect found.
type Encoding int

const (
	EncodingPlain Encoding = iota
	EncodingHex
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingHex:
		return "hex"
	case EncodingBase64:
		return "base64"
	default:
		return "plain"
	}
}

var (
	hexPattern    = regexp.MustCompile(`^[0-9A-Fa-f]+$`)
	base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]+={0,2}$`)
)

// Decode converts raw to text, trying hex, then base64, then pass-through.
func Decode(raw string) string {
	text, _ := Detect(raw)
	return text
}

// Detect is Decode that also reports which encoding matched.
//
// A string that is valid hex is always decoded as hex, even when it also
// fits the base64 alphabet.
func Detect(raw string) (string, Encoding) {
	if text, ok := decodeHex(raw); ok {
		return text, EncodingHex
	}
	if text, ok := decodeBase64(raw); ok {
		return text, EncodingBase64
	}
	return raw, EncodingPlain
}

// IsHex reports whether s is a non-empty, even-length hex string.
func IsHex(s string) bool {
	return len(s)%2 == 0 && hexPattern.MatchString(s)
}

// StringToHex encodes s the way the ledger stores token URIs: uppercase hex
// of the UTF-8 bytes. Decode reverses it.
func StringToHex(s string) string {
	return strings.ToUpper(hex.EncodeToString([]byte(s)))
}

func decodeHex(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	if !IsHex(s) {
		return "", false
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// decodeBase64 only accepts padded standard base64 whose payload is UTF-8
// text; bare IPFS content identifiers fit the alphabet but not the length.
func decodeBase64(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if len(s)%4 != 0 || !base64Pattern.MatchString(s) {
		return "", false
	}
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil || !isText(b) {
		return "", false
	}
	return string(b), true
}

func isText(b []byte) bool {
	if len(b) == 0 || !utf8.Valid(b) {
		return false
	}
	for _, r := range string(b) {
		if !unicode.IsPrint(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
