package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

var (
	ErrorInvalidHex = fmt.Errorf("invalid hex string")
	ErrorHexTooLong = fmt.Errorf("hex string exceeds declared byte length")
)

// NormalizeHex canonicalizes a hex string to lowercase, 0x-prefixed and
// left-zero-padded to byteLength bytes. Identifier fields (investor key,
// transaction hash) are carried in this form at the domain layer.
func NormalizeHex(value string, byteLength int) (string, error) {
	stripped := strings.TrimPrefix(strings.TrimPrefix(value, "0x"), "0X")
	stripped = strings.ToLower(stripped)
	for _, c := range stripped {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			return "", fmt.Errorf("%w: %v", ErrorInvalidHex, value)
		}
	}
	if len(stripped) > byteLength*2 {
		return "", fmt.Errorf("%w: %v nibbles for %v bytes", ErrorHexTooLong, len(stripped), byteLength)
	}
	padded := strings.Repeat("0", byteLength*2-len(stripped)) + stripped
	return "0x" + padded, nil
}

func HexToBytes(value string, byteLength int) ([]byte, error) {
	normalized, err := NormalizeHex(value, byteLength)
	if err != nil {
		return nil, err
	}
	return hex.DecodeString(normalized[2:])
}

func BytesToHex(buffer []byte) string {
	return "0x" + hex.EncodeToString(buffer)
}
