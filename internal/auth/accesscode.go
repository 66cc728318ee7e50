package auth

import (
	"crypto/rand"
	"fmt"
	"strings"
)

// AccessCodeLength is the portal credential length handed to clients.
const AccessCodeLength = 8

// codeAlphabet omits 0/O/1/I so codes read unambiguously over the phone.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewAccessCode returns a random 8-character portal access code.
func NewAccessCode() (string, error) {
	buf := make([]byte, AccessCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate access code: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}
	return string(buf), nil
}

// NormalizeAccessCode uppercases and trims a user-typed code.
func NormalizeAccessCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ValidAccessCode reports whether a normalized code has the right shape.
func ValidAccessCode(code string) bool {
	if len(code) != AccessCodeLength {
		return false
	}
	for _, c := range code {
		if !strings.ContainsRune(codeAlphabet, c) {
			return false
		}
	}
	return true
}
