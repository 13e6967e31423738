package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/klsociety/governance-records-api/internal/constants"
)

// GenerateOTP generates a random numeric one-time password for the
// password-reset flow.
func GenerateOTP() (string, error) {
	code := make([]byte, constants.OTPLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", fmt.Errorf("failed to generate random digit: %w", err)
		}
		code[i] = byte('0' + n.Int64())
	}
	return string(code), nil
}
