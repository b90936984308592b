package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// codeDigits is the number of digits in one-time codes sent by email.
const codeDigits = 6

// GenerateCode returns a random six digit one-time code as a string.
// Leading zeros are preserved, so "042913" is a valid code.
func GenerateCode() (string, error) {
	bound := big.NewInt(1)
	for range codeDigits {
		bound.Mul(bound, big.NewInt(10))
	}

	n, err := rand.Int(rand.Reader, bound)
	if err != nil {
		return "", fmt.Errorf("generate code: %w", err)
	}

	return fmt.Sprintf("%0*d", codeDigits, n), nil
}
