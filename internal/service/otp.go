package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// generateOTP returns a 4-digit one-time code for handover verification.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		return "", fmt.Errorf("generating otp: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}
