// internal/utils/crypto.go
package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

func GenerateRandomString(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	b := make([]byte, length)

	for i := range b {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		b[i] = charset[n.Int64()]
	}

	return string(b), nil
}

// GenerateReceiptReference builds the receipt id sent with a gateway order.
// Unique enough for reconciliation; the gateway order id is the real key.
func GenerateReceiptReference() string {
	suffix, err := GenerateRandomString(6)
	if err != nil {
		suffix = "000000"
	}
	return fmt.Sprintf("order_%d_%s", time.Now().UnixMilli(), suffix)
}
