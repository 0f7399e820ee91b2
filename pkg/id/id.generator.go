package id

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"
)

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

const (
	walletPrefix     = "MKEY"
	walletBodyLength = 16

	transactionPrefix     = "TXN"
	transactionRandLength = 7
)

func randomBase36(n int) string {
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, big.NewInt(int64(len(base36Chars))))
		if err != nil {
			panic(err)
		}
		out[i] = base36Chars[num.Int64()]
	}
	return string(out)
}

// GenerateWalletAddress creates a unique, uppercase alphanumeric wallet
// address. Example: MKEY-9T4G0XQ2KD8PLZ1M
func GenerateWalletAddress() string {
	return fmt.Sprintf("%s-%s", walletPrefix, randomBase36(walletBodyLength))
}

// GenerateTransactionID creates a human-readable transaction identifier.
// Example: TXN-1735689600123-A7K2P9Q
func GenerateTransactionID() string {
	return fmt.Sprintf("%s-%d-%s", transactionPrefix, time.Now().UnixMilli(), randomBase36(transactionRandLength))
}
