package random

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const letterBytes = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandString returns n random letters and digits from a crypto source.
func RandString(n int) string {
	sb := strings.Builder{}
	sb.Grow(n)
	max := big.NewInt(int64(len(letterBytes)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			panic("random source failed: " + err.Error())
		}
		sb.WriteByte(letterBytes[idx.Int64()])
	}
	return sb.String()
}
