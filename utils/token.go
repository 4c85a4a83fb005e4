package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

// GenerateNumericCode returns a random code of length digits, e.g. "042917".
func GenerateNumericCode(length int) (string, error) {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		d, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + d.Int64()))
	}
	return sb.String(), nil
}
