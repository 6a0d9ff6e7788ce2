package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// StrRandom returns a cryptographically random alphanumeric string of length n.
func StrRandom(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}

	var b strings.Builder
	b.Grow(n)
	max := big.NewInt(int64(len(alphanumeric)))
	for i := 0; i < n; i++ {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("random string: %w", err)
		}
		b.WriteByte(alphanumeric[idx.Int64()])
	}
	return b.String(), nil
}

// UploadFileName builds "<unix-ms>-<30 random chars>.<ext>" for stored uploads.
func UploadFileName(now time.Time, ext string) (string, error) {
	random, err := StrRandom(30)
	if err != nil {
		return "", err
	}
	ext = strings.TrimPrefix(strings.ToLower(ext), ".")
	return fmt.Sprintf("%d-%s.%s", now.UnixMilli(), random, ext), nil
}
