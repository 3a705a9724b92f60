package cryptox

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// RandomText returns a random string of length n drawn from charset using
// crypto/rand. Used for captcha challenge text.
func RandomText(n int, charset string) (string, error) {
	if n <= 0 || charset == "" {
		return "", fmt.Errorf("cryptox: invalid random text parameters")
	}

	out := make([]byte, n)
	max := big.NewInt(int64(len(charset)))
	for i := range out {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("cryptox: generate random text: %w", err)
		}
		out[i] = charset[idx.Int64()]
	}
	return string(out), nil
}
