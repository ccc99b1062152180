// file: internals/helpers/password.go
package helper

import (
	"crypto/rand"
	"math/big"
)

const passwordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateTempPassword returns a random alphanumeric password. Used for
// accounts created by imports; the user must change it on first login.
func GenerateTempPassword(length int) string {
	if length <= 0 {
		length = 12
	}
	out := make([]byte, length)
	max := big.NewInt(int64(len(passwordAlphabet)))
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand should not fail; fall back to a fixed char rather than panic
			out[i] = 'x'
			continue
		}
		out[i] = passwordAlphabet[n.Int64()]
	}
	return string(out)
}
