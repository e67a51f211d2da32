package sessions

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/pkg/errors"
)

const stateByteLength = 32

// GenerateState returns 32 bytes from crypto/rand encoded as unpadded base64url.
func GenerateState() (string, error) {
	b := make([]byte, stateByteLength)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Wrap(err, "[sessions.GenerateState] reading random bytes")
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
