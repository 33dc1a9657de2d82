package security

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/petukhovtd/account-service/internal/core/domain"
)

// HashToken calculates a SHA-256 hash of the provided value.
func HashToken(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// TokenIssuer derives opaque session tokens. A token is the hash of the
// user's name, credential digest, and the issue timestamp, so a reissued
// token never repeats. It implements port.TokenSource.
type TokenIssuer struct {
	now func() time.Time
}

// NewTokenIssuer constructs a token issuer using the wall clock.
func NewTokenIssuer() *TokenIssuer {
	return &TokenIssuer{now: time.Now}
}

// Issue returns a fresh opaque token for the user.
func (t *TokenIssuer) Issue(user domain.User) string {
	payload, _ := json.Marshal(struct {
		Username     string `json:"username"`
		PasswordHash string `json:"password_hash"`
		Timestamp    int64  `json:"timestamp"`
	}{
		Username:     user.Username(),
		PasswordHash: user.PasswordHash(),
		Timestamp:    t.now().UnixNano(),
	})

	return HashToken(string(payload))
}
