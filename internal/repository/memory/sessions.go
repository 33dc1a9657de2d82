package memory

import (
	"crypto/subtle"
	"sync"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/core/port"
)

// SessionRegistry maps an authenticated user id to a single live opaque
// token. Token creation is one-shot: a second Create for the same id returns
// an empty token and leaves the first one in place.
type SessionRegistry struct {
	mu     sync.RWMutex
	tokens map[domain.UserID]string

	source port.TokenSource
}

// NewSessionRegistry constructs an empty registry issuing tokens from source.
func NewSessionRegistry(source port.TokenSource) *SessionRegistry {
	return &SessionRegistry{
		tokens: make(map[domain.UserID]string),
		source: source,
	}
}

// Create issues a token for the user. If one already exists the call returns
// an empty string without overwriting it, signalling "already authorized".
func (r *SessionRegistry) Create(user domain.User) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[user.ID()]; exists {
		return ""
	}

	token := r.source.Issue(user)
	r.tokens[user.ID()] = token
	return token
}

// Update regenerates the token only when one already exists for the user;
// otherwise it returns an empty string.
func (r *SessionRegistry) Update(user domain.User) string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tokens[user.ID()]; !exists {
		return ""
	}

	token := r.source.Issue(user)
	r.tokens[user.ID()] = token
	return token
}

// Check reports whether token is the live token for id. The comparison is
// constant-time.
func (r *SessionRegistry) Check(id domain.UserID, token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.tokens[id]
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(token)) == 1
}

// Delete removes any stored token for id. Idempotent.
func (r *SessionRegistry) Delete(id domain.UserID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, id)
}

// IsAuthorized reports whether a token exists for id, regardless of value.
func (r *SessionRegistry) IsAuthorized(id domain.UserID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tokens[id]
	return ok
}
