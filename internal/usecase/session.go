package usecase

import (
	"errors"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/core/port"
)

var (
	// ErrAlreadyAuthorized indicates a live token already exists for the user.
	// Token creation is one-shot; the existing token stays in place.
	ErrAlreadyAuthorized = errors.New("user already authorized")
	// ErrNotAuthorized indicates no live token exists for the user.
	ErrNotAuthorized = errors.New("user not authorized")
)

// SessionService exposes token issuance and validation over the registry.
type SessionService struct {
	sessions port.SessionRegistry
}

// NewSessionService constructs SessionService.
func NewSessionService(sessions port.SessionRegistry) *SessionService {
	return &SessionService{sessions: sessions}
}

// Login issues the single live token for the user.
func (s *SessionService) Login(user domain.User) (string, error) {
	token := s.sessions.Create(user)
	if token == "" {
		return "", ErrAlreadyAuthorized
	}
	return token, nil
}

// Refresh regenerates the token, failing when the user has none.
func (s *SessionService) Refresh(user domain.User) (string, error) {
	token := s.sessions.Update(user)
	if token == "" {
		return "", ErrNotAuthorized
	}
	return token, nil
}

// Validate reports whether token is the live token for id.
func (s *SessionService) Validate(id domain.UserID, token string) bool {
	return s.sessions.Check(id, token)
}

// Logout drops any live token for id. Idempotent.
func (s *SessionService) Logout(id domain.UserID) {
	s.sessions.Delete(id)
}

// IsAuthorized reports whether a live token exists for id.
func (s *SessionService) IsAuthorized(id domain.UserID) bool {
	return s.sessions.IsAuthorized(id)
}
