package usecase

import (
	"errors"
	"testing"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/repository/memory"
)

func newSessionService() *SessionService {
	return NewSessionService(memory.NewSessionRegistry(&countingTokenSource{}))
}

func TestLoginIsOneShot(t *testing.T) {
	svc := newSessionService()
	user := domain.NewUser(1, "alice.smith", "digest")

	token, err := svc.Login(user)
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if token == "" {
		t.Fatal("Login returned an empty token")
	}

	if _, err := svc.Login(user); !errors.Is(err, ErrAlreadyAuthorized) {
		t.Fatalf("expected ErrAlreadyAuthorized, got %v", err)
	}

	if !svc.Validate(user.ID(), token) {
		t.Fatal("first token invalidated by the failed second login")
	}
}

func TestRefresh(t *testing.T) {
	svc := newSessionService()
	user := domain.NewUser(1, "alice.smith", "digest")

	if _, err := svc.Refresh(user); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("expected ErrNotAuthorized, got %v", err)
	}

	first, _ := svc.Login(user)

	refreshed, err := svc.Refresh(user)
	if err != nil {
		t.Fatalf("Refresh returned error: %v", err)
	}
	if refreshed == first {
		t.Fatal("Refresh did not rotate the token")
	}

	if svc.Validate(user.ID(), first) {
		t.Fatal("stale token still valid")
	}
	if !svc.Validate(user.ID(), refreshed) {
		t.Fatal("rotated token rejected")
	}
}

func TestLogout(t *testing.T) {
	svc := newSessionService()
	user := domain.NewUser(1, "alice.smith", "digest")

	token, _ := svc.Login(user)

	svc.Logout(user.ID())
	if svc.Validate(user.ID(), token) {
		t.Fatal("token survived logout")
	}
	if svc.IsAuthorized(user.ID()) {
		t.Fatal("user still authorized after logout")
	}

	svc.Logout(user.ID())

	if _, err := svc.Login(user); err != nil {
		t.Fatalf("Login after logout returned error: %v", err)
	}
}
