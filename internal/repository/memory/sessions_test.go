package memory

import (
	"fmt"
	"testing"

	"github.com/petukhovtd/account-service/internal/core/domain"
)

// stubTokenSource issues a distinct token on every call.
type stubTokenSource struct {
	calls int
}

func (s *stubTokenSource) Issue(user domain.User) string {
	s.calls++
	return fmt.Sprintf("token-%d-%d", user.ID(), s.calls)
}

func TestCreateIsOneShot(t *testing.T) {
	registry := NewSessionRegistry(&stubTokenSource{})
	user := domain.NewUser(1, "alice.smith", "digest")

	first := registry.Create(user)
	if first == "" {
		t.Fatal("first Create returned an empty token")
	}

	second := registry.Create(user)
	if second != "" {
		t.Fatalf("second Create returned a token: %q", second)
	}

	if !registry.Check(user.ID(), first) {
		t.Fatal("first token invalidated by the second Create")
	}
}

func TestUpdateRequiresExistingToken(t *testing.T) {
	registry := NewSessionRegistry(&stubTokenSource{})
	user := domain.NewUser(1, "alice.smith", "digest")

	if token := registry.Update(user); token != "" {
		t.Fatalf("Update without a session returned a token: %q", token)
	}

	first := registry.Create(user)

	refreshed := registry.Update(user)
	if refreshed == "" {
		t.Fatal("Update returned an empty token")
	}
	if refreshed == first {
		t.Fatal("Update did not rotate the token")
	}

	if registry.Check(user.ID(), first) {
		t.Fatal("stale token still accepted")
	}
	if !registry.Check(user.ID(), refreshed) {
		t.Fatal("rotated token rejected")
	}
}

func TestCheckRejectsWrongToken(t *testing.T) {
	registry := NewSessionRegistry(&stubTokenSource{})
	user := domain.NewUser(1, "alice.smith", "digest")

	token := registry.Create(user)

	if registry.Check(user.ID(), token+"x") {
		t.Fatal("wrong token accepted")
	}
	if registry.Check(2, token) {
		t.Fatal("token accepted for a different id")
	}
}

func TestSessionDeleteIsIdempotent(t *testing.T) {
	registry := NewSessionRegistry(&stubTokenSource{})
	user := domain.NewUser(1, "alice.smith", "digest")

	token := registry.Create(user)

	registry.Delete(user.ID())
	if registry.Check(user.ID(), token) {
		t.Fatal("token survived delete")
	}
	if registry.IsAuthorized(user.ID()) {
		t.Fatal("user still authorized after delete")
	}

	registry.Delete(user.ID())
	registry.Delete(999)

	// session creation works again after delete
	if token := registry.Create(user); token == "" {
		t.Fatal("Create after delete returned an empty token")
	}
}

func TestIsAuthorized(t *testing.T) {
	registry := NewSessionRegistry(&stubTokenSource{})
	user := domain.NewUser(1, "alice.smith", "digest")

	if registry.IsAuthorized(user.ID()) {
		t.Fatal("fresh registry reports authorized")
	}

	registry.Create(user)
	if !registry.IsAuthorized(user.ID()) {
		t.Fatal("authorized user reported as not authorized")
	}
}
