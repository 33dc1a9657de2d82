package domain

import "testing"

func TestNewUser(t *testing.T) {
	user := NewUser(7, "alice.smith", "digest")

	if user.ID() != 7 {
		t.Fatalf("expected id 7, got %d", user.ID())
	}
	if user.Username() != "alice.smith" {
		t.Fatalf("unexpected username: %s", user.Username())
	}
	if user.PasswordHash() != "digest" {
		t.Fatalf("unexpected password hash: %s", user.PasswordHash())
	}
	if user.Info() != (Info{}) {
		t.Fatalf("expected empty info, got %+v", user.Info())
	}
}

func TestWithUsernameCopiesEverythingElse(t *testing.T) {
	user := NewUser(3, "alice.smith", "digest").WithInfo(Info{FirstName: "Alice", LastName: "Smith"})

	renamed := user.WithUsername("bob.jones")

	if renamed.ID() != user.ID() {
		t.Fatalf("id changed: %d != %d", renamed.ID(), user.ID())
	}
	if renamed.Username() != "bob.jones" {
		t.Fatalf("unexpected username: %s", renamed.Username())
	}
	if renamed.PasswordHash() != user.PasswordHash() {
		t.Fatal("password hash changed")
	}
	if renamed.Info() != user.Info() {
		t.Fatal("info changed")
	}

	// the original value is untouched
	if user.Username() != "alice.smith" {
		t.Fatalf("original mutated: %s", user.Username())
	}
}

func TestWithPasswordHashCopiesEverythingElse(t *testing.T) {
	user := NewUser(3, "alice.smith", "digest")

	updated := user.WithPasswordHash("other-digest")

	if updated.PasswordHash() != "other-digest" {
		t.Fatalf("unexpected password hash: %s", updated.PasswordHash())
	}
	if updated.ID() != user.ID() || updated.Username() != user.Username() {
		t.Fatal("identity fields changed")
	}
	if user.PasswordHash() != "digest" {
		t.Fatal("original mutated")
	}
}

func TestWithInfoReplacesInfoOnly(t *testing.T) {
	user := NewUser(3, "alice.smith", "digest")

	updated := user.WithInfo(Info{FirstName: "Alice"})

	if updated.Info().FirstName != "Alice" || updated.Info().LastName != "" {
		t.Fatalf("unexpected info: %+v", updated.Info())
	}
	if updated.ID() != user.ID() || updated.Username() != user.Username() || updated.PasswordHash() != user.PasswordHash() {
		t.Fatal("non-info fields changed")
	}
	if user.Info() != (Info{}) {
		t.Fatal("original mutated")
	}
}
