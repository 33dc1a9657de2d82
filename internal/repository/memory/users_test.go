package memory

import (
	"errors"
	"testing"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/repository"
)

// stubHasher is a transparent hasher: fast and easy to assert against.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "digest(" + password + ")", nil
}

func (stubHasher) Verify(password, encoded string) (bool, error) {
	return encoded == "digest("+password+")", nil
}

func newTestStore() *UserStore {
	return NewUserStore(stubHasher{})
}

func TestAddAndLookup(t *testing.T) {
	store := newTestStore()

	user, err := store.Add("alice.smith", "password1")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if user.PasswordHash() == "password1" {
		t.Fatal("store kept the plaintext password")
	}

	byID, err := store.GetByID(user.ID())
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if byID.Username() != "alice.smith" {
		t.Fatalf("unexpected username: %s", byID.Username())
	}

	byName, err := store.GetByUsername("alice.smith")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if byName.ID() != user.ID() {
		t.Fatalf("index resolved to wrong id: %d != %d", byName.ID(), user.ID())
	}
}

func TestLookupUnknown(t *testing.T) {
	store := newTestStore()

	if _, err := store.GetByID(42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := store.GetByUsername("nobody"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddDuplicateLeavesStoreUnchanged(t *testing.T) {
	store := newTestStore()

	first, err := store.Add("alice.smith", "password1")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if _, err := store.Add("alice.smith", "password2"); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	if store.Size() != 1 {
		t.Fatalf("size changed after failed add: %d", store.Size())
	}

	kept, err := store.GetByUsername("alice.smith")
	if err != nil {
		t.Fatalf("GetByUsername returned error: %v", err)
	}
	if kept.ID() != first.ID() || kept.PasswordHash() != first.PasswordHash() {
		t.Fatal("failed add modified the existing user")
	}
}

func TestIDsStrictlyIncreaseAndAreNeverReused(t *testing.T) {
	store := newTestStore()

	var last domain.UserID
	for _, name := range []string{"user.one", "user.two", "user.three"} {
		user, err := store.Add(name, "password1")
		if err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
		if user.ID() <= last {
			t.Fatalf("id %d not greater than %d", user.ID(), last)
		}
		last = user.ID()
	}

	store.Delete(last)

	user, err := store.Add("user.four", "password1")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if user.ID() <= last {
		t.Fatalf("deleted id reused: %d <= %d", user.ID(), last)
	}
}

func TestRename(t *testing.T) {
	store := newTestStore()

	user, err := store.Add("alice.smith", "password1")
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	renamed, err := store.Rename(user, "alice.jones")
	if err != nil {
		t.Fatalf("Rename returned error: %v", err)
	}
	if renamed.ID() != user.ID() {
		t.Fatalf("rename changed the id: %d != %d", renamed.ID(), user.ID())
	}
	if renamed.PasswordHash() != user.PasswordHash() {
		t.Fatal("rename changed the password hash")
	}

	if _, err := store.GetByUsername("alice.smith"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("old username still resolves: %v", err)
	}

	byNew, err := store.GetByUsername("alice.jones")
	if err != nil {
		t.Fatalf("new username does not resolve: %v", err)
	}
	if byNew.ID() != user.ID() {
		t.Fatalf("new username resolves to wrong id: %d", byNew.ID())
	}
}

func TestRenameConflict(t *testing.T) {
	store := newTestStore()

	alice, _ := store.Add("alice.smith", "password1")
	if _, err := store.Add("bob.jones", "password1"); err != nil {
		t.Fatalf("Add returned error: %v", err)
	}

	if _, err := store.Rename(alice, "bob.jones"); !errors.Is(err, repository.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// both index entries survive the failed rename
	if _, err := store.GetByUsername("alice.smith"); err != nil {
		t.Fatalf("alice.smith lost: %v", err)
	}
	if _, err := store.GetByUsername("bob.jones"); err != nil {
		t.Fatalf("bob.jones lost: %v", err)
	}
}

func TestRenameToOwnName(t *testing.T) {
	store := newTestStore()

	alice, _ := store.Add("alice.smith", "password1")

	kept, err := store.Rename(alice, "alice.smith")
	if err != nil {
		t.Fatalf("Rename to own name returned error: %v", err)
	}
	if kept.ID() != alice.ID() {
		t.Fatalf("unexpected id: %d", kept.ID())
	}
}

func TestRenameDeletedUser(t *testing.T) {
	store := newTestStore()

	alice, _ := store.Add("alice.smith", "password1")
	store.Delete(alice.ID())

	if _, err := store.Rename(alice, "alice.jones"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChangePassword(t *testing.T) {
	store := newTestStore()

	user, _ := store.Add("alice.smith", "password1")

	updated, err := store.ChangePassword(user, "password2")
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if updated.PasswordHash() == user.PasswordHash() {
		t.Fatal("password hash unchanged")
	}
	if updated.Username() != user.Username() || updated.ID() != user.ID() {
		t.Fatal("identity fields changed")
	}

	stored, _ := store.GetByID(user.ID())
	if stored.PasswordHash() != updated.PasswordHash() {
		t.Fatal("store kept the stale snapshot")
	}
}

func TestSetInfo(t *testing.T) {
	store := newTestStore()

	user, _ := store.Add("alice.smith", "password1")

	info := domain.Info{FirstName: "Alice", LastName: "Smith"}
	updated, err := store.SetInfo(user, info)
	if err != nil {
		t.Fatalf("SetInfo returned error: %v", err)
	}
	if updated.Info() != info {
		t.Fatalf("unexpected info: %+v", updated.Info())
	}

	stored, _ := store.GetByID(user.ID())
	if stored.Info() != info {
		t.Fatal("store kept the stale snapshot")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := newTestStore()

	user, _ := store.Add("alice.smith", "password1")

	store.Delete(user.ID())
	if store.Size() != 0 {
		t.Fatalf("expected empty store, size %d", store.Size())
	}

	store.Delete(user.ID())
	store.Delete(999)
	if store.Size() != 0 {
		t.Fatalf("size changed on repeated delete: %d", store.Size())
	}

	if _, err := store.GetByUsername("alice.smith"); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("index entry survived delete: %v", err)
	}
}

func TestAllIsRestartable(t *testing.T) {
	store := newTestStore()

	for _, name := range []string{"user.one", "user.two", "user.three"} {
		if _, err := store.Add(name, "password1"); err != nil {
			t.Fatalf("Add returned error: %v", err)
		}
	}

	traversal := store.All()

	count := func() int {
		n := 0
		for id, user := range traversal {
			if id != user.ID() {
				t.Fatalf("key %d does not match user id %d", id, user.ID())
			}
			n++
		}
		return n
	}

	if first := count(); first != 3 {
		t.Fatalf("first pass yielded %d users", first)
	}
	if second := count(); second != 3 {
		t.Fatalf("second pass yielded %d users", second)
	}
}
