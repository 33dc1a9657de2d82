package memory

import (
	"fmt"
	"iter"
	"sync"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/core/port"
	"github.com/petukhovtd/account-service/internal/repository"
)

// UserStore owns the live set of accounts for the process lifetime. A primary
// map keyed by id holds the authoritative user values; a secondary
// username index enforces global uniqueness. One mutex guards both maps so
// renames are atomic: no reader ever observes the old name gone while the new
// one is absent.
type UserStore struct {
	mu     sync.RWMutex
	users  map[domain.UserID]domain.User
	index  map[string]domain.UserID
	lastID domain.UserID

	hasher port.PasswordHasher
}

// NewUserStore constructs an empty store hashing credentials with the
// provided hasher.
func NewUserStore(hasher port.PasswordHasher) *UserStore {
	return &UserStore{
		users:  make(map[domain.UserID]domain.User),
		index:  make(map[string]domain.UserID),
		hasher: hasher,
	}
}

// Add registers a new account. The username must be pre-validated by the
// caller. Ids are strictly increasing and never reused, even after deletion.
func (s *UserStore) Add(username, password string) (domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.index[username]; exists {
		return domain.User{}, repository.ErrUsernameTaken
	}

	s.lastID++
	user := domain.NewUser(s.lastID, username, hash)
	s.users[user.ID()] = user
	s.index[username] = user.ID()

	return user, nil
}

// GetByID looks up a user by id.
func (s *UserStore) GetByID(id domain.UserID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return user, nil
}

// GetByUsername looks up a user through the uniqueness index.
func (s *UserStore) GetByUsername(username string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.index[username]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}
	return s.users[id], nil
}

// Rename replaces the user's name, keeping id, digest, and info. The swap of
// both index entries happens under the write lock together with the primary
// map update. The caller's copy of user is stale afterwards.
func (s *UserStore) Rename(user domain.User, username string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID()]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}

	if owner, exists := s.index[username]; exists {
		if owner != user.ID() {
			return domain.User{}, repository.ErrUsernameTaken
		}
		return current, nil
	}

	renamed := current.WithUsername(username)
	s.users[renamed.ID()] = renamed
	delete(s.index, current.Username())
	s.index[username] = renamed.ID()

	return renamed, nil
}

// ChangePassword rehashes the credential and swaps the stored value. The
// username index is untouched.
func (s *UserStore) ChangePassword(user domain.User, password string) (domain.User, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID()]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}

	updated := current.WithPasswordHash(hash)
	s.users[updated.ID()] = updated

	return updated, nil
}

// SetInfo replaces the profile fields of the stored user.
func (s *UserStore) SetInfo(user domain.User, info domain.Info) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.users[user.ID()]
	if !ok {
		return domain.User{}, repository.ErrNotFound
	}

	updated := current.WithInfo(info)
	s.users[updated.ID()] = updated

	return updated, nil
}

// Delete removes the user from both maps. Deleting an unknown id is a no-op.
func (s *UserStore) Delete(id domain.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return
	}

	delete(s.index, user.Username())
	delete(s.users, id)
}

// All returns a restartable traversal over a consistent snapshot of the
// store. Iteration order is unspecified; callers needing determinism sort by
// id themselves.
func (s *UserStore) All() iter.Seq2[domain.UserID, domain.User] {
	s.mu.RLock()
	snapshot := make([]domain.User, 0, len(s.users))
	for _, user := range s.users {
		snapshot = append(snapshot, user)
	}
	s.mu.RUnlock()

	return func(yield func(domain.UserID, domain.User) bool) {
		for _, user := range snapshot {
			if !yield(user.ID(), user) {
				return
			}
		}
	}
}

// Size reports the number of live users.
func (s *UserStore) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}
