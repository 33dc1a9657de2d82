package usecase

import (
	"errors"
	"fmt"
	"sort"

	"github.com/petukhovtd/account-service/internal/core/domain"
	"github.com/petukhovtd/account-service/internal/core/port"
	"github.com/petukhovtd/account-service/internal/repository"
)

var (
	// ErrUserAlreadyExists indicates the username is bound to another account.
	ErrUserAlreadyExists = errors.New("user already exists")
	// ErrUserNotFound indicates no account matches the id or username.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidPassword indicates the account exists but the password is wrong.
	ErrInvalidPassword = errors.New("invalid password")
)

// ListParams carries the optional pagination window of a listing request.
type ListParams struct {
	Offset *uint64
	Limit  *uint64
}

// UserPage is one ordered-by-id window over the account set.
type UserPage struct {
	Users  []domain.User
	Size   uint64
	Total  uint64
	Offset *uint64
	Limit  *uint64
}

// UserService handles the account lifecycle over the in-memory store.
type UserService struct {
	users    port.UserStore
	hasher   port.PasswordHasher
	sessions port.SessionRegistry
}

// NewUserService constructs UserService.
func NewUserService(users port.UserStore, hasher port.PasswordHasher) *UserService {
	return &UserService{users: users, hasher: hasher}
}

// WithSessions wires the session registry so account deletion also drops the
// live session.
func (s *UserService) WithSessions(sessions port.SessionRegistry) *UserService {
	s.sessions = sessions
	return s
}

// Register creates an account from pre-validated credentials.
func (s *UserService) Register(username, password string) (domain.User, error) {
	user, err := s.users.Add(username, password)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return domain.User{}, ErrUserAlreadyExists
		}
		return domain.User{}, fmt.Errorf("add user: %w", err)
	}
	return user, nil
}

// Authenticate resolves Basic credentials against the store. An unknown
// name and a wrong password are reported distinctly.
func (s *UserService) Authenticate(username, password string) (domain.User, error) {
	user, err := s.users.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash())
	if err != nil {
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return domain.User{}, ErrInvalidPassword
	}

	return user, nil
}

// Get returns the current snapshot of the account.
func (s *UserService) Get(id domain.UserID) (domain.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}

// Rename changes the account name. The caller's user snapshot is stale after
// a successful rename.
func (s *UserService) Rename(user domain.User, username string) (domain.User, error) {
	renamed, err := s.users.Rename(user, username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameTaken):
			return domain.User{}, ErrUserAlreadyExists
		case errors.Is(err, repository.ErrNotFound):
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("rename user: %w", err)
	}
	return renamed, nil
}

// ChangePassword replaces the account credential with a pre-validated one.
func (s *UserService) ChangePassword(user domain.User, password string) (domain.User, error) {
	updated, err := s.users.ChangePassword(user, password)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("change password: %w", err)
	}
	return updated, nil
}

// SetInfo replaces the profile fields.
func (s *UserService) SetInfo(user domain.User, info domain.Info) (domain.User, error) {
	updated, err := s.users.SetInfo(user, info)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, fmt.Errorf("set info: %w", err)
	}
	return updated, nil
}

// Delete removes the account and any live session for it. Idempotent.
func (s *UserService) Delete(user domain.User) {
	s.users.Delete(user.ID())
	if s.sessions != nil {
		s.sessions.Delete(user.ID())
	}
}

// List returns one window over the accounts ordered by id. An offset beyond
// the total yields an empty window; the window is clamped so it never runs
// past the end.
func (s *UserService) List(params ListParams) UserPage {
	users := make([]domain.User, 0, s.users.Size())
	for _, user := range s.users.All() {
		users = append(users, user)
	}

	sort.Slice(users, func(i, j int) bool { return users[i].ID() < users[j].ID() })

	total := uint64(len(users))

	var offset uint64
	if params.Offset != nil {
		offset = *params.Offset
	}

	end := total
	if params.Limit != nil {
		end = offset + *params.Limit
		if end < offset || end > total {
			end = total
		}
	}

	page := UserPage{
		Total:  total,
		Offset: params.Offset,
		Limit:  params.Limit,
	}

	if offset > total {
		page.Users = nil
		return page
	}

	page.Size = end - offset
	page.Users = users[offset:end]
	return page
}
