package port

import (
	"iter"

	"github.com/petukhovtd/account-service/internal/core/domain"
)

// UserStore is the authoritative owner of account state. Mutations replace
// the stored user value; implementations must keep the username uniqueness
// index in lockstep with the primary mapping.
type UserStore interface {
	Add(username, password string) (domain.User, error)
	GetByID(id domain.UserID) (domain.User, error)
	GetByUsername(username string) (domain.User, error)
	Rename(user domain.User, username string) (domain.User, error)
	ChangePassword(user domain.User, password string) (domain.User, error)
	SetInfo(user domain.User, info domain.Info) (domain.User, error)
	Delete(id domain.UserID)
	All() iter.Seq2[domain.UserID, domain.User]
	Size() int
}

// SessionRegistry tracks at most one live token per authenticated user.
type SessionRegistry interface {
	Create(user domain.User) string
	Update(user domain.User) string
	Check(id domain.UserID, token string) bool
	Delete(id domain.UserID)
	IsAuthorized(id domain.UserID) bool
}
