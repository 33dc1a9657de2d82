package domain

// UserID identifies an account. Identifiers are assigned monotonically by the
// user store and are never reused, even after deletion.
type UserID uint64

// Info holds the optional free-form profile fields of an account.
type Info struct {
	FirstName string
	LastName  string
}

// User is an immutable snapshot of one account. Any change produces a new
// value carrying the same id; the store keeps the authoritative copy and
// everything else holds read-only snapshots.
type User struct {
	id           UserID
	username     string
	passwordHash string
	info         Info
}

// NewUser constructs a user from an already-hashed password. The plaintext
// never reaches this package.
func NewUser(id UserID, username, passwordHash string) User {
	return User{
		id:           id,
		username:     username,
		passwordHash: passwordHash,
	}
}

// ID returns the account identifier.
func (u User) ID() UserID {
	return u.id
}

// Username returns the unique account name.
func (u User) Username() string {
	return u.username
}

// PasswordHash returns the stored credential digest.
func (u User) PasswordHash() string {
	return u.passwordHash
}

// Info returns the profile fields.
func (u User) Info() Info {
	return u.info
}

// WithUsername returns a copy of the user under a new name.
func (u User) WithUsername(username string) User {
	u.username = username
	return u
}

// WithPasswordHash returns a copy of the user with a replaced credential digest.
func (u User) WithPasswordHash(passwordHash string) User {
	u.passwordHash = passwordHash
	return u
}

// WithInfo returns a copy of the user with replaced profile fields.
func (u User) WithInfo(info Info) User {
	u.info = info
	return u
}
