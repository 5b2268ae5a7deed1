package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. Users are created on registration and
// never updated or deleted afterwards; the username is the identity that task
// ownership and token subjects are keyed on.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, only populated transiently during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username and plaintext password.
// It generates a new UUID and sets the timestamps. The caller is responsible
// for hashing the password before the user is stored.
func NewUser(username, password string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ErrEmptyUsername
	}

	if u.Password != "" {
		// bcrypt silently truncates input beyond 72 bytes, so reject it
		// outright rather than hash a prefix.
		if len(u.Password) > 72 {
			return ErrPasswordTooLong
		}
	} else if u.HashedPassword == "" {
		// A user loaded from the store must carry a hash.
		return ErrEmptyHashedPassword
	}

	return nil
}
