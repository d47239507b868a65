package user

import (
	"time"

	"github.com/google/uuid"
)

// User is the authenticated principal that owns bookings.
type User struct {
	id           uuid.UUID
	username     Username
	passwordHash string
	role         Role
	isActive     bool
	lastLogin    *time.Time
	createdAt    time.Time
}

func NewUser(username Username, passwordHash string, role Role, now time.Time) *User {
	return &User{
		id:           uuid.New(),
		username:     username,
		passwordHash: passwordHash,
		role:         role,
		isActive:     true,
		createdAt:    now,
	}
}

// Reconstruct rebuilds a persisted user without validation.
func Reconstruct(
	id uuid.UUID,
	username string,
	passwordHash string,
	role Role,
	isActive bool,
	lastLogin *time.Time,
	createdAt time.Time,
) *User {
	return &User{
		id:           id,
		username:     Username{value: username},
		passwordHash: passwordHash,
		role:         role,
		isActive:     isActive,
		lastLogin:    lastLogin,
		createdAt:    createdAt,
	}
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) Username() Username    { return u.username }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) IsActive() bool        { return u.isActive }
func (u *User) LastLogin() *time.Time { return u.lastLogin }
func (u *User) CreatedAt() time.Time  { return u.createdAt }

func (u *User) RecordLogin(at time.Time) {
	u.lastLogin = &at
}

func (u *User) Deactivate() {
	u.isActive = false
}
