// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Roles a user account can hold. Role gates the administrative endpoints;
// every account starts as RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a registered account in the system.
// It contains authentication credentials, profile data and metadata for
// user management.
type User struct {
	// ID is the unique identifier for the user, assigned at creation.
	ID uint `gorm:"primaryKey"`

	// Name is the display name shown to other users.
	Name string `gorm:"size:100;not null"`

	// Alias is the unique handle the user is known by.
	// It must be unique across all users.
	Alias string `gorm:"uniqueIndex:uq_users_alias;size:30;not null"`

	// Email is the user's email address used for authentication.
	// Stored lower-cased and trimmed; unique across all users.
	Email string `gorm:"uniqueIndex:uq_users_email;size:255;not null"`

	// Password is the hashed password for the user.
	// This must never store plaintext passwords.
	Password string `gorm:"size:255;not null"`

	// DateOfBirth and Address are optional profile fields.
	DateOfBirth *time.Time
	Address     string `gorm:"size:255"`

	// ProfilePhoto holds an embedded data URI or an image URL.
	ProfilePhoto string `gorm:"type:text"`

	// Role is either RoleUser or RoleAdmin.
	Role string `gorm:"size:10;not null;default:user"`

	// IsVerified reports whether the account's email has been confirmed.
	IsVerified bool `gorm:"not null;default:false"`

	// LastLogin is updated on every successful login.
	LastLogin time.Time

	// VerificationToken and its expiry are written at signup.
	// No endpoint consumes them yet.
	VerificationToken          string `gorm:"size:6"`
	VerificationTokenExpiresAt *time.Time

	// Reserved for a password-reset flow.
	ResetPasswordToken     string `gorm:"size:64"`
	ResetPasswordExpiresAt *time.Time

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
