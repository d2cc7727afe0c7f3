// Package api defines the wire types shared by every HTTP handler.
// All responses use the `{success, message, ...payload}` envelope the
// frontend depends on.
package api

import (
	"time"

	"idea_backend/internal/feature/auth/domain/entity"
)

// Response is the bare envelope used by every endpoint.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// OK builds a success envelope.
func OK(message string) Response {
	return Response{Success: true, Message: message}
}

// Fail builds a failure envelope.
func Fail(message string) Response {
	return Response{Success: false, Message: message}
}

// User is the public projection of a user record. It is the only user
// shape that ever leaves the API; password and token fields have no place
// here.
type User struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Alias        string    `json:"alias"`
	Email        string    `json:"email"`
	DateOfBirth  string    `json:"dateOfBirth,omitempty"`
	Address      string    `json:"address,omitempty"`
	Role         string    `json:"role"`
	IsVerified   bool      `json:"isVerified"`
	ProfilePhoto string    `json:"profilePhoto,omitempty"`
	LastLogin    time.Time `json:"lastLogin"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserFromEntity builds the public projection from a user record.
func UserFromEntity(u *entity.User) *User {
	var dob string
	if u.DateOfBirth != nil {
		dob = u.DateOfBirth.Format("2006-01-02")
	}
	return &User{
		ID:           u.ID,
		Name:         u.Name,
		Alias:        u.Alias,
		Email:        u.Email,
		DateOfBirth:  dob,
		Address:      u.Address,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		ProfilePhoto: u.ProfilePhoto,
		LastLogin:    u.LastLogin,
		CreatedAt:    u.CreatedAt,
	}
}

// UserResponse is the envelope for operations that return a single user.
type UserResponse struct {
	Response
	User *User `json:"user"`
}

// UserOK builds a success envelope carrying one user.
func UserOK(message string, u *entity.User) UserResponse {
	return UserResponse{Response: OK(message), User: UserFromEntity(u)}
}

// UsersResponse is the envelope for the admin user listing.
type UsersResponse struct {
	Response
	Users []*User `json:"users"`
}

// UsersOK builds a success envelope carrying a list of users.
func UsersOK(message string, users []entity.User) UsersResponse {
	out := make([]*User, 0, len(users))
	for _, u := range users {
		out = append(out, UserFromEntity(&u))
	}
	return UsersResponse{Response: OK(message), Users: out}
}
