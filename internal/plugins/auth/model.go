// Package auth is the authentication library for sessiondesk. It owns user
// credentials and database-backed sessions: sign-up, sign-in and sign-out,
// argon2id password hashing, opaque bearer tokens with a fixed lifetime and
// sliding refresh, and the auth gate that turns a bearer token into an
// Identity for downstream handlers.
package auth

import (
	"time"
)

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session is an issued bearer token with its validity window. Field names
// follow the JSON shape the web client already consumes.
type Session struct {
	ID        string    `json:"id"`
	ExpiresAt time.Time `json:"expiresAt"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	IPAddress *string   `json:"ipAddress"`
	UserAgent *string   `json:"userAgent"`
	UserID    string    `json:"userId"`
}

// Identity is what the auth gate hands to protected handlers. It is the only
// representation of the caller that handlers may trust.
type Identity struct {
	UserID string `json:"userID"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// SessionIdentity is the row produced by the session/user join.
type SessionIdentity struct {
	SessionID string
	Identity  Identity
	ExpiresAt time.Time
}

// ClientMeta describes the client that opened a session.
type ClientMeta struct {
	IPAddress string
	UserAgent string
}

// --- Request DTOs (bound from HTTP requests) ---

// SignUpRequest is the body of POST /auth/sign-up.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInRequest is the body of POST /auth/sign-in.
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignOutRequest is the body of POST /auth/sign-out. The token may instead
// arrive in the Authorization header.
type SignOutRequest struct {
	Token string `json:"token"`
}

// --- Service Input DTOs ---

// SignUpInput is the input for creating a new account.
type SignUpInput struct {
	Email    string
	Password string
	Name     string
}

// SignInInput is the input for authenticating an account.
type SignInInput struct {
	Email    string
	Password string
}

// --- Responses ---

// UserProfile is the public view of a user.
type UserProfile struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionToken is the part of a session the client keeps.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResult is returned by sign-up and sign-in.
type AuthResult struct {
	User    UserProfile  `json:"user"`
	Session SessionToken `json:"session"`
}

// SignOutResponse is returned by sign-out.
type SignOutResponse struct {
	Success bool `json:"success"`
}

// newAuthResult builds the client response for a freshly issued session.
func newAuthResult(user *User, session *Session) *AuthResult {
	return &AuthResult{
		User: UserProfile{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		Session: SessionToken{
			Token:     session.Token,
			ExpiresAt: session.ExpiresAt,
		},
	}
}
