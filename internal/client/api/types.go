package api

import "time"

// User is the public view of an account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// SessionToken is the part of a session the client keeps.
type SessionToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthResponse is returned by sign-up and sign-in.
type AuthResponse struct {
	User    User         `json:"user"`
	Session SessionToken `json:"session"`
}

// Session is an issued session as listed by GET /sessions.
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

// Todo is one todo item.
type Todo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// SignUpParams is the body of POST /auth/sign-up.
type SignUpParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SignInParams is the body of POST /auth/sign-in.
type SignInParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signOutParams struct {
	Token string `json:"token"`
}

type updateParams struct {
	Name string `json:"name"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type todosResponse struct {
	Todos []Todo `json:"todos"`
}

type sessionsResponse struct {
	Sessions []Session `json:"sessions"`
}
