package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/sanitize"
)

// sessionTokenBytes is the number of random bytes in a session token.
// 32 bytes = 256 bits of entropy, hex-encoded to 64 characters.
const sessionTokenBytes = 32

// bearerPrefix is stripped from the Authorization header.
const bearerPrefix = "Bearer "

// Password length bounds accepted at sign-up.
const (
	minPasswordLen = 8
	maxPasswordLen = 128
)

// AuthService defines the business logic contract for authentication.
// Handlers and other plugins call these methods -- they never touch the
// repositories directly.
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput, meta ClientMeta) (*AuthResult, error)
	SignIn(ctx context.Context, input SignInInput, meta ClientMeta) (*AuthResult, error)
	SignOut(ctx context.Context, token string) error
	Authenticate(ctx context.Context, authorization string) (*Identity, error)
}

// authService implements AuthService with argon2id hashing and sessions
// stored in MariaDB.
type authService struct {
	users      UserRepository
	sessions   SessionRepository
	sessionTTL time.Duration
	updateAge  time.Duration
	now        func() time.Time
}

// NewAuthService creates a new auth service. sessionTTL is the lifetime of a
// new or refreshed session; updateAge is how old a session must be before a
// request refreshes it (zero disables refresh).
func NewAuthService(users UserRepository, sessions SessionRepository, sessionTTL, updateAge time.Duration) AuthService {
	return &authService{
		users:      users,
		sessions:   sessions,
		sessionTTL: sessionTTL,
		updateAge:  updateAge,
		now:        time.Now,
	}
}

// SignUp creates an account and signs it in.
func (s *authService) SignUp(ctx context.Context, input SignUpInput, meta ClientMeta) (*AuthResult, error) {
	email, err := normalizeEmail(input.Email)
	if err != nil {
		return nil, err
	}
	if n := len(input.Password); n < minPasswordLen || n > maxPasswordLen {
		return nil, apperror.NewValidation(fmt.Sprintf("password must be between %d and %d characters", minPasswordLen, maxPasswordLen))
	}
	name := sanitize.PlainText(input.Name)
	if name == "" {
		return nil, apperror.NewValidation("name is required")
	}

	// Check before doing expensive hashing.
	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	now := s.now().UTC()
	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, asAppError(err, "creating user")
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return newAuthResult(user, session), nil
}

// SignIn authenticates by email and password and issues a new session.
func (s *authService) SignIn(ctx context.Context, input SignInInput, meta ClientMeta) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		// Don't reveal whether the email exists.
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthenticated("invalid email or password")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if !verifyPassword(input.Password, user.PasswordHash) {
		return nil, apperror.NewUnauthenticated("invalid email or password")
	}

	session, err := s.createSession(ctx, user.ID, meta)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating session: %w", err))
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)
	return newAuthResult(user, session), nil
}

// SignOut invalidates the session holding token. Unknown or empty tokens are
// not an error; the caller ends up signed out either way.
func (s *authService) SignOut(ctx context.Context, token string) error {
	token = strings.TrimPrefix(token, bearerPrefix)
	if token == "" {
		return nil
	}

	deleted, err := s.sessions.DeleteByToken(ctx, token)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("signing out: %w", err))
	}
	if deleted {
		slog.Info("session revoked")
	}
	return nil
}

// Authenticate is the auth gate. It resolves a raw Authorization header to
// the caller's identity. Every failure, including lookup errors, surfaces as
// Unauthenticated; lookup errors are logged with their cause.
func (s *authService) Authenticate(ctx context.Context, authorization string) (*Identity, error) {
	token := strings.TrimPrefix(authorization, bearerPrefix)
	if token == "" {
		return nil, apperror.NewUnauthenticated("no token provided")
	}

	row, err := s.sessions.FindIdentityByToken(ctx, token)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthenticated("invalid session")
		}
		slog.Error("session lookup failed", slog.Any("error", err))
		return nil, apperror.NewUnauthenticated("invalid token").WithInternal(err)
	}

	now := s.now()
	// Strict comparison: a session expiring exactly now is still valid.
	if row.ExpiresAt.Before(now) {
		return nil, apperror.NewUnauthenticated("session expired")
	}

	s.maybeRefresh(ctx, row, now)

	identity := row.Identity
	return &identity, nil
}

// maybeRefresh slides the expiry of a session that was issued or last
// refreshed more than updateAge ago. Failures are logged and ignored.
func (s *authService) maybeRefresh(ctx context.Context, row *SessionIdentity, now time.Time) {
	if s.updateAge <= 0 {
		return
	}
	issuedAt := row.ExpiresAt.Add(-s.sessionTTL)
	if now.Sub(issuedAt) < s.updateAge {
		return
	}

	now = now.UTC()
	if err := s.sessions.ExtendExpiry(ctx, row.SessionID, now.Add(s.sessionTTL), now); err != nil {
		slog.Warn("failed to refresh session",
			slog.String("user_id", row.Identity.UserID),
			slog.Any("error", err),
		)
	}
}

// createSession issues a new random token for userID and stores it.
func (s *authService) createSession(ctx context.Context, userID string, meta ClientMeta) (*Session, error) {
	token, err := generateSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generating session token: %w", err)
	}

	now := s.now().UTC()
	session := &Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(s.sessionTTL),
		Token:     token,
		CreatedAt: now,
		UpdatedAt: now,
		IPAddress: optional(meta.IPAddress),
		UserAgent: optional(meta.UserAgent),
		UserID:    userID,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// --- Helpers ---

// normalizeEmail lower-cases and validates an email address.
func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperror.NewValidation("a valid email address is required")
	}
	return email, nil
}

// generateSessionToken creates a cryptographically random hex-encoded token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// optional returns nil for empty strings so NULL is stored.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// asAppError passes AppErrors through and wraps anything else as internal.
func asAppError(err error, action string) error {
	if _, ok := err.(*apperror.AppError); ok {
		return err
	}
	return apperror.NewInternal(fmt.Errorf("%s: %w", action, err))
}
