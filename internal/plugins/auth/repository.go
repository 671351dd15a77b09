package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
)

// mysqlErrDuplicateEntry is ER_DUP_ENTRY.
const mysqlErrDuplicateEntry = 1062

// UserRepository defines the data access contract for credentials.
// All SQL lives in the concrete implementation -- no SQL leaks out.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
}

// SessionRepository defines the data access contract for issued sessions.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindIdentityByToken(ctx context.Context, token string) (*SessionIdentity, error)
	DeleteByToken(ctx context.Context, token string) (bool, error)
	ExtendExpiry(ctx context.Context, sessionID string, expiresAt, now time.Time) error
}

// userRepository implements UserRepository with hand-written MariaDB queries.
type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository backed by the given DB pool.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user row. A duplicate email surfaces as Conflict so a
// sign-up race loses cleanly instead of as an internal error.
func (r *userRepository) Create(ctx context.Context, user *User) error {
	query := `INSERT INTO users (id, email, name, password_hash, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.Name,
		user.PasswordHash,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isDuplicateEntry(err) {
		return apperror.NewConflict("an account with this email already exists")
	}
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// FindByEmail retrieves a user by their email address.
// Returns apperror.NotFound if no user exists with this email.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	query := `SELECT id, email, name, password_hash, created_at, updated_at
	          FROM users WHERE email = ?`

	user := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by email: %w", err)
	}
	return user, nil
}

// EmailExists returns true if a user with the given email already exists.
// Checked before hashing so duplicate sign-ups fail fast.
func (r *userRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = ?)`, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking email existence: %w", err)
	}
	return exists, nil
}

// sessionRepository implements SessionRepository with MariaDB queries.
type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository backed by the given DB pool.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// Create inserts a newly issued session.
func (r *sessionRepository) Create(ctx context.Context, session *Session) error {
	query := `INSERT INTO sessions (id, token, user_id, expires_at, ip_address, user_agent, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		session.ExpiresAt,
		session.IPAddress,
		session.UserAgent,
		session.CreatedAt,
		session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}
	return nil
}

// FindIdentityByToken joins the session to its user in a single query.
// Returns apperror.NotFound if no session carries this token.
func (r *sessionRepository) FindIdentityByToken(ctx context.Context, token string) (*SessionIdentity, error) {
	query := `SELECT s.id, u.id, u.email, u.name, s.expires_at
	          FROM sessions s
	          INNER JOIN users u ON s.user_id = u.id
	          WHERE s.token = ?
	          LIMIT 1`

	row := &SessionIdentity{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&row.SessionID,
		&row.Identity.UserID,
		&row.Identity.Email,
		&row.Identity.Name,
		&row.ExpiresAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying session by token: %w", err)
	}
	return row, nil
}

// DeleteByToken removes the session holding token. Reports whether a row
// was deleted.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	if err != nil {
		return false, fmt.Errorf("deleting session: %w", err)
	}
	n, _ := result.RowsAffected()
	return n > 0, nil
}

// ExtendExpiry moves a session's expiry forward.
func (r *sessionRepository) ExtendExpiry(ctx context.Context, sessionID string, expiresAt, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE sessions SET expires_at = ?, updated_at = ? WHERE id = ?`,
		expiresAt, now, sessionID,
	)
	if err != nil {
		return fmt.Errorf("extending session: %w", err)
	}
	return nil
}

// isDuplicateEntry reports whether err is a MariaDB unique-key violation.
func isDuplicateEntry(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlErrDuplicateEntry
}
