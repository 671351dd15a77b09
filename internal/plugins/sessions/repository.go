package sessions

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// sessionColumns is the column list shared by every session query.
const sessionColumns = `id, expires_at, token, created_at, updated_at, ip_address, user_agent, user_id`

// SessionRepository defines read access to issued sessions.
type SessionRepository interface {
	ListByUser(ctx context.Context, userID string) ([]auth.Session, error)
	FindByID(ctx context.Context, id string) (*auth.Session, error)
}

// sessionRepository implements SessionRepository with MariaDB queries.
type sessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new session repository.
func NewSessionRepository(db *sql.DB) SessionRepository {
	return &sessionRepository{db: db}
}

// ListByUser returns every session owned by userID, in storage order.
func (r *sessionRepository) ListByUser(ctx context.Context, userID string) ([]auth.Session, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE user_id = ?`, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	result := []auth.Session{}
	for rows.Next() {
		var s auth.Session
		if err := scanSession(rows, &s); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return result, nil
}

// FindByID retrieves a session by id regardless of its owner.
func (r *sessionRepository) FindByID(ctx context.Context, id string) (*auth.Session, error) {
	s := &auth.Session{}
	err := scanSession(r.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM sessions WHERE id = ? LIMIT 1`, id), s)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("session not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying session by id: %w", err)
	}
	return s, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner, s *auth.Session) error {
	return row.Scan(
		&s.ID, &s.ExpiresAt, &s.Token, &s.CreatedAt, &s.UpdatedAt,
		&s.IPAddress, &s.UserAgent, &s.UserID,
	)
}
