package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// ProfileRepository defines data access for the profile fields of a user.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID string) (*auth.UserProfile, error)
	UpdateName(ctx context.Context, userID, name string, now time.Time) error
}

// profileRepository implements ProfileRepository with MariaDB queries.
type profileRepository struct {
	db *sql.DB
}

// NewProfileRepository creates a new profile repository.
func NewProfileRepository(db *sql.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// FindByID returns the public fields of a user.
func (r *profileRepository) FindByID(ctx context.Context, userID string) (*auth.UserProfile, error) {
	p := &auth.UserProfile{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, email, name FROM users WHERE id = ?`, userID,
	).Scan(&p.ID, &p.Email, &p.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("user not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying user by id: %w", err)
	}
	return p, nil
}

// UpdateName sets a user's display name and bumps updated_at.
func (r *profileRepository) UpdateName(ctx context.Context, userID, name string, now time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE users SET name = ?, updated_at = ? WHERE id = ?`,
		name, now, userID,
	)
	if err != nil {
		return fmt.Errorf("updating user name: %w", err)
	}
	return nil
}
