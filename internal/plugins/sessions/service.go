package sessions

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// SignOuter invalidates a session by token. Satisfied by auth.AuthService.
type SignOuter interface {
	SignOut(ctx context.Context, token string) error
}

// SessionService defines the business logic contract for session management.
type SessionService interface {
	ListSessions(ctx context.Context, userID string) ([]auth.Session, error)
	RevokeSession(ctx context.Context, sessionID string) error
}

// sessionService implements SessionService.
type sessionService struct {
	repo SessionRepository
	auth SignOuter
}

// NewSessionService creates a new session service. Revocation goes through
// the auth library so there is a single way sessions end.
func NewSessionService(repo SessionRepository, signOuter SignOuter) SessionService {
	return &sessionService{repo: repo, auth: signOuter}
}

// ListSessions returns every session owned by userID.
func (s *sessionService) ListSessions(ctx context.Context, userID string) ([]auth.Session, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing sessions: %w", err))
	}
	if list == nil {
		list = []auth.Session{}
	}
	return list, nil
}

// RevokeSession signs out the session with the given id. An unknown id is
// not an error. The lookup is not scoped to the caller: any authenticated
// user can revoke any session whose id they know.
func (s *sessionService) RevokeSession(ctx context.Context, sessionID string) error {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return apperror.NewInternal(fmt.Errorf("finding session: %w", err))
	}

	if err := s.auth.SignOut(ctx, session.Token); err != nil {
		return err
	}

	slog.Info("session revoked by id",
		slog.String("session_id", session.ID),
		slog.String("user_id", session.UserID),
	)
	return nil
}
