package profile

import (
	"context"
	"fmt"
	"time"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

// ProfileService defines the business logic contract for profiles.
type ProfileService interface {
	UpdateName(ctx context.Context, userID, name string) (*auth.UserProfile, error)
}

// profileService implements ProfileService.
type profileService struct {
	repo ProfileRepository
	now  func() time.Time
}

// NewProfileService creates a new profile service.
func NewProfileService(repo ProfileRepository) ProfileService {
	return &profileService{repo: repo, now: time.Now}
}

// UpdateName stores name exactly as given and returns the updated profile.
// An empty name is allowed. A user that no longer exists is an
// internal error: the caller just passed the auth gate with it.
func (s *profileService) UpdateName(ctx context.Context, userID, name string) (*auth.UserProfile, error) {
	if err := s.repo.UpdateName(ctx, userID, name, s.now().UTC()); err != nil {
		return nil, apperror.NewInternal(err)
	}

	p, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("reloading user %s: %w", userID, err))
	}
	return p, nil
}
