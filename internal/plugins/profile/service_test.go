package profile

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
	"github.com/keyxmakerx/sessiondesk/internal/plugins/auth"
)

type mockProfileRepo struct {
	findByIDFn   func(ctx context.Context, userID string) (*auth.UserProfile, error)
	updateNameFn func(ctx context.Context, userID, name string, now time.Time) error
}

func (m *mockProfileRepo) FindByID(ctx context.Context, userID string) (*auth.UserProfile, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, userID)
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *mockProfileRepo) UpdateName(ctx context.Context, userID, name string, now time.Time) error {
	if m.updateNameFn != nil {
		return m.updateNameFn(ctx, userID, name, now)
	}
	return nil
}

func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// userStore is a one-user repository whose writes are visible to reads.
func userStore(stored *auth.UserProfile) *mockProfileRepo {
	return &mockProfileRepo{
		findByIDFn: func(ctx context.Context, userID string) (*auth.UserProfile, error) {
			if userID != stored.ID {
				return nil, apperror.NewNotFound("user not found")
			}
			p := *stored
			return &p, nil
		},
		updateNameFn: func(ctx context.Context, userID, name string, now time.Time) error {
			if userID == stored.ID {
				stored.Name = name
			}
			return nil
		},
	}
}

func TestUpdateName_ReturnsReloadedProfile(t *testing.T) {
	stored := &auth.UserProfile{ID: "user-1", Email: "ada@example.com", Name: "Ada"}
	svc := NewProfileService(userStore(stored))

	p, err := svc.UpdateName(context.Background(), "user-1", "Ada Lovelace")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := auth.UserProfile{ID: "user-1", Email: "ada@example.com", Name: "Ada Lovelace"}
	if *p != want {
		t.Errorf("expected %+v, got %+v", want, *p)
	}
}

func TestUpdateName_EmptyAllowed(t *testing.T) {
	stored := &auth.UserProfile{ID: "user-1", Email: "ada@example.com", Name: "Ada"}
	svc := NewProfileService(userStore(stored))

	p, err := svc.UpdateName(context.Background(), "user-1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name != "" {
		t.Errorf("expected empty name, got %q", p.Name)
	}
}

func TestUpdateName_StoredVerbatim(t *testing.T) {
	for _, name := range []string{"<Admin>", "Tom <tom@example.com>", "a<b>c", "  padded  "} {
		stored := &auth.UserProfile{ID: "user-1"}
		svc := NewProfileService(userStore(stored))

		p, err := svc.UpdateName(context.Background(), "user-1", name)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", name, err)
		}
		if p.Name != name || stored.Name != name {
			t.Errorf("expected %q stored unchanged, got returned %q stored %q", name, p.Name, stored.Name)
		}
	}
}

func TestUpdateName_MissingUserIsInternal(t *testing.T) {
	svc := NewProfileService(&mockProfileRepo{})

	_, err := svc.UpdateName(context.Background(), "ghost", "Name")
	assertAppError(t, err, http.StatusInternalServerError)
}

func TestUpdateName_WriteError(t *testing.T) {
	repo := &mockProfileRepo{
		updateNameFn: func(ctx context.Context, userID, name string, now time.Time) error {
			return errors.New("db down")
		},
	}
	svc := NewProfileService(repo)

	_, err := svc.UpdateName(context.Background(), "user-1", "Name")
	assertAppError(t, err, http.StatusInternalServerError)
}
