package profile

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestRepository_UpdateThenFind(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	defer db.Close()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users SET name = ?, updated_at = ? WHERE id = ?")).
		WithArgs("Ada", now, "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, email, name FROM users WHERE id = ?")).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}).AddRow("user-1", "ada@example.com", "Ada"))

	repo := NewProfileRepository(db)
	if err := repo.UpdateName(context.Background(), "user-1", "Ada", now); err != nil {
		t.Fatalf("update: %v", err)
	}
	p, err := repo.FindByID(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if p.Name != "Ada" {
		t.Errorf("expected Ada, got %q", p.Name)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
