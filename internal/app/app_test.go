package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/keyxmakerx/sessiondesk/internal/config"
)

var errSecret = errors.New("table todos is corrupt")

// newTestApp builds a fully wired App on sqlmock and miniredis.
func newTestApp(t *testing.T) (*App, sqlmock.Sqlmock, *miniredis.Miniredis) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("creating sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	cfg := &config.Config{
		Env:         "development",
		Port:        8080,
		CORSOrigins: []string{"http://localhost:3000"},
		Auth: config.AuthConfig{
			SessionTTL:       7 * 24 * time.Hour,
			SessionUpdateAge: 24 * time.Hour,
		},
	}

	a := New(cfg, db, rdb)
	a.RegisterRoutes()
	return a, mock, mr
}

func serve(a *App, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding error body %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestHealthz_OK(t *testing.T) {
	a, mock, _ := newTestApp(t)
	mock.ExpectPing()

	rec := serve(a, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestHealthz_RedisDown(t *testing.T) {
	a, mock, mr := newTestApp(t)
	mock.ExpectPing()
	mr.Close()

	rec := serve(a, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"redis":"unavailable"`) {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestProtectedRoutes_NoToken(t *testing.T) {
	a, _, _ := newTestApp(t)

	for _, r := range []struct{ method, path string }{
		{http.MethodGet, "/current-user"},
		{http.MethodPut, "/update"},
		{http.MethodGet, "/sessions"},
		{http.MethodDelete, "/sessions/abc"},
	} {
		rec := serve(a, r.method, r.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", r.method, r.path, rec.Code)
			continue
		}
		body := decodeError(t, rec)
		if body.Code != "unauthenticated" || body.Message != "no token provided" {
			t.Errorf("%s %s: unexpected body %+v", r.method, r.path, body)
		}
	}
}

func TestProtectedRoutes_UnknownToken(t *testing.T) {
	a, mock, _ := newTestApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.token = ?")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"s.id", "u.id", "u.email", "u.name", "s.expires_at"}))

	rec := serve(a, http.MethodGet, "/current-user", "", "nope")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Message != "invalid session" {
		t.Errorf("unexpected message %q", body.Message)
	}
}

func TestCurrentUser_ValidToken(t *testing.T) {
	a, mock, _ := newTestApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE s.token = ?")).
		WithArgs("tok-1").
		WillReturnRows(sqlmock.NewRows([]string{"s.id", "u.id", "u.email", "u.name", "s.expires_at"}).
			AddRow("sess-1", "user-1", "ada@example.com", "Ada", time.Now().Add(7*24*time.Hour)))

	rec := serve(a, http.MethodGet, "/current-user", "", "tok-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if strings.TrimSpace(rec.Body.String()) != `{"id":"user-1","email":"ada@example.com","name":"Ada"}` {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestTodos_Public(t *testing.T) {
	a, mock, _ := newTestApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, title, done FROM todos")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "done"}).AddRow(1, "Write docs", false))

	rec := serve(a, http.MethodGet, "/todos", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"todos":[{"id":1,"title":"Write docs","done":false}]}` {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestErrorHandler_RouterErrorsAreJSON(t *testing.T) {
	a, _, _ := newTestApp(t)

	rec := serve(a, http.MethodGet, "/nope", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decodeError(t, rec); body.Code != "not_found" {
		t.Errorf("unexpected code %q", body.Code)
	}
}

func TestErrorHandler_InternalCauseHidden(t *testing.T) {
	a, mock, _ := newTestApp(t)
	mock.ExpectQuery(regexp.QuoteMeta("FROM todos")).WillReturnError(errSecret)

	rec := serve(a, http.MethodGet, "/todos", "", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), errSecret.Error()) {
		t.Error("internal cause leaked to client")
	}
	if body := decodeError(t, rec); body.Code != "internal_error" {
		t.Errorf("unexpected code %q", body.Code)
	}
}

func TestSignUp_RateLimited(t *testing.T) {
	a, _, _ := newTestApp(t)

	// Invalid bodies fail validation before touching the DB but still count.
	var rec *httptest.ResponseRecorder
	for i := 0; i < 6; i++ {
		rec = serve(a, http.MethodPost, "/auth/sign-up", `{"email":"bad"}`, "")
	}
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 on 6th sign-up, got %d", rec.Code)
	}
}

func TestHttpErrorCode(t *testing.T) {
	if got := httpErrorCode(http.StatusMethodNotAllowed); got != "method_not_allowed" {
		t.Errorf("got %q", got)
	}
	if got := httpErrorCode(799); got != "error" {
		t.Errorf("got %q", got)
	}
}

