package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/Philip-Ajayi/SHC/internal/domain/attendees"
	"github.com/Philip-Ajayi/SHC/internal/email"
	"github.com/Philip-Ajayi/SHC/internal/payments"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// emptyRepo satisfies attendees.Repository with not-found responses so the
// router can be exercised without a database.
type emptyRepo struct{}

func (emptyRepo) Create(_ context.Context, params attendees.CreateParams) (*attendees.Attendee, error) {
	return &attendees.Attendee{ID: "test", Email: params.Email, Year: params.Year}, nil
}

func (emptyRepo) FindByEmail(_ context.Context, _ string) (*attendees.Attendee, error) {
	return nil, attendees.ErrNotFound
}

func (emptyRepo) FindByEmailYear(_ context.Context, _ string, _ int) (*attendees.Attendee, error) {
	return nil, attendees.ErrNotFound
}

func (emptyRepo) FindByID(_ context.Context, _ string) (*attendees.Attendee, error) {
	return nil, attendees.ErrNotFound
}

func (emptyRepo) FindBySessionYear(_ context.Context, _, _ int) ([]attendees.Attendee, error) {
	return nil, nil
}

func (emptyRepo) FindByYear(_ context.Context, _ int) ([]attendees.Attendee, error) {
	return nil, nil
}

func (emptyRepo) FindNoAttendance(_ context.Context, _ int) ([]attendees.Attendee, error) {
	return nil, nil
}

func (emptyRepo) FindSubscribed(_ context.Context) ([]attendees.Attendee, error) {
	return nil, nil
}

func (emptyRepo) AddSession(_ context.Context, _ string, _ int) error { return nil }

func (emptyRepo) RemoveSession(_ context.Context, _ string, _ int) error { return nil }

func (emptyRepo) Unsubscribe(_ context.Context, _ string) error { return attendees.ErrNotFound }

type readyPinger struct{}

func (readyPinger) Ping(_ context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	staticDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(staticDir, "index.html"), []byte("<html>app shell</html>"), 0o644))

	cfg := config.Config{
		Environment: "test",
		CORS:        config.CORSConfig{AllowAllOrigins: true},
		Static:      config.StaticConfig{Dir: staticDir},
	}

	logger := zerolog.Nop()
	emailService, err := email.NewService(config.EmailConfig{Enabled: false}, "http://localhost:5000", logger)
	require.NoError(t, err)

	deps := Dependencies{
		Attendees: attendees.NewService(emptyRepo{}, logger),
		Email:     emailService,
		Payments:  payments.NewClient(config.PaymentsConfig{SecretKey: "sk_test", Currency: "usd"}, "http://localhost:5000", logger),
		Store:     readyPinger{},
	}

	return NewRouter(cfg, logger, deps)
}

func TestRouterRoutes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
	}{
		{name: "healthz", method: http.MethodGet, target: "/healthz", wantStatus: http.StatusOK},
		{name: "readyz", method: http.MethodGet, target: "/readyz", wantStatus: http.StatusOK},
		{name: "metrics", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK},
		{name: "check attendance unknown user", method: http.MethodGet, target: "/api/check-attendance?email=a%40b.com&session=1", wantStatus: http.StatusNotFound},
		{name: "attendance by session empty", method: http.MethodGet, target: "/api/attendance/1/2026", wantStatus: http.StatusOK},
		{name: "users by year empty", method: http.MethodGet, target: "/api/users/2026", wantStatus: http.StatusNotFound},
		{name: "users no attendance empty", method: http.MethodGet, target: "/api/users-no-attendance/2026", wantStatus: http.StatusOK},
		{name: "unsubscribe unknown id", method: http.MethodGet, target: "/unsubscribe/nope", wantStatus: http.StatusNotFound},
		{name: "spa fallback", method: http.MethodGet, target: "/giving", wantStatus: http.StatusOK},
		{name: "spa root", method: http.MethodGet, target: "/", wantStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			require.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRouterMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/register", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "POST", rec.Header().Get("Allow"))
}

func TestRouterCORSPreflight(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/register", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouterSetsRequestID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
