package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philip-Ajayi/SHC/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func corsHandler(cfg config.CORSConfig) http.Handler {
	return CORS(cfg, zerolog.Nop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestCORSAllowAll(t *testing.T) {
	h := corsHandler(config.CORSConfig{AllowAllOrigins: true})

	req := httptest.NewRequest(http.MethodGet, "/api/users/2026", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	require.Equal(t, "http://localhost:3000", res.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSWhitelist(t *testing.T) {
	cfg := config.CORSConfig{AllowedOrigins: []string{"https://shc.example.org"}}
	h := corsHandler(cfg)

	req := httptest.NewRequest(http.MethodGet, "/api/users/2026", nil)
	req.Header.Set("Origin", "https://shc.example.org")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	require.Equal(t, "https://shc.example.org", res.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/users/2026", nil)
	req.Header.Set("Origin", "https://evil.example.org")
	res = httptest.NewRecorder()
	h.ServeHTTP(res, req)
	require.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	h := corsHandler(config.CORSConfig{AllowAllOrigins: true})

	req := httptest.NewRequest(http.MethodOptions, "/api/register", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	require.Equal(t, http.StatusNoContent, res.Code)
	require.NotEmpty(t, res.Header().Get("Access-Control-Allow-Methods"))
}

func TestCORSSameOriginPassthrough(t *testing.T) {
	h := corsHandler(config.CORSConfig{AllowedOrigins: []string{"https://shc.example.org"}})

	req := httptest.NewRequest(http.MethodGet, "/api/users/2026", nil)
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)
	require.Empty(t, res.Header().Get("Access-Control-Allow-Origin"))
}
