package handlers

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func newStaticDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app shell</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log('hi')"), 0o644))
	return dir
}

func TestStaticServesExistingFile(t *testing.T) {
	handler := NewStatic(newStaticDir(t))

	req := httptest.NewRequest(http.MethodGet, "/app.js", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "console.log")
}

func TestStaticFallsBackToIndex(t *testing.T) {
	handler := NewStatic(newStaticDir(t))

	// Client-side routes have no file on disk.
	req := httptest.NewRequest(http.MethodGet, "/giving", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "app shell")
}

func TestStaticRejectsNonGET(t *testing.T) {
	handler := NewStatic(newStaticDir(t))

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	require.Equal(t, "GET, HEAD", rec.Header().Get("Allow"))
}

func TestStaticRejectsTraversal(t *testing.T) {
	handler := NewStatic(newStaticDir(t))

	req := httptest.NewRequest(http.MethodGet, "/static", nil)
	req.URL.Path = "/../secrets.txt"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
}
