package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Static serves the pre-built front-end bundle. Requests that do not match a
// file on disk fall back to index.html so client-side routes resolve.
type Static struct {
	dir string
}

func NewStatic(dir string) *Static {
	return &Static{dir: dir}
}

func (s *Static) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Reject path traversal before touching the filesystem.
	cleaned := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if strings.HasPrefix(cleaned, "..") {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(s.dir, cleaned)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		http.ServeFile(w, r, path)
		return
	}

	http.ServeFile(w, r, filepath.Join(s.dir, "index.html"))
}
