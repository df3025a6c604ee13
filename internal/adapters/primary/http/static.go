package http

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for request paths that resolve outside the
// served directory
var ErrOutsideRoot = errors.New("path outside served directory")

// ResolvePath maps a request path onto a file below root. Paths that climb
// out of root, lexically or through a symlink, return ErrOutsideRoot. The
// file itself need not exist.
func ResolvePath(root, requested string) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}

	rel := filepath.FromSlash(strings.TrimLeft(requested, "/"))
	if filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", ErrOutsideRoot
	}

	full := filepath.Join(absRoot, rel)
	if !within(absRoot, full) {
		return "", ErrOutsideRoot
	}

	if real, err := filepath.EvalSymlinks(full); err == nil {
		realRoot, err := filepath.EvalSymlinks(absRoot)
		if err != nil {
			return "", err
		}
		if !within(realRoot, real) {
			return "", ErrOutsideRoot
		}
	}

	return full, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// staticHandler serves files next to the outline, such as slide images
func (s *Server) staticHandler(w http.ResponseWriter, r *http.Request) {
	if s.root == "" {
		http.NotFound(w, r)
		return
	}

	path, err := ResolvePath(s.root, r.URL.Path)
	if err != nil {
		if errors.Is(err, ErrOutsideRoot) {
			s.logger.Warn("Rejected path outside served directory: %s", r.URL.Path)
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	f, err := os.Open(path) // #nosec G304 - path checked by ResolvePath
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
}
