// Package static serves the browser form UI from a public assets directory.
package static

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"fundacoes/internal/handler/http/respond"
)

// contentTypes maps the asset extensions the UI ships; anything else is text/plain.
var contentTypes = map[string]string{
	".html": "text/html; charset=utf-8",
	".js":   "application/javascript",
	".css":  "text/css; charset=utf-8",
}

const defaultContentType = "text/plain; charset=utf-8"

// Handler serves files below Root. "/" maps to index.html; a missing file, a
// directory, or a path escaping Root answers with a bare 404.
type Handler struct {
	Root string
}

// ContentType returns the content type for a file name.
func ContentType(name string) string {
	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

func (h Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		respond.NotFound(w)
		return
	}

	name, ok := h.resolve(r.URL.Path)
	if !ok {
		respond.NotFound(w)
		return
	}

	data, err := os.ReadFile(name)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && !isDirErr(name) {
			slog.Default().Warn("static file read failed",
				slog.String("path", r.URL.Path),
				slog.Any("error", err))
		}
		respond.NotFound(w)
		return
	}

	w.Header().Set("Content-Type", ContentType(name))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(data)
	}
}

// resolve maps a URL path to a file under Root, rejecting traversal outside it.
func (h Handler) resolve(urlPath string) (string, bool) {
	if strings.Contains(urlPath, "\x00") {
		return "", false
	}
	if urlPath == "" || urlPath == "/" {
		urlPath = "/index.html"
	}

	root, err := filepath.Abs(h.Root)
	if err != nil {
		return "", false
	}
	// raw ".." segments are rejected rather than cleaned away
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", false
		}
	}
	name := filepath.Join(root, filepath.FromSlash(path.Clean(urlPath)))
	if name != root && !strings.HasPrefix(name, root+string(filepath.Separator)) {
		return "", false
	}
	return name, true
}

func isDirErr(name string) bool {
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}
