package pathutil

import (
	"regexp"
	"strings"
)

// StaticLabel is the label used for every path served from the public assets root.
const StaticLabel = "/static"

// PathPattern represents a regex pattern and its corresponding normalized template.
type PathPattern struct {
	Pattern  *regexp.Regexp
	Template string
}

// pathPatterns defines the list of patterns for dynamic routes.
// Pre-compiled at initialization.
var pathPatterns = []*PathPattern{
	{Pattern: regexp.MustCompile(`^/api/fundacoes/\d+$`), Template: "/api/fundacoes/:id"},
}

// knownPrefixes are paths that keep their own label.
var knownPrefixes = []string{"/api/", "/health", "/ready", "/live", "/metrics", "/swagger"}

// NormalizePath normalizes dynamic URL paths to prevent metrics label cardinality explosion.
//
// Examples:
//
//	NormalizePath("/api/fundacoes/123")       // "/api/fundacoes/:id"
//	NormalizePath("/api/fundacoes?cnpj=1")    // "/api/fundacoes"
//	NormalizePath("/health")                  // "/health"
//	NormalizePath("/css/style.css")           // "/static"
//	NormalizePath("/")                        // "/static"
func NormalizePath(path string) string {
	// Strip query parameters if present
	if idx := strings.IndexByte(path, '?'); idx != -1 {
		path = path[:idx]
	}

	// Strip trailing slash if present (except for root path)
	if len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}

	for _, p := range pathPatterns {
		if p.Pattern.MatchString(path) {
			return p.Template
		}
	}

	if path == "/api" || path == "/api/fundacoes" {
		return path
	}
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(path, prefix) {
			if prefix == "/api/" || prefix == "/swagger" {
				// unknown API paths and swagger assets collapse to their prefix
				return strings.TrimSuffix(prefix, "/") + "/*"
			}
			return path
		}
	}

	// Everything else is a static asset lookup
	return StaticLabel
}
