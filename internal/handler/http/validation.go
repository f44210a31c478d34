package http

import (
	"net/http"

	"fundacoes/internal/handler/http/respond"
)

// MaxPathLength is the longest request path accepted.
const MaxPathLength = 2048

// InputValidation returns middleware that rejects overlong paths with 414 and
// caps request bodies at maxBodyBytes. A body over the cap makes the JSON
// decoder fail, which the foundation handlers answer with 400 "invalid JSON".
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				respond.Error(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			if maxBodyBytes > 0 && r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
		})
	}
}
