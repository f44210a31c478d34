package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"fundacoes/internal/handler/http/respond"
)

// MsgTimeout is the error body of a 504 response.
const MsgTimeout = "request timeout"

// Timeout returns middleware that answers 504 {"error": "request timeout"} when a
// handler runs past duration. The request context is canceled so that storage calls
// stop. Only one of the handler and the timeout path writes the response.
func Timeout(duration time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if duration <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), duration)
			defer cancel()

			r = r.WithContext(ctx)

			done := make(chan struct{})
			var mu sync.Mutex
			timedOut := false

			// The handler gets its own header map, seeded before it starts.
			wrappedWriter := &timeoutResponseWriter{
				w:        w,
				header:   w.Header().Clone(),
				mu:       &mu,
				timedOut: &timedOut,
			}

			panicCh := make(chan any, 1)
			go func() {
				defer func() {
					if p := recover(); p != nil {
						panicCh <- p
					}
				}()
				next.ServeHTTP(wrappedWriter, r)
				close(done)
			}()

			select {
			case p := <-panicCh:
				// Re-raised on the serving goroutine so Recover sees it.
				panic(p)
			case <-done:
				mu.Lock()
				// headers set without a write still reach the client
				if !wrappedWriter.written {
					wrappedWriter.flushHeader()
				}
				mu.Unlock()
			case <-ctx.Done():
				mu.Lock()
				timedOut = true
				if !wrappedWriter.written {
					respond.Error(w, http.StatusGatewayTimeout, MsgTimeout)
				}
				mu.Unlock()
			}
		})
	}
}

// timeoutResponseWriter buffers headers in a private map and drops writes once
// the timeout response has been sent. The real writer is only touched under mu.
type timeoutResponseWriter struct {
	w        http.ResponseWriter
	header   http.Header
	mu       *sync.Mutex
	timedOut *bool
	written  bool
}

// Header is only ever used by the handler goroutine.
func (tw *timeoutResponseWriter) Header() http.Header {
	return tw.header
}

func (tw *timeoutResponseWriter) WriteHeader(statusCode int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if *tw.timedOut || tw.written {
		return
	}
	tw.written = true
	tw.flushHeader()
	tw.w.WriteHeader(statusCode)
}

func (tw *timeoutResponseWriter) Write(data []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	if *tw.timedOut {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.written {
		tw.written = true
		tw.flushHeader()
		tw.w.WriteHeader(http.StatusOK)
	}
	return tw.w.Write(data)
}

// flushHeader copies the private headers into the real writer. Callers hold mu.
func (tw *timeoutResponseWriter) flushHeader() {
	dst := tw.w.Header()
	for k, v := range tw.header {
		dst[k] = append([]string(nil), v...)
	}
}
