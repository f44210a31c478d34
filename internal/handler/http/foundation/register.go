// Package foundation exposes the foundation registry over HTTP.
package foundation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundacoes/internal/handler/http/respond"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// BasePath is the collection path; everything else under APIPrefix is a plain 404.
const (
	APIPrefix = "/api"
	BasePath  = APIPrefix + "/fundacoes"
)

// Route binds one method and path pattern to a handler.
type Route struct {
	Method  string
	Pattern string
	Handler http.Handler
}

// Routes is the declarative route table of the API. Path parameters are typed
// by their pattern; {id} only matches one or more digits.
func Routes(svc fdnUC.Service) []Route {
	return []Route{
		{Method: http.MethodPost, Pattern: BasePath, Handler: CreateHandler{svc}},
		{Method: http.MethodGet, Pattern: BasePath, Handler: ListHandler{svc}},
		{Method: http.MethodPut, Pattern: BasePath + "/{id:[0-9]+}", Handler: UpdateHandler{svc}},
		{Method: http.MethodDelete, Pattern: BasePath + "/{id:[0-9]+}", Handler: DeleteHandler{svc}},
	}
}

// Register mounts the route table on r. Unknown paths under the API prefix, and
// known paths with another method, answer with a bare 404.
func Register(r chi.Router, svc fdnUC.Service) {
	r.Route(APIPrefix, func(api chi.Router) {
		api.NotFound(notFound)
		api.MethodNotAllowed(notFound)
		for _, rt := range Routes(svc) {
			api.Method(rt.Method, rt.Pattern[len(APIPrefix):], rt.Handler)
		}
	})
}

func notFound(w http.ResponseWriter, _ *http.Request) {
	respond.NotFound(w)
}
