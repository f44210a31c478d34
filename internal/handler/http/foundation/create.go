package foundation

import (
	"log/slog"
	"net/http"

	"fundacoes/internal/handler/http/respond"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// CreateHandler serves POST /api/fundacoes.
type CreateHandler struct{ Svc fdnUC.Service }

// ServeHTTP registers a foundation
// @Summary      Create foundation
// @Description  Validates and stores a new foundation. The tax ID is stored digits-only.
// @Tags         foundations
// @Accept       json
// @Produce      json
// @Param        foundation body PatchRequest true "Foundation fields"
// @Success      201 {object} MessageDataResponse
// @Failure      400 {object} ErrorResponse "Validation failed or invalid JSON"
// @Failure      409 {object} ErrorResponse "Tax ID already registered"
// @Failure      429 {object} ErrorResponse "Rate limit exceeded"
// @Failure      500 {object} ErrorResponse
// @Router       /api/fundacoes [post]
func (h CreateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	in, err := decodePatch(r)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}

	f, err := h.Svc.Create(r.Context(), in)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}

	slog.Default().Info("foundation created", slog.Int64("id", f.ID))
	respond.JSON(w, http.StatusCreated, MessageDataResponse{Message: MsgCreated, Data: toDTO(f)})
}
