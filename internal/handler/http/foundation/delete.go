package foundation

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/handler/http/pathutil"
	"fundacoes/internal/handler/http/respond"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// DeleteHandler serves DELETE /api/fundacoes/{id}.
type DeleteHandler struct{ Svc fdnUC.Service }

// ServeHTTP deletes a foundation
// @Summary      Delete foundation
// @Description  Permanently removes the foundation.
// @Tags         foundations
// @Produce      json
// @Param        id path int true "Foundation ID"
// @Success      200 {object} MessageResponse
// @Failure      404 {object} ErrorResponse "Foundation not found"
// @Failure      500 {object} ErrorResponse
// @Router       /api/fundacoes/{id} [delete]
func (h DeleteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		respond.DomainError(w, r, entity.NewNotFoundError(fdnUC.MsgNotFound))
		return
	}

	if err := h.Svc.Delete(r.Context(), id); err != nil {
		respond.DomainError(w, r, err)
		return
	}

	slog.Default().Info("foundation deleted", slog.Int64("id", id))
	respond.JSON(w, http.StatusOK, MessageResponse{Message: MsgDeleted})
}
