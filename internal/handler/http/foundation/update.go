package foundation

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/handler/http/pathutil"
	"fundacoes/internal/handler/http/respond"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// UpdateHandler serves PUT /api/fundacoes/{id} as a partial update.
type UpdateHandler struct{ Svc fdnUC.Service }

// ServeHTTP updates a foundation
// @Summary      Update foundation
// @Description  Merges the provided fields into the stored record. Missing or null fields keep their value; an empty string is a value.
// @Tags         foundations
// @Accept       json
// @Produce      json
// @Param        id path int true "Foundation ID"
// @Param        foundation body PatchRequest false "Fields to change"
// @Success      200 {object} MessageDataResponse
// @Failure      400 {object} ErrorResponse "Validation failed or invalid JSON"
// @Failure      404 {object} ErrorResponse "Foundation not found"
// @Failure      409 {object} ErrorResponse "Tax ID already registered"
// @Failure      500 {object} ErrorResponse
// @Router       /api/fundacoes/{id} [put]
func (h UpdateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := pathutil.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		// digits that overflow or are zero cannot name a stored record
		respond.DomainError(w, r, entity.NewNotFoundError(fdnUC.MsgNotFound))
		return
	}

	in, err := decodePatch(r)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}

	f, err := h.Svc.Update(r.Context(), id, in)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, MessageDataResponse{Message: MsgUpdated, Data: toDTO(f)})
}
