package foundation

import (
	"net/http"

	"fundacoes/internal/handler/http/respond"
	fdnUC "fundacoes/internal/usecase/foundation"
)

// ListHandler serves GET /api/fundacoes. A non-empty cnpj query parameter turns
// the listing into a single-record lookup.
type ListHandler struct{ Svc fdnUC.Service }

// ServeHTTP lists or searches foundations
// @Summary      List or search foundations
// @Description  Without cnpj, returns every foundation newest first. With cnpj (plain or formatted), returns the matching record.
// @Tags         foundations
// @Produce      json
// @Param        cnpj query string false "Tax ID, digits or formatted"
// @Success      200 {object} DataResponse
// @Failure      404 {object} MessageResponse "No foundation with this tax ID"
// @Failure      500 {object} ErrorResponse
// @Router       /api/fundacoes [get]
func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if taxID := r.URL.Query().Get("cnpj"); taxID != "" {
		h.search(w, r, taxID)
		return
	}

	list, err := h.Svc.ListAll(r.Context())
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, DataResponse{Data: toDTOs(list)})
}

func (h ListHandler) search(w http.ResponseWriter, r *http.Request, taxID string) {
	f, err := h.Svc.FindByTaxID(r.Context(), taxID)
	if err != nil {
		respond.DomainError(w, r, err)
		return
	}
	if f == nil {
		respond.JSON(w, http.StatusNotFound, MessageResponse{Message: fdnUC.MsgNotFound})
		return
	}
	respond.JSON(w, http.StatusOK, DataResponse{Data: toDTO(f)})
}
