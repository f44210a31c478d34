package foundation

import (
	"time"

	"fundacoes/internal/domain/entity"
)

// Success messages.
const (
	MsgCreated = "foundation created successfully"
	MsgUpdated = "foundation updated successfully"
	MsgDeleted = "foundation deleted successfully"
)

// DTO is the JSON shape of a foundation.
type DTO struct {
	ID                    int64      `json:"id"`
	Name                  string     `json:"name"`
	TaxID                 string     `json:"taxId"`
	Email                 string     `json:"email"`
	Phone                 string     `json:"phone"`
	AffiliatedInstitution string     `json:"affiliatedInstitution"`
	CreatedAt             *time.Time `json:"createdAt,omitempty"`
	UpdatedAt             *time.Time `json:"updatedAt,omitempty"`
}

func toDTO(f *entity.Foundation) DTO {
	return DTO{
		ID:                    f.ID,
		Name:                  f.Name,
		TaxID:                 f.TaxID,
		Email:                 f.Email,
		Phone:                 f.Phone,
		AffiliatedInstitution: f.AffiliatedInstitution,
		CreatedAt:             f.CreatedAt,
		UpdatedAt:             f.UpdatedAt,
	}
}

func toDTOs(list []*entity.Foundation) []DTO {
	out := make([]DTO, 0, len(list))
	for _, f := range list {
		out = append(out, toDTO(f))
	}
	return out
}

// PatchRequest documents the accepted body; every field is optional.
type PatchRequest struct {
	Name                  string `json:"name,omitempty" example:"Instituto A"`
	TaxID                 string `json:"taxId,omitempty" example:"12.345.678/0001-99"`
	Email                 string `json:"email,omitempty" example:"contato@instituto.org"`
	Phone                 string `json:"phone,omitempty" example:"11999999999"`
	AffiliatedInstitution string `json:"affiliatedInstitution,omitempty" example:"USP"`
}

// DataResponse wraps a payload under "data".
type DataResponse struct {
	Data any `json:"data"`
}

// MessageDataResponse carries a success message and the affected record.
type MessageDataResponse struct {
	Message string `json:"message"`
	Data    DTO    `json:"data"`
}

// MessageResponse carries a message only.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the body of 400 and 500 responses.
type ErrorResponse struct {
	Error string `json:"error"`
}
