package repository

import (
	"context"
	"errors"

	"fundacoes/internal/domain/entity"
)

// ErrDuplicate is returned (wrapped) by implementations when a write violates a
// uniqueness constraint.
var ErrDuplicate = errors.New("duplicate key")

// FoundationRepository persists foundations. Lookups return (nil, nil) when no row matches.
type FoundationRepository interface {
	InitSchema(ctx context.Context) error
	Get(ctx context.Context, id int64) (*entity.Foundation, error)
	GetByTaxID(ctx context.Context, taxID string) (*entity.Foundation, error)
	List(ctx context.Context) ([]*entity.Foundation, error)
	Count(ctx context.Context) (int, error)
	Create(ctx context.Context, f *entity.Foundation) error
	Update(ctx context.Context, f *entity.Foundation) error
	Delete(ctx context.Context, id int64) (bool, error)
}
