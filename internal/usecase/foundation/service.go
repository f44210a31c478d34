package foundation

import (
	"context"
	"errors"
	"fmt"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/observability/metrics"
	"fundacoes/internal/repository"
)

// Service provides foundation management use cases.
// It validates input, normalizes the tax ID and delegates persistence to the repository.
// There is no locking: concurrent writes are settled by the store's own constraints,
// and concurrent updates to the same record are last-write-wins.
type Service struct {
	Repo repository.FoundationRepository
}

// InitializeSchema idempotently creates the storage schema. Callers treat failure as fatal.
func (s *Service) InitializeSchema(ctx context.Context) error {
	if err := s.Repo.InitSchema(ctx); err != nil {
		return fmt.Errorf("initialize schema: %w", err)
	}
	return nil
}

// Create validates the input and inserts a new foundation.
// Returns a validation error (entity.KindValidation) when any field is invalid and a
// conflict error (entity.KindConflict) when the tax ID is already registered.
func (s *Service) Create(ctx context.Context, in entity.FoundationPatch) (_ *entity.Foundation, err error) {
	defer func() { observe("create", err) }()

	f := entity.NewFoundation(in)
	if msgs := f.Validate(); len(msgs) > 0 {
		return nil, entity.NewValidationError(msgs)
	}
	f.TaxID = entity.NormalizeTaxID(f.TaxID)

	if err := s.Repo.Create(ctx, &f); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewConflictError(MsgConflict, err)
		}
		return nil, fmt.Errorf("create foundation: %w", err)
	}
	return &f, nil
}

// FindByTaxID looks a foundation up by tax ID in any formatting.
// A missing record yields (nil, nil).
func (s *Service) FindByTaxID(ctx context.Context, taxID string) (*entity.Foundation, error) {
	f, err := s.Repo.GetByTaxID(ctx, entity.NormalizeTaxID(taxID))
	if err != nil {
		return nil, fmt.Errorf("find foundation by tax ID: %w", err)
	}
	return f, nil
}

// FindByID returns the foundation with the given id, or (nil, nil) when absent.
func (s *Service) FindByID(ctx context.Context, id int64) (*entity.Foundation, error) {
	f, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find foundation: %w", err)
	}
	return f, nil
}

// Update merges the provided fields into the stored record, re-validates the result
// and overwrites every mutable column. Unset fields keep their stored value; an empty
// string is a provided value.
func (s *Service) Update(ctx context.Context, id int64, in entity.FoundationPatch) (_ *entity.Foundation, err error) {
	defer func() { observe("update", err) }()

	existing, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get foundation: %w", err)
	}
	if existing == nil {
		return nil, entity.NewNotFoundError(MsgNotFound)
	}

	merged := in.Apply(*existing)
	if msgs := merged.Validate(); len(msgs) > 0 {
		return nil, entity.NewValidationError(msgs)
	}
	merged.TaxID = entity.NormalizeTaxID(merged.TaxID)

	if err := s.Repo.Update(ctx, &merged); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, entity.NewConflictError(MsgConflict, err)
		}
		return nil, fmt.Errorf("update foundation: %w", err)
	}

	// reload for the store-assigned updated_at
	stored, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("reload foundation: %w", err)
	}
	if stored == nil {
		return nil, entity.NewNotFoundError(MsgNotFound)
	}
	return stored, nil
}

// Delete permanently removes the foundation. A missing record is a not-found error.
func (s *Service) Delete(ctx context.Context, id int64) (err error) {
	defer func() { observe("delete", err) }()

	deleted, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete foundation: %w", err)
	}
	if !deleted {
		return entity.NewNotFoundError(MsgNotFound)
	}
	return nil
}

// ListAll returns every foundation, newest id first. An empty store yields an empty slice.
func (s *Service) ListAll(ctx context.Context) ([]*entity.Foundation, error) {
	list, err := s.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list foundations: %w", err)
	}
	if list == nil {
		list = []*entity.Foundation{}
	}
	return list, nil
}

// Count returns the number of stored foundations.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count foundations: %w", err)
	}
	return n, nil
}

// RefreshStats updates the foundations_total gauge. It is run on a schedule.
func (s *Service) RefreshStats(ctx context.Context) error {
	n, err := s.Count(ctx)
	if err != nil {
		return err
	}
	metrics.UpdateFoundationsTotal(n)
	return nil
}

func observe(op string, err error) {
	result := "success"
	if err != nil {
		switch kind := entity.KindOf(err); kind {
		case entity.KindInternal:
			result = "error"
		default:
			result = kind.String()
		}
	}
	metrics.RecordFoundationOperation(op, result)
}
