package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/infra/db"
	"fundacoes/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

// Timestamps are selected as RFC 3339 text.
const selectColumns = `
SELECT id, nome, cnpj, email, telefone, instituicao,
       strftime('%Y-%m-%dT%H:%M:%SZ', created_at),
       strftime('%Y-%m-%dT%H:%M:%SZ', updated_at)
FROM fundacoes`

type FoundationRepo struct{ db *db.Adapter }

func NewFoundationRepo(a *db.Adapter) repository.FoundationRepository {
	return &FoundationRepo{db: a}
}

func (repo *FoundationRepo) InitSchema(ctx context.Context) error {
	if err := repo.db.ExecScript(ctx, schemaSQL); err != nil {
		return fmt.Errorf("InitSchema: %w", err)
	}
	return nil
}

// foundationRow holds the nullable scan targets for one row.
type foundationRow struct {
	f                    entity.Foundation
	createdAt, updatedAt sql.NullString
}

func (r *foundationRow) dest() []any {
	return []any{
		&r.f.ID, &r.f.Name, &r.f.TaxID, &r.f.Email, &r.f.Phone, &r.f.AffiliatedInstitution,
		&r.createdAt, &r.updatedAt,
	}
}

func (r *foundationRow) foundation() *entity.Foundation {
	f := r.f
	f.CreatedAt = parseTimestamp(r.createdAt)
	f.UpdatedAt = parseTimestamp(r.updatedAt)
	return &f
}

func parseTimestamp(s sql.NullString) *time.Time {
	if !s.Valid || s.String == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, s.String)
	if err != nil {
		return nil
	}
	return &t
}

func (repo *FoundationRepo) Get(ctx context.Context, id int64) (*entity.Foundation, error) {
	const query = selectColumns + `
WHERE id = ?
LIMIT 1`
	var row foundationRow
	found, err := repo.db.QueryOne(ctx, query, []any{id}, row.dest()...)
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	if !found {
		return nil, nil
	}
	return row.foundation(), nil
}

func (repo *FoundationRepo) GetByTaxID(ctx context.Context, taxID string) (*entity.Foundation, error) {
	const query = selectColumns + `
WHERE cnpj = ?
LIMIT 1`
	var row foundationRow
	found, err := repo.db.QueryOne(ctx, query, []any{taxID}, row.dest()...)
	if err != nil {
		return nil, fmt.Errorf("GetByTaxID: %w", err)
	}
	if !found {
		return nil, nil
	}
	return row.foundation(), nil
}

func (repo *FoundationRepo) List(ctx context.Context) ([]*entity.Foundation, error) {
	const query = selectColumns + `
ORDER BY id DESC`
	result := make([]*entity.Foundation, 0, 50)
	err := repo.db.QueryAll(ctx, query, nil, func(s db.Scanner) error {
		var row foundationRow
		if err := s.Scan(row.dest()...); err != nil {
			return err
		}
		result = append(result, row.foundation())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("List: %w", err)
	}
	return result, nil
}

func (repo *FoundationRepo) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM fundacoes`
	var n int
	if _, err := repo.db.QueryOne(ctx, query, nil, &n); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return n, nil
}

func (repo *FoundationRepo) Create(ctx context.Context, f *entity.Foundation) error {
	const query = `
INSERT INTO fundacoes (nome, cnpj, email, telefone, instituicao)
VALUES (?, ?, ?, ?, ?)`
	res, err := repo.db.Exec(ctx, query,
		f.Name, f.TaxID, f.Email, f.Phone, f.AffiliatedInstitution,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", translate(err))
	}
	f.ID = res.LastInsertID
	return nil
}

func (repo *FoundationRepo) Update(ctx context.Context, f *entity.Foundation) error {
	const query = `
UPDATE fundacoes
SET nome = ?, cnpj = ?, email = ?, telefone = ?, instituicao = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ?`
	_, err := repo.db.Exec(ctx, query,
		f.Name, f.TaxID, f.Email, f.Phone, f.AffiliatedInstitution, f.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", translate(err))
	}
	return nil
}

func (repo *FoundationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM fundacoes WHERE id = ?`
	res, err := repo.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return res.RowsAffected > 0, nil
}

// translate maps a uniqueness violation to repository.ErrDuplicate, keeping the cause.
func translate(err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}
