package postgres

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/infra/db"
	"fundacoes/internal/repository"
)

//go:embed schema.sql
var schemaSQL string

const selectColumns = `
SELECT id, nome, cnpj, email, telefone, instituicao, created_at, updated_at
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

type foundationRow struct {
	f                    entity.Foundation
	createdAt, updatedAt sql.NullTime
}

func (r *foundationRow) dest() []any {
	return []any{
		&r.f.ID, &r.f.Name, &r.f.TaxID, &r.f.Email, &r.f.Phone, &r.f.AffiliatedInstitution,
		&r.createdAt, &r.updatedAt,
	}
}

func (r *foundationRow) foundation() *entity.Foundation {
	f := r.f
	if r.createdAt.Valid {
		t := r.createdAt.Time
		f.CreatedAt = &t
	}
	if r.updatedAt.Valid {
		t := r.updatedAt.Time
		f.UpdatedAt = &t
	}
	return &f
}

func (repo *FoundationRepo) Get(ctx context.Context, id int64) (*entity.Foundation, error) {
	const query = selectColumns + `
WHERE id = $1
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
WHERE cnpj = $1
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

// Create inserts f and fills ID and timestamps from RETURNING; pgx does not report LastInsertId.
func (repo *FoundationRepo) Create(ctx context.Context, f *entity.Foundation) error {
	const query = `
INSERT INTO fundacoes (nome, cnpj, email, telefone, instituicao)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at, updated_at`
	var createdAt, updatedAt sql.NullTime
	_, err := repo.db.QueryOne(ctx, query,
		[]any{f.Name, f.TaxID, f.Email, f.Phone, f.AffiliatedInstitution},
		&f.ID, &createdAt, &updatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", translate(err))
	}
	if createdAt.Valid {
		f.CreatedAt = &createdAt.Time
	}
	if updatedAt.Valid {
		f.UpdatedAt = &updatedAt.Time
	}
	return nil
}

func (repo *FoundationRepo) Update(ctx context.Context, f *entity.Foundation) error {
	const query = `
UPDATE fundacoes
SET nome = $1, cnpj = $2, email = $3, telefone = $4, instituicao = $5, updated_at = CURRENT_TIMESTAMP
WHERE id = $6`
	_, err := repo.db.Exec(ctx, query,
		f.Name, f.TaxID, f.Email, f.Phone, f.AffiliatedInstitution, f.ID,
	)
	if err != nil {
		return fmt.Errorf("Update: %w", translate(err))
	}
	return nil
}

func (repo *FoundationRepo) Delete(ctx context.Context, id int64) (bool, error) {
	const query = `DELETE FROM fundacoes WHERE id = $1`
	res, err := repo.db.Exec(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("Delete: %w", err)
	}
	return res.RowsAffected > 0, nil
}

func translate(err error) error {
	if db.IsUniqueViolation(err) {
		return fmt.Errorf("%w: %v", repository.ErrDuplicate, err)
	}
	return err
}
