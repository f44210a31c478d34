package foundation_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundacoes/internal/domain/entity"
	"fundacoes/internal/repository"
	fdnUC "fundacoes/internal/usecase/foundation"
)

/*────────────────────  in-memory stub  ────────────────────*/

type stubRepo struct {
	data       map[int64]*entity.Foundation
	nextID     int64
	err        error // forced failure
	schemaRuns int
}

func newStub() *stubRepo {
	return &stubRepo{data: map[int64]*entity.Foundation{}, nextID: 1}
}

func (s *stubRepo) InitSchema(_ context.Context) error {
	s.schemaRuns++
	return s.err
}

func (s *stubRepo) Get(_ context.Context, id int64) (*entity.Foundation, error) {
	if s.err != nil {
		return nil, s.err
	}
	f, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	cp := *f
	return &cp, nil
}

func (s *stubRepo) GetByTaxID(_ context.Context, taxID string) (*entity.Foundation, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, f := range s.data {
		if f.TaxID == taxID {
			cp := *f
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *stubRepo) List(_ context.Context) ([]*entity.Foundation, error) {
	if s.err != nil {
		return nil, s.err
	}
	var out []*entity.Foundation
	for _, f := range s.data {
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (s *stubRepo) Count(_ context.Context) (int, error) {
	return len(s.data), s.err
}

func (s *stubRepo) taken(taxID string, except int64) bool {
	for id, f := range s.data {
		if id != except && f.TaxID == taxID {
			return true
		}
	}
	return false
}

func (s *stubRepo) Create(_ context.Context, f *entity.Foundation) error {
	if s.err != nil {
		return s.err
	}
	if s.taken(f.TaxID, 0) {
		return fmt.Errorf("Create: %w", repository.ErrDuplicate)
	}
	f.ID = s.nextID
	s.nextID++
	cp := *f
	s.data[f.ID] = &cp
	return nil
}

func (s *stubRepo) Update(_ context.Context, f *entity.Foundation) error {
	if s.err != nil {
		return s.err
	}
	if s.taken(f.TaxID, f.ID) {
		return fmt.Errorf("Update: %w", repository.ErrDuplicate)
	}
	now := time.Now()
	cp := *f
	cp.UpdatedAt = &now
	s.data[f.ID] = &cp
	return nil
}

func (s *stubRepo) Delete(_ context.Context, id int64) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	_, ok := s.data[id]
	delete(s.data, id)
	return ok, nil
}

/*────────────────────  helpers  ────────────────────*/

func patch(name, taxID string) entity.FoundationPatch {
	return entity.FoundationPatch{Name: entity.Some(name), TaxID: entity.Some(taxID)}
}

func requireKind(t *testing.T, err error, kind entity.Kind) *entity.Error {
	t.Helper()
	var de *entity.Error
	require.True(t, errors.As(err, &de), "want *entity.Error, got %T (%v)", err, err)
	require.Equal(t, kind, de.Kind)
	return de
}

/*────────────────────  test cases  ────────────────────*/

func TestService_InitializeSchema(t *testing.T) {
	stub := newStub()
	svc := fdnUC.Service{Repo: stub}

	require.NoError(t, svc.InitializeSchema(context.Background()))
	assert.Equal(t, 1, stub.schemaRuns)

	stub.err = errors.New("disk full")
	err := svc.InitializeSchema(context.Background())
	assert.ErrorIs(t, err, stub.err)
}

func TestService_Create(t *testing.T) {
	stub := newStub()
	svc := fdnUC.Service{Repo: stub}

	got, err := svc.Create(context.Background(), entity.FoundationPatch{
		Name:  entity.Some("Inst A"),
		TaxID: entity.Some("12.345.678/0001-99"),
		Email: entity.Some("contato@insta.org"),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.ID)
	assert.Equal(t, "12345678000199", got.TaxID, "tax ID is stored normalized")
	assert.Equal(t, "", got.Phone)
	assert.Equal(t, "12345678000199", stub.data[1].TaxID)
}

func TestService_Create_Validation(t *testing.T) {
	tests := []struct {
		name    string
		in      entity.FoundationPatch
		wantMsg string
	}{
		{
			name:    "all invalid in field order",
			in:      entity.FoundationPatch{Name: entity.Some(" a "), TaxID: entity.Some("123"), Email: entity.Some("bad")},
			wantMsg: "invalid name. invalid tax ID (14 digits). invalid email.",
		},
		{
			name:    "missing everything",
			in:      entity.FoundationPatch{},
			wantMsg: "invalid name. invalid tax ID (14 digits).",
		},
		{
			name:    "bad email only",
			in:      entity.FoundationPatch{Name: entity.Some("Inst A"), TaxID: entity.Some("12345678000199"), Email: entity.Some("a@b")},
			wantMsg: "invalid email.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := newStub()
			svc := fdnUC.Service{Repo: stub}

			got, err := svc.Create(context.Background(), tt.in)
			assert.Nil(t, got)
			de := requireKind(t, err, entity.KindValidation)
			assert.Equal(t, tt.wantMsg, de.Message)
			assert.Empty(t, stub.data, "nothing is written on validation failure")
		})
	}
}

func TestService_Create_DuplicateTaxID(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}

	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), patch("Inst B", "12.345.678/0001-99"))
	de := requireKind(t, err, entity.KindConflict)
	assert.Equal(t, fdnUC.MsgConflict, de.Message)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestService_Create_StorageError(t *testing.T) {
	stub := newStub()
	stub.err = errors.New("database is locked")
	svc := fdnUC.Service{Repo: stub}

	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.Error(t, err)
	assert.ErrorIs(t, err, stub.err)
	assert.Equal(t, entity.KindInternal, entity.KindOf(err))
}

func TestService_FindByTaxID(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	for _, in := range []string{"12345678000199", "12.345.678/0001-99"} {
		got, err := svc.FindByTaxID(context.Background(), in)
		require.NoError(t, err)
		require.NotNil(t, got, in)
		assert.Equal(t, int64(1), got.ID)
	}

	got, err := svc.FindByTaxID(context.Background(), "99999999000199")
	require.NoError(t, err, "absence is not an error")
	assert.Nil(t, got)
}

func TestService_FindByID(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	got, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Inst A", got.Name)

	got, err = svc.FindByID(context.Background(), 2)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestService_Update(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	_, err := svc.Create(context.Background(), entity.FoundationPatch{
		Name:  entity.Some("Inst A"),
		TaxID: entity.Some("12345678000199"),
		Email: entity.Some("a@b.org"),
	})
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), 1, entity.FoundationPatch{Phone: entity.Some("11999999999")})
	require.NoError(t, err)
	assert.Equal(t, "11999999999", got.Phone)
	assert.Equal(t, "Inst A", got.Name, "absent fields keep stored value")
	assert.Equal(t, "a@b.org", got.Email)
	assert.NotNil(t, got.UpdatedAt)
}

func TestService_Update_EmptyPatchKeepsValues(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	created, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), created.ID, entity.FoundationPatch{})
	require.NoError(t, err)
	assert.Equal(t, created.Name, got.Name)
	assert.Equal(t, created.TaxID, got.TaxID)
}

func TestService_Update_EmptyStringIsProvided(t *testing.T) {
	stub := newStub()
	svc := fdnUC.Service{Repo: stub}
	_, err := svc.Create(context.Background(), entity.FoundationPatch{
		Name:  entity.Some("Inst A"),
		TaxID: entity.Some("12345678000199"),
		Email: entity.Some("a@b.org"),
	})
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 1, entity.FoundationPatch{Name: entity.Some("")})
	de := requireKind(t, err, entity.KindValidation)
	assert.Equal(t, entity.MsgInvalidName, de.Message)
	assert.Equal(t, "Inst A", stub.data[1].Name, "failed update leaves the record untouched")

	// clearing an optional field is allowed
	got, err := svc.Update(context.Background(), 1, entity.FoundationPatch{Email: entity.Some("")})
	require.NoError(t, err)
	assert.Equal(t, "", got.Email)
}

func TestService_Update_NormalizesTaxID(t *testing.T) {
	stub := newStub()
	svc := fdnUC.Service{Repo: stub}
	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	got, err := svc.Update(context.Background(), 1, entity.FoundationPatch{TaxID: entity.Some("11.222.333/0001-81")})
	require.NoError(t, err)
	assert.Equal(t, "11222333000181", got.TaxID)
}

func TestService_Update_NotFound(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}

	_, err := svc.Update(context.Background(), 42, entity.FoundationPatch{})
	de := requireKind(t, err, entity.KindNotFound)
	assert.Equal(t, fdnUC.MsgNotFound, de.Message)
}

func TestService_Update_DuplicateTaxID(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	_, err := svc.Create(context.Background(), patch("Inst A", "11111111000111"))
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), patch("Inst B", "22222222000122"))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 2, entity.FoundationPatch{TaxID: entity.Some("11111111000111")})
	requireKind(t, err, entity.KindConflict)
}

func TestService_Delete(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}
	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), 1))

	got, err := svc.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, got)

	err = svc.Delete(context.Background(), 1)
	de := requireKind(t, err, entity.KindNotFound)
	assert.Equal(t, fdnUC.MsgNotFound, de.Message)
}

func TestService_ListAll(t *testing.T) {
	svc := fdnUC.Service{Repo: newStub()}

	empty, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, taxID := range []string{"11111111000111", "22222222000122", "33333333000133"} {
		_, err := svc.Create(context.Background(), patch("Inst", taxID))
		require.NoError(t, err)
	}

	list, err := svc.ListAll(context.Background())
	require.NoError(t, err)
	ids := make([]int64, 0, len(list))
	for _, f := range list {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []int64{3, 2, 1}, ids)
}

func TestService_CountAndRefreshStats(t *testing.T) {
	stub := newStub()
	svc := fdnUC.Service{Repo: stub}
	_, err := svc.Create(context.Background(), patch("Inst A", "12345678000199"))
	require.NoError(t, err)

	n, err := svc.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NoError(t, svc.RefreshStats(context.Background()))

	stub.err = errors.New("boom")
	assert.Error(t, svc.RefreshStats(context.Background()))
}
