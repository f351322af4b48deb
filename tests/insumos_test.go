package tests

import (
	"context"
	"testing"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"
	"github.com/iangusi/cafeteria-admin/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── In-memory InsumoRepository stub ──────────────────────────────────────────

type stubInsumoRepo struct {
	insumos map[uuid.UUID]*model.Insumo
	// recipe lines referencing each insumo, keyed by insumo ID
	recetaRefs map[uuid.UUID]int64
}

func newStubInsumoRepo() *stubInsumoRepo {
	return &stubInsumoRepo{
		insumos:    make(map[uuid.UUID]*model.Insumo),
		recetaRefs: make(map[uuid.UUID]int64),
	}
}

func (r *stubInsumoRepo) Create(_ context.Context, i *model.Insumo) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Insumo, error) {
	i, ok := r.insumos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return i, nil
}

func (r *stubInsumoRepo) FindByNombre(_ context.Context, nombre string) (*model.Insumo, error) {
	for _, i := range r.insumos {
		if i.Nombre == nombre {
			return i, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubInsumoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var result []model.Insumo
	for _, i := range r.insumos {
		if !i.Activo && !incluirInactivos {
			continue
		}
		result = append(result, *i)
	}
	return result, nil
}

func (r *stubInsumoRepo) ListBajoStock(_ context.Context) ([]model.Insumo, error) {
	var result []model.Insumo
	for _, i := range r.insumos {
		if i.Activo && i.EstaBajoStock() {
			result = append(result, *i)
		}
	}
	return result, nil
}

func (r *stubInsumoRepo) Update(_ context.Context, i *model.Insumo) error {
	r.insumos[i.ID] = i
	return nil
}

func (r *stubInsumoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	i, ok := r.insumos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.Activo = false
	return nil
}

func (r *stubInsumoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	i, ok := r.insumos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.Activo = true
	return nil
}

func (r *stubInsumoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.insumos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.insumos, id)
	return nil
}

func (r *stubInsumoRepo) CountRecetas(_ context.Context, insumoID uuid.UUID) (int64, error) {
	return r.recetaRefs[insumoID], nil
}

func (r *stubInsumoRepo) FindByIDTx(_ *gorm.DB, id uuid.UUID, _ bool) (*model.Insumo, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubInsumoRepo) UpdateCantidadTx(_ *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	i, ok := r.insumos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	i.Cantidad = cantidad
	return nil
}

func (r *stubInsumoRepo) DB() *gorm.DB { return nil }

var _ repository.InsumoRepository = (*stubInsumoRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedInsumo(repo *stubInsumoRepo, nombre string, unidad model.Unidad, cantidad, minima, costo float64) *model.Insumo {
	i := &model.Insumo{
		ID:             uuid.New(),
		Nombre:         nombre,
		Cantidad:       decimal.NewFromFloat(cantidad),
		CantidadMin:    decimal.NewFromFloat(minima),
		Unidad:         unidad,
		CostoPorUnidad: decimal.NewFromFloat(costo),
		Activo:         true,
	}
	repo.insumos[i.ID] = i
	return i
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCrearInsumo(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)

	resp, err := svc.Crear(context.Background(), dto.CrearInsumoRequest{
		Nombre:         "Café molido",
		Cantidad:       decimal.NewFromFloat(5),
		CantidadMinima: decimal.NewFromFloat(1),
		Unidad:         "kg",
		CostoPorUnidad: decimal.NewFromFloat(400),
	})
	require.NoError(t, err)
	assert.Equal(t, "Café molido", resp.Nombre)
	assert.Equal(t, "kg", resp.Unidad)
	assert.Equal(t, "2000.00", resp.CostoTotal.StringFixed(2))
	assert.False(t, resp.BajoStock)
	assert.True(t, resp.Activo)
}

func TestCrearInsumoNombreDuplicado(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)
	seedInsumo(repo, "Azúcar", model.UnidadKg, 10, 2, 30)

	_, err := svc.Crear(context.Background(), dto.CrearInsumoRequest{
		Nombre: "Azúcar",
		Unidad: "kg",
	})
	assert.ErrorContains(t, err, "ya existe")
}

func TestCrearInsumoUnidadDeReceta(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)

	// docena is a recipe-only unit; stock is held in piezas
	_, err := svc.Crear(context.Background(), dto.CrearInsumoRequest{
		Nombre: "Huevos",
		Unidad: "docena",
	})
	assert.ErrorIs(t, err, model.ErrUnidadesIncompatibles)
}

func TestListarBajoStock(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)

	seedInsumo(repo, "Café", model.UnidadKg, 5, 1, 400)       // ok
	seedInsumo(repo, "Leche", model.UnidadL, 2, 2, 80)        // at minimum → low
	seedInsumo(repo, "Vainilla", model.UnidadMl, 10, 50, 1.2) // below → low

	bajos, err := svc.ListarBajoStock(context.Background())
	require.NoError(t, err)
	assert.Len(t, bajos, 2)
	for _, b := range bajos {
		assert.True(t, b.BajoStock)
	}
}

func TestEliminarInsumoEnUso(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)
	i := seedInsumo(repo, "Cacao", model.UnidadG, 800, 100, 0.9)
	repo.recetaRefs[i.ID] = 2

	err := svc.Eliminar(context.Background(), i.ID)
	assert.ErrorIs(t, err, service.ErrInsumoEnUso)

	// with no recipes referencing it, deletion goes through
	repo.recetaRefs[i.ID] = 0
	require.NoError(t, svc.Eliminar(context.Background(), i.ID))
	_, err = repo.FindByID(context.Background(), i.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestDesactivarInsumo(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)
	i := seedInsumo(repo, "Canela", model.UnidadG, 200, 20, 1.5)

	require.NoError(t, svc.Desactivar(context.Background(), i.ID))

	activos, err := svc.Listar(context.Background(), false)
	require.NoError(t, err)
	assert.Empty(t, activos)

	todos, err := svc.Listar(context.Background(), true)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
	assert.False(t, todos[0].Activo)
}

func TestActualizarInsumo(t *testing.T) {
	repo := newStubInsumoRepo()
	svc := service.NewInsumoService(repo)
	i := seedInsumo(repo, "Leche", model.UnidadL, 10, 2, 80)

	nuevaCantidad := decimal.NewFromFloat(4.5)
	nuevoCosto := decimal.NewFromFloat(95)
	resp, err := svc.Actualizar(context.Background(), i.ID, dto.ActualizarInsumoRequest{
		Cantidad:       &nuevaCantidad,
		CostoPorUnidad: &nuevoCosto,
	})
	require.NoError(t, err)
	assert.Equal(t, "4.50", resp.Cantidad.StringFixed(2))
	assert.Equal(t, "427.50", resp.CostoTotal.StringFixed(2))
}
