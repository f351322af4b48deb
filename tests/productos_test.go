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

// ── In-memory ProductoRepository stub ────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uuid.UUID]*model.Producto
	recetas   map[uuid.UUID]*model.ProductoReceta
	// resolves Insumo pointers for recipe lines, as the GORM preload would
	insumos *stubInsumoRepo
}

func newStubProductoRepo(insumos *stubInsumoRepo) *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uuid.UUID]*model.Producto),
		recetas:   make(map[uuid.UUID]*model.ProductoReceta),
		insumos:   insumos,
	}
}

func (r *stubProductoRepo) cargarReceta(productoID uuid.UUID) []model.ProductoReceta {
	var lineas []model.ProductoReceta
	for _, pr := range r.recetas {
		if pr.ProductoID != productoID {
			continue
		}
		linea := *pr
		if r.insumos != nil {
			linea.Insumo = r.insumos.insumos[pr.InsumoID]
		}
		lineas = append(lineas, linea)
	}
	return lineas
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	p.RecetaItems = r.cargarReceta(id)
	return p, nil
}

func (r *stubProductoRepo) FindByNombre(_ context.Context, nombre string) (*model.Producto, error) {
	for _, p := range r.productos {
		if p.Nombre == nombre {
			return p, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) List(_ context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var result []model.Producto
	for id, p := range r.productos {
		if !p.Activo && !incluirInactivos {
			continue
		}
		copia := *p
		copia.RecetaItems = r.cargarReceta(id)
		result = append(result, copia)
	}
	return result, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = false
	return nil
}

func (r *stubProductoRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	p, ok := r.productos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Activo = true
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.productos[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.productos, id)
	for rid, pr := range r.recetas {
		if pr.ProductoID == id {
			delete(r.recetas, rid)
		}
	}
	return nil
}

func (r *stubProductoRepo) CreateReceta(_ context.Context, pr *model.ProductoReceta) error {
	if pr.ID == uuid.Nil {
		pr.ID = uuid.New()
	}
	r.recetas[pr.ID] = pr
	return nil
}

func (r *stubProductoRepo) FindRecetaByID(_ context.Context, id uuid.UUID) (*model.ProductoReceta, error) {
	pr, ok := r.recetas[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return pr, nil
}

func (r *stubProductoRepo) FindRecetaPorProductoInsumo(_ context.Context, productoID, insumoID uuid.UUID) (*model.ProductoReceta, error) {
	for _, pr := range r.recetas {
		if pr.ProductoID == productoID && pr.InsumoID == insumoID {
			return pr, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *stubProductoRepo) UpdateReceta(_ context.Context, pr *model.ProductoReceta) error {
	r.recetas[pr.ID] = pr
	return nil
}

func (r *stubProductoRepo) DeleteReceta(_ context.Context, id uuid.UUID) error {
	if _, ok := r.recetas[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.recetas, id)
	return nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func seedProducto(repo *stubProductoRepo, nombre string, precio float64) *model.Producto {
	p := &model.Producto{
		ID:          uuid.New(),
		Nombre:      nombre,
		PrecioVenta: decimal.NewFromFloat(precio),
		Activo:      true,
	}
	repo.productos[p.ID] = p
	return p
}

func seedReceta(repo *stubProductoRepo, productoID, insumoID uuid.UUID, cantidad float64, unidad model.Unidad) *model.ProductoReceta {
	pr := &model.ProductoReceta{
		ID:         uuid.New(),
		ProductoID: productoID,
		InsumoID:   insumoID,
		Cantidad:   decimal.NewFromFloat(cantidad),
		Unidad:     unidad,
	}
	repo.recetas[pr.ID] = pr
	return pr
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestCrearProducto(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	resp, err := svc.Crear(context.Background(), dto.CrearProductoRequest{
		Nombre:      "Latte",
		PrecioVenta: decimal.NewFromFloat(35.50),
	})
	require.NoError(t, err)
	assert.Equal(t, "Latte", resp.Nombre)
	assert.Equal(t, "35.50", resp.PrecioVenta.StringFixed(2))
	assert.Empty(t, resp.Receta)
}

func TestCrearProductoNombreDuplicado(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)
	seedProducto(repo, "Latte", 35.50)

	_, err := svc.Crear(context.Background(), dto.CrearProductoRequest{Nombre: "Latte"})
	assert.ErrorContains(t, err, "ya existe")
}

func TestAgregarRecetaYCostos(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	cafe := seedInsumo(insumoRepo, "Café molido", model.UnidadKg, 5, 1, 400)
	leche := seedInsumo(insumoRepo, "Leche", model.UnidadL, 10, 2, 80)
	latte := seedProducto(repo, "Latte", 35.50)

	// 18 g de café sobre stock en kg: la línea se convierte a 0.018 kg
	_, err := svc.AgregarReceta(context.Background(), latte.ID, dto.RecetaItemRequest{
		InsumoID: cafe.ID.String(),
		Cantidad: decimal.NewFromInt(18),
		Unidad:   "g",
	})
	require.NoError(t, err)

	resp, err := svc.AgregarReceta(context.Background(), latte.ID, dto.RecetaItemRequest{
		InsumoID: leche.ID.String(),
		Cantidad: decimal.NewFromInt(200),
		Unidad:   "ml",
	})
	require.NoError(t, err)
	require.Len(t, resp.Receta, 2)

	costos, err := svc.ObtenerCostos(context.Background(), latte.ID)
	require.NoError(t, err)
	// café: 0.018 kg × 400 = 7.20; leche: 0.2 l × 80 = 16.00
	assert.Equal(t, "23.20", costos.CostoTotal.StringFixed(2))
	assert.Equal(t, "12.30", costos.GananciaUnitaria.StringFixed(2))
	// (35.50 − 23.20) / 23.20 × 100
	assert.Equal(t, "53.02", costos.MargenGanancia.StringFixed(2))
}

func TestAgregarRecetaUnidadIncompatible(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	cafe := seedInsumo(insumoRepo, "Café molido", model.UnidadKg, 5, 1, 400)
	latte := seedProducto(repo, "Latte", 35.50)

	_, err := svc.AgregarReceta(context.Background(), latte.ID, dto.RecetaItemRequest{
		InsumoID: cafe.ID.String(),
		Cantidad: decimal.NewFromInt(30),
		Unidad:   "ml",
	})
	assert.ErrorIs(t, err, model.ErrUnidadesIncompatibles)
}

func TestAgregarRecetaInsumoRepetido(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	leche := seedInsumo(insumoRepo, "Leche", model.UnidadL, 10, 2, 80)
	latte := seedProducto(repo, "Latte", 35.50)
	seedReceta(repo, latte.ID, leche.ID, 0.2, model.UnidadL)

	_, err := svc.AgregarReceta(context.Background(), latte.ID, dto.RecetaItemRequest{
		InsumoID: leche.ID.String(),
		Cantidad: decimal.NewFromInt(100),
		Unidad:   "ml",
	})
	assert.ErrorContains(t, err, "ya forma parte")
}

func TestMargenProductoSinReceta(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)
	p := seedProducto(repo, "Agua de la casa", 10)

	costos, err := svc.ObtenerCostos(context.Background(), p.ID)
	require.NoError(t, err)
	// zero cost never divides: margin reports 0
	assert.Equal(t, "0.00", costos.CostoTotal.StringFixed(2))
	assert.Equal(t, "0.00", costos.MargenGanancia.StringFixed(2))
	assert.Equal(t, "10.00", costos.GananciaUnitaria.StringFixed(2))
}

func TestActualizarRecetaDeOtroProducto(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	leche := seedInsumo(insumoRepo, "Leche", model.UnidadL, 10, 2, 80)
	latte := seedProducto(repo, "Latte", 35.50)
	te := seedProducto(repo, "Té", 20)
	linea := seedReceta(repo, latte.ID, leche.ID, 0.2, model.UnidadL)

	_, err := svc.ActualizarReceta(context.Background(), te.ID, linea.ID, dto.RecetaItemRequest{
		InsumoID: leche.ID.String(),
		Cantidad: decimal.NewFromInt(100),
		Unidad:   "ml",
	})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestEliminarReceta(t *testing.T) {
	insumoRepo := newStubInsumoRepo()
	repo := newStubProductoRepo(insumoRepo)
	svc := service.NewProductoService(repo, insumoRepo)

	leche := seedInsumo(insumoRepo, "Leche", model.UnidadL, 10, 2, 80)
	latte := seedProducto(repo, "Latte", 35.50)
	linea := seedReceta(repo, latte.ID, leche.ID, 0.2, model.UnidadL)

	require.NoError(t, svc.EliminarReceta(context.Background(), latte.ID, linea.ID))

	resp, err := svc.Obtener(context.Background(), latte.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.Receta)
}
