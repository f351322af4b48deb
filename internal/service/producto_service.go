package service

import (
	"context"
	"errors"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error)
	// ObtenerCostos returns the product with its derived cost, margin and
	// unit profit. Figures are always recomputed from the current recipe.
	ObtenerCostos(ctx context.Context, id uuid.UUID) (*dto.ProductoCostosResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error

	AgregarReceta(ctx context.Context, productoID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error)
	ActualizarReceta(ctx context.Context, productoID, recetaID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error)
	EliminarReceta(ctx context.Context, productoID, recetaID uuid.UUID) error
}

type productoService struct {
	repo       repository.ProductoRepository
	insumoRepo repository.InsumoRepository
}

func NewProductoService(repo repository.ProductoRepository, insumoRepo repository.InsumoRepository) ProductoService {
	return &productoService{repo: repo, insumoRepo: insumoRepo}
}

func mapProducto(p *model.Producto) (*dto.ProductoResponse, error) {
	receta := make([]dto.RecetaItemResponse, 0, len(p.RecetaItems))
	for i := range p.RecetaItems {
		pr := &p.RecetaItems[i]
		nombre := ""
		if pr.Insumo != nil {
			nombre = pr.Insumo.Nombre
		}
		costo, err := pr.CostoLinea()
		if err != nil {
			return nil, err
		}
		receta = append(receta, dto.RecetaItemResponse{
			ID:         pr.ID.String(),
			InsumoID:   pr.InsumoID.String(),
			Insumo:     nombre,
			Cantidad:   pr.Cantidad,
			Unidad:     string(pr.Unidad),
			CostoLinea: costo,
		})
	}
	return &dto.ProductoResponse{
		ID:          p.ID.String(),
		Nombre:      p.Nombre,
		Descripcion: p.Descripcion,
		PrecioVenta: p.PrecioVenta,
		Activo:      p.Activo,
		Receta:      receta,
	}, nil
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	existing, err := s.repo.FindByNombre(ctx, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, errors.New("ya existe un producto con ese nombre")
	}

	p := &model.Producto{
		Nombre:      req.Nombre,
		Descripcion: req.Descripcion,
		PrecioVenta: req.PrecioVenta,
		Activo:      true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return mapProducto(p)
}

func (s *productoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapProducto(p)
}

func (s *productoService) ObtenerCostos(ctx context.Context, id uuid.UUID) (*dto.ProductoCostosResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	base, err := mapProducto(p)
	if err != nil {
		return nil, err
	}
	costo, err := p.CostoTotal()
	if err != nil {
		return nil, err
	}
	margen, err := p.MargenGanancia()
	if err != nil {
		return nil, err
	}
	ganancia, err := p.GananciaUnitaria()
	if err != nil {
		return nil, err
	}
	return &dto.ProductoCostosResponse{
		ProductoResponse: *base,
		CostoTotal:       costo,
		MargenGanancia:   margen,
		GananciaUnitaria: ganancia,
	}, nil
}

func (s *productoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ProductoResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ProductoResponse, 0, len(list))
	for i := range list {
		resp, err := mapProducto(&list[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil && *req.Nombre != p.Nombre {
		existing, err := s.repo.FindByNombre(ctx, *req.Nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil && existing.ID != id {
			return nil, errors.New("ya existe un producto con ese nombre")
		}
		p.Nombre = *req.Nombre
	}
	if req.Descripcion != nil {
		p.Descripcion = req.Descripcion
	}
	if req.PrecioVenta != nil {
		p.PrecioVenta = *req.PrecioVenta
	}
	if req.Activo != nil {
		p.Activo = *req.Activo
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return mapProducto(p)
}

// Eliminar removes the product. Sale history survives: items keep their
// price snapshot with the product reference nulled.
func (s *productoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ── Receta ────────────────────────────────────────────────────────────────────

func (s *productoService) AgregarReceta(ctx context.Context, productoID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error) {
	if _, err := s.repo.FindByID(ctx, productoID); err != nil {
		return nil, err
	}
	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, errors.New("insumo_id inválido")
	}
	insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
	if err != nil {
		return nil, errors.New("insumo no encontrado")
	}

	// At most one line per (producto, insumo)
	existing, err := s.repo.FindRecetaPorProductoInsumo(ctx, productoID, insumoID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, errors.New("el insumo ya forma parte de la receta")
	}

	unidad := model.Unidad(req.Unidad)
	// Reject lines whose unit cannot convert into the insumo's stock unit
	if _, err := model.Convertir(req.Cantidad, unidad, insumo.Unidad); err != nil {
		return nil, err
	}

	pr := &model.ProductoReceta{
		ProductoID: productoID,
		InsumoID:   insumoID,
		Cantidad:   req.Cantidad,
		Unidad:     unidad,
	}
	if err := s.repo.CreateReceta(ctx, pr); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, productoID)
}

func (s *productoService) ActualizarReceta(ctx context.Context, productoID, recetaID uuid.UUID, req dto.RecetaItemRequest) (*dto.ProductoResponse, error) {
	pr, err := s.repo.FindRecetaByID(ctx, recetaID)
	if err != nil {
		return nil, err
	}
	if pr.ProductoID != productoID {
		return nil, gorm.ErrRecordNotFound
	}

	insumoID, err := uuid.Parse(req.InsumoID)
	if err != nil {
		return nil, errors.New("insumo_id inválido")
	}
	insumo, err := s.insumoRepo.FindByID(ctx, insumoID)
	if err != nil {
		return nil, errors.New("insumo no encontrado")
	}
	if insumoID != pr.InsumoID {
		existing, err := s.repo.FindRecetaPorProductoInsumo(ctx, productoID, insumoID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil {
			return nil, errors.New("el insumo ya forma parte de la receta")
		}
	}

	unidad := model.Unidad(req.Unidad)
	if _, err := model.Convertir(req.Cantidad, unidad, insumo.Unidad); err != nil {
		return nil, err
	}

	pr.InsumoID = insumoID
	pr.Cantidad = req.Cantidad
	pr.Unidad = unidad
	if err := s.repo.UpdateReceta(ctx, pr); err != nil {
		return nil, err
	}
	return s.Obtener(ctx, productoID)
}

func (s *productoService) EliminarReceta(ctx context.Context, productoID, recetaID uuid.UUID) error {
	pr, err := s.repo.FindRecetaByID(ctx, recetaID)
	if err != nil {
		return err
	}
	if pr.ProductoID != productoID {
		return gorm.ErrRecordNotFound
	}
	return s.repo.DeleteReceta(ctx, recetaID)
}
