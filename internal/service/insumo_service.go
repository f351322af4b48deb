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

// ErrInsumoEnUso blocks deletion while any recipe line references the insumo.
var ErrInsumoEnUso = errors.New("el insumo está en uso por una o más recetas")

type InsumoService interface {
	Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error)
	ListarBajoStock(ctx context.Context) ([]dto.InsumoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type insumoService struct {
	repo repository.InsumoRepository
}

func NewInsumoService(repo repository.InsumoRepository) InsumoService {
	return &insumoService{repo: repo}
}

func mapInsumo(i *model.Insumo) *dto.InsumoResponse {
	return &dto.InsumoResponse{
		ID:             i.ID.String(),
		Nombre:         i.Nombre,
		Cantidad:       i.Cantidad,
		CantidadMinima: i.CantidadMin,
		Unidad:         string(i.Unidad),
		CostoPorUnidad: i.CostoPorUnidad,
		CostoTotal:     i.CostoTotal(),
		BajoStock:      i.EstaBajoStock(),
		Activo:         i.Activo,
	}
}

func (s *insumoService) Crear(ctx context.Context, req dto.CrearInsumoRequest) (*dto.InsumoResponse, error) {
	existing, err := s.repo.FindByNombre(ctx, req.Nombre)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, errors.New("ya existe un insumo con ese nombre")
	}

	unidad := model.Unidad(req.Unidad)
	if !model.EsUnidadInsumo(unidad) {
		return nil, model.ErrUnidadesIncompatibles
	}

	i := &model.Insumo{
		Nombre:         req.Nombre,
		Cantidad:       req.Cantidad,
		CantidadMin:    req.CantidadMinima,
		Unidad:         unidad,
		CostoPorUnidad: req.CostoPorUnidad,
		Activo:         true,
	}
	if err := s.repo.Create(ctx, i); err != nil {
		return nil, err
	}
	return mapInsumo(i), nil
}

func (s *insumoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapInsumo(i), nil
}

func (s *insumoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.InsumoResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InsumoResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapInsumo(&list[i]))
	}
	return result, nil
}

func (s *insumoService) ListarBajoStock(ctx context.Context) ([]dto.InsumoResponse, error) {
	list, err := s.repo.ListBajoStock(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]dto.InsumoResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapInsumo(&list[i]))
	}
	return result, nil
}

func (s *insumoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarInsumoRequest) (*dto.InsumoResponse, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil && *req.Nombre != i.Nombre {
		existing, err := s.repo.FindByNombre(ctx, *req.Nombre)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil && existing.ID != id {
			return nil, errors.New("ya existe un insumo con ese nombre")
		}
		i.Nombre = *req.Nombre
	}
	if req.Cantidad != nil {
		i.Cantidad = *req.Cantidad
	}
	if req.CantidadMinima != nil {
		i.CantidadMin = *req.CantidadMinima
	}
	if req.Unidad != nil {
		unidad := model.Unidad(*req.Unidad)
		if !model.EsUnidadInsumo(unidad) {
			return nil, model.ErrUnidadesIncompatibles
		}
		i.Unidad = unidad
	}
	if req.CostoPorUnidad != nil {
		i.CostoPorUnidad = *req.CostoPorUnidad
	}

	if err := s.repo.Update(ctx, i); err != nil {
		return nil, err
	}
	return mapInsumo(i), nil
}

func (s *insumoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *insumoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

// Eliminar removes the insumo permanently. Refused while any recipe still
// references it, matching the PROTECT rule on the recipe foreign key.
func (s *insumoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	count, err := s.repo.CountRecetas(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return ErrInsumoEnUso
	}
	return s.repo.Delete(ctx, id)
}
