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

type ClienteService interface {
	Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type clienteService struct {
	repo repository.ClienteRepository
}

func NewClienteService(repo repository.ClienteRepository) ClienteService {
	return &clienteService{repo: repo}
}

func mapCliente(c *model.Cliente) *dto.ClienteResponse {
	return &dto.ClienteResponse{
		ID:      c.ID.String(),
		Nombre:  c.Nombre,
		Correo:  c.Correo,
		Celular: c.Celular,
		Puntos:  c.Puntos,
	}
}

func (s *clienteService) Crear(ctx context.Context, req dto.CrearClienteRequest) (*dto.ClienteResponse, error) {
	if req.Correo != nil {
		existing, err := s.repo.FindByCorreo(ctx, *req.Correo)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil {
			return nil, errors.New("ya existe un cliente con ese correo")
		}
	}

	c := &model.Cliente{
		Nombre:  req.Nombre,
		Correo:  req.Correo,
		Celular: req.Celular,
		Activo:  true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return mapCliente(c), nil
}

func (s *clienteService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapCliente(c), nil
}

func (s *clienteService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.ClienteResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	result := make([]dto.ClienteResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapCliente(&list[i]))
	}
	return result, nil
}

func (s *clienteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarClienteRequest) (*dto.ClienteResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Correo != nil && (c.Correo == nil || *req.Correo != *c.Correo) {
		existing, err := s.repo.FindByCorreo(ctx, *req.Correo)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil && existing.ID != id {
			return nil, errors.New("ya existe un cliente con ese correo")
		}
		c.Correo = req.Correo
	}
	if req.Nombre != nil {
		c.Nombre = *req.Nombre
	}
	if req.Celular != nil {
		c.Celular = req.Celular
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return mapCliente(c), nil
}

func (s *clienteService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SoftDelete(ctx, id)
}

func (s *clienteService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

// Eliminar removes the customer permanently. Finalized sales keep their
// totals and points usage; only the customer reference is nulled.
func (s *clienteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
