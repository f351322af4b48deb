package service

import (
	"context"
	"errors"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/infra"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmpleadoService interface {
	Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.EmpleadoResponse, error)
	Listar(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	// ResumenHoras aggregates scheduled hours, worked hours and pay for the
	// date range. Out-of-order dates are swapped before computing.
	ResumenHoras(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (*dto.ResumenHorasResponse, error)
	// GenerarRecibo writes the pay-stub PDF and returns its file path.
	GenerarRecibo(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (string, error)
}

type empleadoService struct {
	repo           repository.EmpleadoRepository
	horarioRepo    repository.HorarioRepository
	asistenciaRepo repository.AsistenciaRepository
	reloj          Reloj
	pdfStoragePath string
}

func NewEmpleadoService(
	repo repository.EmpleadoRepository,
	horarioRepo repository.HorarioRepository,
	asistenciaRepo repository.AsistenciaRepository,
	reloj Reloj,
	pdfStoragePath string,
) EmpleadoService {
	return &empleadoService{
		repo:           repo,
		horarioRepo:    horarioRepo,
		asistenciaRepo: asistenciaRepo,
		reloj:          reloj,
		pdfStoragePath: pdfStoragePath,
	}
}

func mapEmpleado(e *model.Empleado) *dto.EmpleadoResponse {
	correo := ""
	if e.Correo != nil {
		correo = *e.Correo
	}
	var baja *string
	if e.FechaDesactivacion != nil {
		f := e.FechaDesactivacion.Format("2006-01-02")
		baja = &f
	}
	return &dto.EmpleadoResponse{
		ID:                 e.ID.String(),
		Nombre:             e.Nombre,
		Correo:             correo,
		Rol:                e.Rol,
		PagoPorHora:        e.PagoPorHora,
		FechaContratacion:  e.FechaContratacion.Format("2006-01-02"),
		FechaDesactivacion: baja,
		Activo:             e.Activo,
	}
}

func (s *empleadoService) Crear(ctx context.Context, req dto.CrearEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	existing, err := s.repo.FindByCorreo(ctx, req.Correo)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, errors.New("ya existe un empleado con ese correo")
	}

	contratacion := soloFecha(s.reloj.Ahora())
	if req.FechaContratacion != "" {
		f, err := time.Parse("2006-01-02", req.FechaContratacion)
		if err != nil {
			return nil, errors.New("fecha_contratacion inválida")
		}
		contratacion = f
	}

	e := &model.Empleado{
		Nombre:            req.Nombre,
		Correo:            &req.Correo,
		Rol:               req.Rol,
		PagoPorHora:       req.PagoPorHora,
		FechaContratacion: contratacion,
		Activo:            true,
	}
	if err := e.SetPassword(req.Password); err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Listar(ctx context.Context, incluirInactivos bool) ([]dto.EmpleadoResponse, error) {
	list, err := s.repo.List(ctx, incluirInactivos)
	if err != nil {
		return nil, err
	}
	result := make([]dto.EmpleadoResponse, 0, len(list))
	for i := range list {
		result = append(result, *mapEmpleado(&list[i]))
	}
	return result, nil
}

func (s *empleadoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarEmpleadoRequest) (*dto.EmpleadoResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Correo != nil && (e.Correo == nil || *req.Correo != *e.Correo) {
		existing, err := s.repo.FindByCorreo(ctx, *req.Correo)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if existing != nil && err == nil && existing.ID != id {
			return nil, errors.New("ya existe un empleado con ese correo")
		}
		e.Correo = req.Correo
	}
	if req.Nombre != nil {
		e.Nombre = *req.Nombre
	}
	if req.Rol != nil {
		e.Rol = *req.Rol
	}
	if req.PagoPorHora != nil {
		e.PagoPorHora = *req.PagoPorHora
	}
	if req.Password != nil {
		if err := e.SetPassword(*req.Password); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return mapEmpleado(e), nil
}

func (s *empleadoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Desactivar(ctx, id, soloFecha(s.reloj.Ahora()))
}

func (s *empleadoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Reactivar(ctx, id)
}

// ── Horas y pago ──────────────────────────────────────────────────────────────

// normalizarRango puts the dates in order and strips time-of-day.
func normalizarRango(desde, hasta time.Time) (time.Time, time.Time) {
	desde, hasta = soloFecha(desde), soloFecha(hasta)
	if hasta.Before(desde) {
		desde, hasta = hasta, desde
	}
	return desde, hasta
}

// horasAsignadas sums scheduled block durations whose real calendar date
// falls inside [desde, hasta]. Blocks are fetched by their anchor Monday:
// the bracket [LunesDeSemana(desde), LunesDeSemana(hasta)] covers every week
// that can contribute a date in range.
func (s *empleadoService) horasAsignadas(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	bloques, err := s.horarioRepo.ListPorRangoLunes(ctx, id,
		soloFecha(model.LunesDeSemana(desde)), soloFecha(model.LunesDeSemana(hasta)))
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range bloques {
		dia := soloFecha(bloques[i].FechaDia())
		if dia.Before(desde) || dia.After(hasta) {
			continue
		}
		horas, err := bloques[i].DuracionHoras()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(horas)
	}
	return total.Round(2), nil
}

func (s *empleadoService) horasTrabajadas(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (decimal.Decimal, error) {
	registros, err := s.asistenciaRepo.ListConRegistro(ctx, id, desde, hasta)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range registros {
		horas, err := registros[i].HorasTrabajadas()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(horas)
	}
	return total.Round(2), nil
}

func (s *empleadoService) ResumenHoras(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (*dto.ResumenHorasResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	desde, hasta = normalizarRango(desde, hasta)

	asignadas, err := s.horasAsignadas(ctx, id, desde, hasta)
	if err != nil {
		return nil, err
	}
	trabajadas, err := s.horasTrabajadas(ctx, id, desde, hasta)
	if err != nil {
		return nil, err
	}
	pago := trabajadas.Mul(e.PagoPorHora).Round(2)

	return &dto.ResumenHorasResponse{
		EmpleadoID:      e.ID.String(),
		Desde:           desde.Format("2006-01-02"),
		Hasta:           hasta.Format("2006-01-02"),
		HorasAsignadas:  asignadas,
		HorasTrabajadas: trabajadas,
		PagoFinal:       pago,
	}, nil
}

func (s *empleadoService) GenerarRecibo(ctx context.Context, id uuid.UUID, desde, hasta time.Time) (string, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	desde, hasta = normalizarRango(desde, hasta)

	resumen, err := s.ResumenHoras(ctx, id, desde, hasta)
	if err != nil {
		return "", err
	}

	recibo := &infra.ReciboPago{
		Empleado:        e,
		FechaInicio:     desde,
		FechaFin:        hasta,
		HorasAsignadas:  resumen.HorasAsignadas,
		HorasTrabajadas: resumen.HorasTrabajadas,
		Pago:            resumen.PagoFinal,
	}
	return infra.GenerateReciboPDF(recibo, s.pdfStoragePath)
}
