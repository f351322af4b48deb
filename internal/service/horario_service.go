package service

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Derived block states — never persisted.
const (
	EstadoFuturo   = "futuro"
	EstadoAusente  = "ausente"
	EstadoParcial  = "parcial"
	EstadoCompleto = "completo"
)

// umbralCompleto: a block counts as completo when worked hours reach 95% of
// the scheduled duration. Fixed policy, not configurable.
var umbralCompleto = decimal.NewFromFloat(0.95)

type HorarioService interface {
	Crear(ctx context.Context, req dto.CrearHorarioRequest) (*dto.HorarioResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.HorarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarHorarioRequest) (*dto.HorarioResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
	// TableroSemana returns every block of the week containing fecha,
	// grouped by weekday offset, each with its derived state.
	TableroSemana(ctx context.Context, fecha time.Time) (*dto.TableroSemanaResponse, error)
}

type horarioService struct {
	repo           repository.HorarioRepository
	empleadoRepo   repository.EmpleadoRepository
	asistenciaRepo repository.AsistenciaRepository
	reloj          Reloj
}

func NewHorarioService(
	repo repository.HorarioRepository,
	empleadoRepo repository.EmpleadoRepository,
	asistenciaRepo repository.AsistenciaRepository,
	reloj Reloj,
) HorarioService {
	return &horarioService{
		repo:           repo,
		empleadoRepo:   empleadoRepo,
		asistenciaRepo: asistenciaRepo,
		reloj:          reloj,
	}
}

func soloFecha(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// estadoBloque derives the state of one block against its attendance record:
// futuro when the calendar date is still ahead, completo at or above the 95%
// threshold, parcial for any worked time below it, ausente when nothing was
// worked — a lone clock-in without clock-out counts zero hours and stays
// ausente.
func estadoBloque(h *model.Horario, a *model.Asistencia, hoy time.Time) (string, error) {
	if soloFecha(h.FechaDia()).After(soloFecha(hoy)) {
		return EstadoFuturo, nil
	}
	if a == nil || !a.TieneRegistro() {
		return EstadoAusente, nil
	}
	trabajadas, err := a.HorasTrabajadas()
	if err != nil {
		return "", err
	}
	programadas, err := h.DuracionHoras()
	if err != nil {
		return "", err
	}
	switch {
	case trabajadas.GreaterThanOrEqual(programadas.Mul(umbralCompleto)):
		return EstadoCompleto, nil
	case trabajadas.IsPositive():
		return EstadoParcial, nil
	default:
		return EstadoAusente, nil
	}
}

func (s *horarioService) mapHorario(ctx context.Context, h *model.Horario) (*dto.HorarioResponse, error) {
	var asistencia *model.Asistencia
	a, err := s.asistenciaRepo.FindPorEmpleadoYFecha(ctx, h.EmpleadoID, soloFecha(h.FechaDia()))
	if err == nil {
		asistencia = a
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	estado, err := estadoBloque(h, asistencia, s.reloj.Ahora())
	if err != nil {
		return nil, err
	}

	nombre := ""
	if h.Empleado != nil {
		nombre = h.Empleado.Nombre
	}
	return &dto.HorarioResponse{
		ID:         h.ID.String(),
		EmpleadoID: h.EmpleadoID.String(),
		Empleado:   nombre,
		Fecha:      h.Fecha.Format("2006-01-02"),
		DiaSemana:  h.DiaSemana,
		FechaDia:   h.FechaDia().Format("2006-01-02"),
		HoraInicio: h.HoraInicio,
		HoraFin:    h.HoraFin,
		Estado:     estado,
	}, nil
}

func (s *horarioService) Crear(ctx context.Context, req dto.CrearHorarioRequest) (*dto.HorarioResponse, error) {
	empleadoID, err := uuid.Parse(req.EmpleadoID)
	if err != nil {
		return nil, errors.New("empleado_id inválido")
	}
	if _, err := s.empleadoRepo.FindByID(ctx, empleadoID); err != nil {
		return nil, errors.New("empleado no encontrado")
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, errors.New("fecha inválida")
	}
	if !model.EsLunes(fecha) {
		return nil, errors.New("la fecha del bloque debe ser un lunes")
	}

	if _, err := model.ParseHoraDia(req.HoraInicio); err != nil {
		return nil, err
	}
	if _, err := model.ParseHoraDia(req.HoraFin); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindBloque(ctx, empleadoID, fecha, req.DiaSemana)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && err == nil {
		return nil, errors.New("el empleado ya tiene un bloque ese día")
	}

	h := &model.Horario{
		EmpleadoID: empleadoID,
		Fecha:      fecha,
		DiaSemana:  req.DiaSemana,
		HoraInicio: req.HoraInicio,
		HoraFin:    req.HoraFin,
	}
	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	// Seed an empty attendance row for the block's calendar date so the
	// clock-in terminal finds it. Existing rows are left alone.
	fechaDia := soloFecha(h.FechaDia())
	if _, err := s.asistenciaRepo.FindPorEmpleadoYFecha(ctx, empleadoID, fechaDia); errors.Is(err, gorm.ErrRecordNotFound) {
		placeholder := &model.Asistencia{EmpleadoID: empleadoID, Fecha: fechaDia}
		if err := s.asistenciaRepo.Create(ctx, placeholder); err != nil {
			return nil, err
		}
	}

	// Re-read so the response carries the Empleado preload
	return s.Obtener(ctx, h.ID)
}

func (s *horarioService) Obtener(ctx context.Context, id uuid.UUID) (*dto.HorarioResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.mapHorario(ctx, h)
}

func (s *horarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarHorarioRequest) (*dto.HorarioResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HoraInicio != nil {
		if _, err := model.ParseHoraDia(*req.HoraInicio); err != nil {
			return nil, err
		}
		h.HoraInicio = *req.HoraInicio
	}
	if req.HoraFin != nil {
		if _, err := model.ParseHoraDia(*req.HoraFin); err != nil {
			return nil, err
		}
		h.HoraFin = *req.HoraFin
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	return s.mapHorario(ctx, h)
}

func (s *horarioService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *horarioService) TableroSemana(ctx context.Context, fecha time.Time) (*dto.TableroSemanaResponse, error) {
	lunes := soloFecha(model.LunesDeSemana(fecha))
	horarios, err := s.repo.ListSemana(ctx, lunes)
	if err != nil {
		return nil, err
	}

	dias := make(map[string][]dto.HorarioResponse, 7)
	for d := 0; d < 7; d++ {
		dias[strconv.Itoa(d)] = []dto.HorarioResponse{}
	}
	for i := range horarios {
		resp, err := s.mapHorario(ctx, &horarios[i])
		if err != nil {
			return nil, err
		}
		key := strconv.Itoa(horarios[i].DiaSemana)
		dias[key] = append(dias[key], *resp)
	}

	return &dto.TableroSemanaResponse{
		Lunes: lunes.Format("2006-01-02"),
		Dias:  dias,
	}, nil
}
