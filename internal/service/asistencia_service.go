package service

import (
	"context"
	"errors"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"
	"github.com/iangusi/cafeteria-admin/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrCredencialesInvalidas covers both unknown mail and wrong password at the
// clock-in terminal. The response never says which.
var ErrCredencialesInvalidas = errors.New("credenciales inválidas")

// Clock-mark conflicts. Each mark is recorded at most once per day and a
// salida needs an entrada on record first.
var (
	ErrEntradaYaRegistrada = errors.New("ya existe una entrada registrada para hoy")
	ErrSalidaYaRegistrada  = errors.New("la salida ya fue registrada para hoy")
	ErrSalidaSinRegistro   = errors.New("no hay registro de entrada para hoy; no se puede registrar salida")
	ErrSalidaSinEntrada    = errors.New("no existe hora de entrada; no se puede registrar salida")
)

type AsistenciaService interface {
	// Marcar records the requested clock mark (entrada or salida) for the
	// authenticated employee on today's attendance row.
	Marcar(ctx context.Context, req dto.MarcarAsistenciaRequest) (*dto.MarcarAsistenciaResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.AsistenciaResponse, error)
	ListarPorRango(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]dto.AsistenciaResponse, error)
	// Actualizar is the manual correction path for managers.
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAsistenciaRequest) (*dto.AsistenciaResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type asistenciaService struct {
	repo         repository.AsistenciaRepository
	empleadoRepo repository.EmpleadoRepository
	reloj        Reloj
}

func NewAsistenciaService(
	repo repository.AsistenciaRepository,
	empleadoRepo repository.EmpleadoRepository,
	reloj Reloj,
) AsistenciaService {
	return &asistenciaService{repo: repo, empleadoRepo: empleadoRepo, reloj: reloj}
}

func mapAsistencia(a *model.Asistencia) (*dto.AsistenciaResponse, error) {
	horas, err := a.HorasTrabajadas()
	if err != nil {
		return nil, err
	}
	notas := ""
	if a.Notas != nil {
		notas = *a.Notas
	}
	return &dto.AsistenciaResponse{
		ID:          a.ID.String(),
		EmpleadoID:  a.EmpleadoID.String(),
		Fecha:       a.Fecha.Format("2006-01-02"),
		HoraEntrada: a.HoraEntrada,
		HoraSalida:  a.HoraSalida,
		Notas:       notas,
		Horas:       horas.Round(2).StringFixed(2),
	}, nil
}

func (s *asistenciaService) Marcar(ctx context.Context, req dto.MarcarAsistenciaRequest) (*dto.MarcarAsistenciaResponse, error) {
	empleado, err := s.empleadoRepo.FindByCorreo(ctx, req.Correo)
	if err != nil {
		return nil, ErrCredencialesInvalidas
	}
	if !empleado.CheckPassword(req.Password) {
		return nil, ErrCredencialesInvalidas
	}

	ahora := s.reloj.Ahora()
	hoy := soloFecha(ahora)
	hora := ahora.Format("15:04:05")

	a, err := s.repo.FindPorEmpleadoYFecha(ctx, empleado.ID, hoy)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		a = nil
	}

	if req.Tipo == "entrada" {
		if a == nil {
			a = &model.Asistencia{
				EmpleadoID:  empleado.ID,
				Fecha:       hoy,
				HoraEntrada: &hora,
			}
			agregarNota(a, req.Notas)
			if err := s.repo.Create(ctx, a); err != nil {
				return nil, err
			}
			return s.respuestaMarca("entrada", a)
		}
		if a.HoraEntrada != nil {
			return nil, ErrEntradaYaRegistrada
		}
		a.HoraEntrada = &hora
		agregarNota(a, req.Notas)
		if err := s.repo.Update(ctx, a); err != nil {
			return nil, err
		}
		return s.respuestaMarca("entrada", a)
	}

	// salida
	if a == nil {
		return nil, ErrSalidaSinRegistro
	}
	if a.HoraSalida != nil {
		return nil, ErrSalidaYaRegistrada
	}
	if a.HoraEntrada == nil {
		return nil, ErrSalidaSinEntrada
	}
	a.HoraSalida = &hora
	agregarNota(a, req.Notas)
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return s.respuestaMarca("salida", a)
}

// agregarNota appends a terminal note to the day's record, keeping earlier
// notes.
func agregarNota(a *model.Asistencia, nota string) {
	if nota == "" {
		return
	}
	if a.Notas == nil || *a.Notas == "" {
		a.Notas = &nota
		return
	}
	combinada := *a.Notas + "\n" + nota
	a.Notas = &combinada
}

func (s *asistenciaService) respuestaMarca(tipo string, a *model.Asistencia) (*dto.MarcarAsistenciaResponse, error) {
	resp, err := mapAsistencia(a)
	if err != nil {
		return nil, err
	}
	return &dto.MarcarAsistenciaResponse{Tipo: tipo, Asistencia: *resp}, nil
}

func (s *asistenciaService) Obtener(ctx context.Context, id uuid.UUID) (*dto.AsistenciaResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return mapAsistencia(a)
}

func (s *asistenciaService) ListarPorRango(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]dto.AsistenciaResponse, error) {
	desde, hasta = normalizarRango(desde, hasta)
	list, err := s.repo.ListPorRango(ctx, empleadoID, desde, hasta)
	if err != nil {
		return nil, err
	}
	result := make([]dto.AsistenciaResponse, 0, len(list))
	for i := range list {
		resp, err := mapAsistencia(&list[i])
		if err != nil {
			return nil, err
		}
		result = append(result, *resp)
	}
	return result, nil
}

func (s *asistenciaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAsistenciaRequest) (*dto.AsistenciaResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.HoraEntrada != nil {
		if *req.HoraEntrada == "" {
			a.HoraEntrada = nil
		} else {
			if _, err := model.ParseHoraDia(*req.HoraEntrada); err != nil {
				return nil, err
			}
			a.HoraEntrada = req.HoraEntrada
		}
	}
	if req.HoraSalida != nil {
		if *req.HoraSalida == "" {
			a.HoraSalida = nil
		} else {
			if _, err := model.ParseHoraDia(*req.HoraSalida); err != nil {
				return nil, err
			}
			a.HoraSalida = req.HoraSalida
		}
	}
	if req.Notas != nil {
		a.Notas = req.Notas
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return mapAsistencia(a)
}

func (s *asistenciaService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
