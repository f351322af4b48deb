package repository

import (
	"context"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// HorarioRepository defines the data access contract for shift blocks.
// Fecha is always the anchor Monday of the week (see model.Horario).
type HorarioRepository interface {
	Create(ctx context.Context, h *model.Horario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Horario, error)
	// FindBloque locates a block by its natural key.
	FindBloque(ctx context.Context, empleadoID uuid.UUID, lunes time.Time, diaSemana int) (*model.Horario, error)
	// ListPorRangoLunes returns blocks whose anchor Monday falls within
	// [lunesInicio, lunesFin] — the Monday-aligned bracket query from the
	// hours aggregator.
	ListPorRangoLunes(ctx context.Context, empleadoID uuid.UUID, lunesInicio, lunesFin time.Time) ([]model.Horario, error)
	// ListSemana returns every employee's blocks for one week.
	ListSemana(ctx context.Context, lunes time.Time) ([]model.Horario, error)
	Update(ctx context.Context, h *model.Horario) error
	Delete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type horarioRepo struct{ db *gorm.DB }

func NewHorarioRepository(db *gorm.DB) HorarioRepository { return &horarioRepo{db: db} }

func (r *horarioRepo) Create(ctx context.Context, h *model.Horario) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *horarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Horario, error) {
	var h model.Horario
	err := r.db.WithContext(ctx).Preload("Empleado").First(&h, "id = ?", id).Error
	return &h, err
}

func (r *horarioRepo) FindBloque(ctx context.Context, empleadoID uuid.UUID, lunes time.Time, diaSemana int) (*model.Horario, error) {
	var h model.Horario
	err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha = ? AND dia_semana = ?", empleadoID, lunes, diaSemana).
		First(&h).Error
	return &h, err
}

func (r *horarioRepo) ListPorRangoLunes(ctx context.Context, empleadoID uuid.UUID, lunesInicio, lunesFin time.Time) ([]model.Horario, error) {
	var horarios []model.Horario
	err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha BETWEEN ? AND ?", empleadoID, lunesInicio, lunesFin).
		Order("fecha ASC, dia_semana ASC, hora_inicio ASC").
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) ListSemana(ctx context.Context, lunes time.Time) ([]model.Horario, error) {
	var horarios []model.Horario
	err := r.db.WithContext(ctx).
		Preload("Empleado").
		Where("fecha = ?", lunes).
		Order("dia_semana ASC, hora_inicio ASC").
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) Update(ctx context.Context, h *model.Horario) error {
	return r.db.WithContext(ctx).Omit("Empleado").Save(h).Error
}

func (r *horarioRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Horario{}, "id = ?", id).Error
}

func (r *horarioRepo) DB() *gorm.DB { return r.db }
