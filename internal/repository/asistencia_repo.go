package repository

import (
	"context"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AsistenciaRepository interface {
	Create(ctx context.Context, a *model.Asistencia) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Asistencia, error)
	FindPorEmpleadoYFecha(ctx context.Context, empleadoID uuid.UUID, fecha time.Time) (*model.Asistencia, error)
	// ListConRegistro returns attendance rows in the range that carry at
	// least one clock mark. Placeholder rows without marks are skipped by
	// the hours aggregator.
	ListConRegistro(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]model.Asistencia, error)
	ListPorRango(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]model.Asistencia, error)
	Update(ctx context.Context, a *model.Asistencia) error
	Delete(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type asistenciaRepo struct{ db *gorm.DB }

func NewAsistenciaRepository(db *gorm.DB) AsistenciaRepository { return &asistenciaRepo{db: db} }

func (r *asistenciaRepo) Create(ctx context.Context, a *model.Asistencia) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *asistenciaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Asistencia, error) {
	var a model.Asistencia
	err := r.db.WithContext(ctx).First(&a, "id = ?", id).Error
	return &a, err
}

func (r *asistenciaRepo) FindPorEmpleadoYFecha(ctx context.Context, empleadoID uuid.UUID, fecha time.Time) (*model.Asistencia, error) {
	var a model.Asistencia
	err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha = ?", empleadoID, fecha).
		First(&a).Error
	return &a, err
}

func (r *asistenciaRepo) ListConRegistro(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]model.Asistencia, error) {
	var asistencias []model.Asistencia
	err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha BETWEEN ? AND ?", empleadoID, desde, hasta).
		Where("hora_entrada IS NOT NULL OR hora_salida IS NOT NULL").
		Order("fecha ASC").
		Find(&asistencias).Error
	return asistencias, err
}

func (r *asistenciaRepo) ListPorRango(ctx context.Context, empleadoID uuid.UUID, desde, hasta time.Time) ([]model.Asistencia, error) {
	var asistencias []model.Asistencia
	err := r.db.WithContext(ctx).
		Where("empleado_id = ? AND fecha BETWEEN ? AND ?", empleadoID, desde, hasta).
		Order("fecha ASC").
		Find(&asistencias).Error
	return asistencias, err
}

func (r *asistenciaRepo) Update(ctx context.Context, a *model.Asistencia) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *asistenciaRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Asistencia{}, "id = ?", id).Error
}

func (r *asistenciaRepo) DB() *gorm.DB { return r.db }
