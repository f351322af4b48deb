package repository

import (
	"context"
	"time"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EmpleadoRepository defines the data access contract for staff records.
type EmpleadoRepository interface {
	Create(ctx context.Context, e *model.Empleado) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error)
	FindByCorreo(ctx context.Context, correo string) (*model.Empleado, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Empleado, error)
	Update(ctx context.Context, e *model.Empleado) error
	// Desactivar flags the employee inactive and records the date.
	Desactivar(ctx context.Context, id uuid.UUID, fecha time.Time) error
	Reactivar(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type empleadoRepo struct{ db *gorm.DB }

func NewEmpleadoRepository(db *gorm.DB) EmpleadoRepository { return &empleadoRepo{db: db} }

func (r *empleadoRepo) Create(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *empleadoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).First(&e, "id = ?", id).Error
	return &e, err
}

func (r *empleadoRepo) FindByCorreo(ctx context.Context, correo string) (*model.Empleado, error) {
	var e model.Empleado
	err := r.db.WithContext(ctx).Where("correo = ? AND activo = true", correo).First(&e).Error
	return &e, err
}

func (r *empleadoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Empleado, error) {
	var empleados []model.Empleado
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&empleados).Error
	return empleados, err
}

func (r *empleadoRepo) Update(ctx context.Context, e *model.Empleado) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *empleadoRepo) Desactivar(ctx context.Context, id uuid.UUID, fecha time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"activo":              false,
			"fecha_desactivacion": fecha,
		}).Error
}

func (r *empleadoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Empleado{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"activo":              true,
			"fecha_desactivacion": nil,
		}).Error
}

func (r *empleadoRepo) DB() *gorm.DB { return r.db }
