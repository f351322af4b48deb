package repository

import (
	"context"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InsumoRepository defines the data access contract for ingredients.
// Services depend on this interface, not on the concrete GORM implementation,
// enabling clean unit testing via stubs.
type InsumoRepository interface {
	Create(ctx context.Context, i *model.Insumo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Insumo, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error)
	ListBajoStock(ctx context.Context) ([]model.Insumo, error)
	Update(ctx context.Context, i *model.Insumo) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// Delete removes the row permanently. Callers must check references first
	// (CountRecetas) — the insumo is PROTECTed while any recipe line uses it.
	Delete(ctx context.Context, id uuid.UUID) error
	CountRecetas(ctx context.Context, insumoID uuid.UUID) (int64, error)

	// Used inside the finalize transaction — callers must pass the tx instance
	FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Insumo, error)
	UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type insumoRepo struct{ db *gorm.DB }

func NewInsumoRepository(db *gorm.DB) InsumoRepository { return &insumoRepo{db: db} }

func (r *insumoRepo) Create(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *insumoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).First(&i, "id = ?", id).Error
	return &i, err
}

func (r *insumoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Insumo, error) {
	var i model.Insumo
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&i).Error
	return &i, err
}

func (r *insumoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Insumo, error) {
	var insumos []model.Insumo
	q := r.db.WithContext(ctx).Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) ListBajoStock(ctx context.Context) ([]model.Insumo, error) {
	var insumos []model.Insumo
	err := r.db.WithContext(ctx).
		Where("activo = true AND cantidad <= cantidad_min").
		Order("nombre ASC").
		Find(&insumos).Error
	return insumos, err
}

func (r *insumoRepo) Update(ctx context.Context, i *model.Insumo) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *insumoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *insumoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Insumo{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *insumoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Insumo{}, "id = ?", id).Error
}

func (r *insumoRepo) CountRecetas(ctx context.Context, insumoID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.ProductoReceta{}).
		Where("insumo_id = ?", insumoID).Count(&n).Error
	return n, err
}

func (r *insumoRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Insumo, error) {
	var i model.Insumo
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.First(&i, "id = ?", id).Error
	return &i, err
}

func (r *insumoRepo) UpdateCantidadTx(tx *gorm.DB, id uuid.UUID, cantidad decimal.Decimal) error {
	return tx.Model(&model.Insumo{}).Where("id = ?", id).Update("cantidad", cantidad).Error
}

func (r *insumoRepo) DB() *gorm.DB { return r.db }
