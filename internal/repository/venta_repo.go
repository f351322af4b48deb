package repository

import (
	"context"

	"github.com/iangusi/cafeteria-admin/internal/dto"
	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VentaRepository defines the data access contract for sales and their items.
type VentaRepository interface {
	Create(ctx context.Context, v *model.Venta) error
	// FindByID preloads items down to recipe insumos so totals and stock
	// deduction can be computed without further queries.
	FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error)
	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)
	Save(ctx context.Context, v *model.Venta) error

	// Items
	CreateItem(ctx context.Context, it *model.VentaItem) error
	FindItemByID(ctx context.Context, id uuid.UUID) (*model.VentaItem, error)
	UpdateItem(ctx context.Context, it *model.VentaItem) error
	DeleteItem(ctx context.Context, id uuid.UUID) error

	// Used inside the finalize/cancel transaction
	FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Venta, error)
	SaveTx(tx *gorm.DB, v *model.Venta) error
	// DeleteConItemsTx removes the sale and its items — the cascade is an
	// explicit application rule, not a DB constraint.
	DeleteConItemsTx(tx *gorm.DB, id uuid.UUID) error

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) DB() *gorm.DB { return r.db }

func (r *ventaRepo) Create(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Producto.RecetaItems.Insumo").
		Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Venta{})

	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Fecha != "" {
		q = q.Where("fecha = ?", filter.Fecha)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Items.Producto").Preload("Cliente").
		Order("fecha DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&ventas).Error

	return ventas, total, err
}

func (r *ventaRepo) Save(ctx context.Context, v *model.Venta) error {
	return r.db.WithContext(ctx).Omit("Items", "Cliente").Save(v).Error
}

func (r *ventaRepo) CreateItem(ctx context.Context, it *model.VentaItem) error {
	return r.db.WithContext(ctx).Create(it).Error
}

func (r *ventaRepo) FindItemByID(ctx context.Context, id uuid.UUID) (*model.VentaItem, error) {
	var it model.VentaItem
	err := r.db.WithContext(ctx).Preload("Producto").First(&it, "id = ?", id).Error
	return &it, err
}

func (r *ventaRepo) UpdateItem(ctx context.Context, it *model.VentaItem) error {
	return r.db.WithContext(ctx).Omit("Producto").Save(it).Error
}

func (r *ventaRepo) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.VentaItem{}, "id = ?", id).Error
}

func (r *ventaRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Venta, error) {
	var v model.Venta
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "ventas"}})
	}
	err := q.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Items.Producto.RecetaItems.Insumo").
		Preload("Cliente").
		First(&v, "id = ?", id).Error
	return &v, err
}

func (r *ventaRepo) SaveTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Omit("Items", "Cliente").Save(v).Error
}

func (r *ventaRepo) DeleteConItemsTx(tx *gorm.DB, id uuid.UUID) error {
	if err := tx.Delete(&model.VentaItem{}, "venta_id = ?", id).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Venta{}, "id = ?", id).Error
}
