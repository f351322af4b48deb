package repository

import (
	"context"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductoRepository defines the data access contract for products and their
// recipe lines.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	// FindByID preloads the recipe with its insumos so costing works directly
	FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error)
	FindByNombre(ctx context.Context, nombre string) (*model.Producto, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// Delete removes the product permanently. Sale items keep their price
	// snapshot and get their product reference nulled; recipe lines go with
	// the product. Runs in one transaction.
	Delete(ctx context.Context, id uuid.UUID) error

	// Recipe lines
	CreateReceta(ctx context.Context, pr *model.ProductoReceta) error
	FindRecetaByID(ctx context.Context, id uuid.UUID) (*model.ProductoReceta, error)
	FindRecetaPorProductoInsumo(ctx context.Context, productoID, insumoID uuid.UUID) (*model.ProductoReceta, error)
	UpdateReceta(ctx context.Context, pr *model.ProductoReceta) error
	DeleteReceta(ctx context.Context, id uuid.UUID) error

	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("RecetaItems", func(db *gorm.DB) *gorm.DB { return db.Order("insumo_id ASC") }).
		Preload("RecetaItems.Insumo").
		First(&p, "id = ?", id).Error
	return &p, err
}

func (r *productoRepo) FindByNombre(ctx context.Context, nombre string) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).Where("nombre = ?", nombre).First(&p).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Producto, error) {
	var productos []model.Producto
	q := r.db.WithContext(ctx).
		Preload("RecetaItems.Insumo").
		Order("nombre ASC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Omit("RecetaItems").Save(p).Error
}

func (r *productoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *productoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Producto{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	// No implicit cascades: the SET NULL on venta_items and the removal of
	// recipe lines are explicit application rules.
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.VentaItem{}).
			Where("producto_id = ?", id).
			Update("producto_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.ProductoReceta{}, "producto_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Producto{}, "id = ?", id).Error
	})
}

func (r *productoRepo) CreateReceta(ctx context.Context, pr *model.ProductoReceta) error {
	return r.db.WithContext(ctx).Create(pr).Error
}

func (r *productoRepo) FindRecetaByID(ctx context.Context, id uuid.UUID) (*model.ProductoReceta, error) {
	var pr model.ProductoReceta
	err := r.db.WithContext(ctx).Preload("Insumo").First(&pr, "id = ?", id).Error
	return &pr, err
}

func (r *productoRepo) FindRecetaPorProductoInsumo(ctx context.Context, productoID, insumoID uuid.UUID) (*model.ProductoReceta, error) {
	var pr model.ProductoReceta
	err := r.db.WithContext(ctx).
		Where("producto_id = ? AND insumo_id = ?", productoID, insumoID).
		First(&pr).Error
	return &pr, err
}

func (r *productoRepo) UpdateReceta(ctx context.Context, pr *model.ProductoReceta) error {
	return r.db.WithContext(ctx).Save(pr).Error
}

func (r *productoRepo) DeleteReceta(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.ProductoReceta{}, "id = ?", id).Error
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
