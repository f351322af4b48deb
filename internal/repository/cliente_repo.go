package repository

import (
	"context"

	"github.com/iangusi/cafeteria-admin/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ClienteRepository defines the data access contract for loyalty customers.
type ClienteRepository interface {
	Create(ctx context.Context, c *model.Cliente) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error)
	FindByCorreo(ctx context.Context, correo string) (*model.Cliente, error)
	List(ctx context.Context, incluirInactivos bool) ([]model.Cliente, error)
	Update(ctx context.Context, c *model.Cliente) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// Delete removes the customer permanently; sales keep their history with
	// a nulled customer reference (explicit SET NULL, no DB cascade).
	Delete(ctx context.Context, id uuid.UUID) error

	// Used inside the finalize transaction
	FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Cliente, error)
	UpdatePuntosTx(tx *gorm.DB, id uuid.UUID, puntos int) error

	DB() *gorm.DB
}

type clienteRepo struct{ db *gorm.DB }

func NewClienteRepository(db *gorm.DB) ClienteRepository { return &clienteRepo{db: db} }

func (r *clienteRepo) Create(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *clienteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) FindByCorreo(ctx context.Context, correo string) (*model.Cliente, error) {
	var c model.Cliente
	err := r.db.WithContext(ctx).Where("correo = ?", correo).First(&c).Error
	return &c, err
}

func (r *clienteRepo) List(ctx context.Context, incluirInactivos bool) ([]model.Cliente, error) {
	var clientes []model.Cliente
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if !incluirInactivos {
		q = q.Where("activo = true")
	}
	err := q.Find(&clientes).Error
	return clientes, err
}

func (r *clienteRepo) Update(ctx context.Context, c *model.Cliente) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *clienteRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *clienteRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Cliente{}).Where("id = ?", id).Update("activo", true).Error
}

func (r *clienteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Venta{}).
			Where("cliente_id = ?", id).
			Update("cliente_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Cliente{}, "id = ?", id).Error
	})
}

func (r *clienteRepo) FindByIDTx(tx *gorm.DB, id uuid.UUID, forUpdate bool) (*model.Cliente, error) {
	var c model.Cliente
	q := tx
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := q.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *clienteRepo) UpdatePuntosTx(tx *gorm.DB, id uuid.UUID, puntos int) error {
	return tx.Model(&model.Cliente{}).Where("id = ?", id).Update("puntos", puntos).Error
}

func (r *clienteRepo) DB() *gorm.DB { return r.db }
