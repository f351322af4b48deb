package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Insumo is a stock-keeping ingredient. Cantidad is held in Unidad and may
// go negative after a sale — the business accepts overdraft instead of
// blocking the register.
type Insumo struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"uniqueIndex;not null"`
	Cantidad    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CantidadMin decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Unidad      Unidad          `gorm:"type:varchar(10);not null"`
	// CostoPorUnidad is the cost of one Unidad of this insumo
	CostoPorUnidad decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo         bool            `gorm:"not null;default:true"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (Insumo) TableName() string { return "insumos" }

// CostoTotal returns the value of the on-hand stock.
func (i *Insumo) CostoTotal() decimal.Decimal {
	return i.Cantidad.Mul(i.CostoPorUnidad)
}

// EstaBajoStock reports whether on-hand quantity is at or below the minimum.
func (i *Insumo) EstaBajoStock() bool {
	return i.Cantidad.LessThanOrEqual(i.CantidadMin)
}
