package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is a sellable menu item. Its cost is always derived from the
// current recipe — never cached — so ingredient price changes flow through
// immediately.
type Producto struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre      string          `gorm:"uniqueIndex;not null"`
	PrecioVenta decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Descripcion *string
	Activo      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	RecetaItems []ProductoReceta `gorm:"foreignKey:ProductoID"`
}

func (Producto) TableName() string { return "productos" }

// ProductoReceta is one ingredient line of a product's recipe.
// At most one line per (producto, insumo) pair.
type ProductoReceta struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ProductoID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_producto_insumo;not null"`
	InsumoID   uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_producto_insumo;not null"`
	Cantidad   decimal.Decimal `gorm:"type:decimal(10,3);not null"`
	Unidad     Unidad          `gorm:"type:varchar(10);not null;default:'unidad'"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
	Insumo   *Insumo   `gorm:"foreignKey:InsumoID"`
}

func (ProductoReceta) TableName() string { return "producto_recetas" }

// CantidadEquivalente converts the line quantity into the insumo's stock
// unit. Requires Insumo preloaded.
func (pr *ProductoReceta) CantidadEquivalente() (decimal.Decimal, error) {
	return Convertir(pr.Cantidad, pr.Unidad, pr.Insumo.Unidad)
}

// CostoLinea is the cost of this recipe line in the insumo's unit, rounded
// to 4 decimals half-up. Four decimals of intermediate precision keep
// per-line rounding drift below a cent.
func (pr *ProductoReceta) CostoLinea() (decimal.Decimal, error) {
	equiv, err := pr.CantidadEquivalente()
	if err != nil {
		return decimal.Zero, err
	}
	return equiv.Mul(pr.Insumo.CostoPorUnidad).Round(4), nil
}

// CostoTotal sums the line costs of the recipe. No additional rounding at
// this level — callers round at the money boundary. Requires RecetaItems
// (with Insumo) preloaded.
func (p *Producto) CostoTotal() (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range p.RecetaItems {
		costo, err := p.RecetaItems[i].CostoLinea()
		if err != nil {
			return decimal.Zero, err
		}
		total = total.Add(costo)
	}
	return total, nil
}

// MargenGanancia returns (precio - costo) / costo × 100 rounded to 2
// decimals. Zero-cost products report margin 0 rather than dividing by zero.
func (p *Producto) MargenGanancia() (decimal.Decimal, error) {
	costo, err := p.CostoTotal()
	if err != nil {
		return decimal.Zero, err
	}
	if costo.IsZero() {
		return decimal.Zero, nil
	}
	return p.PrecioVenta.Sub(costo).Div(costo).Mul(decimal.NewFromInt(100)).Round(2), nil
}

// GananciaUnitaria returns precio - costo rounded to 2 decimals.
func (p *Producto) GananciaUnitaria() (decimal.Decimal, error) {
	costo, err := p.CostoTotal()
	if err != nil {
		return decimal.Zero, err
	}
	return p.PrecioVenta.Sub(costo).Round(2), nil
}
