package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Venta lifecycle: pendiente → finalizada (one-way). A pending sale may
// instead be cancelled, which deletes it together with its items.
// Estado: "pendiente" | "finalizada"
const (
	VentaPendiente  = "pendiente"
	VentaFinalizada = "finalizada"
)

// Venta is a sale order. Totals are caches recomputed from the items; they
// only become authoritative at finalization.
type Venta struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Titulo    string     `gorm:"not null"`
	ClienteID *uuid.UUID `gorm:"type:uuid;index"`
	Estado    string     `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// Cached totals — recomputed by CalcularTotales, frozen at finalization
	PrecioTotalCache decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CostoTotalCache  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PuntosUsados     int             `gorm:"not null;default:0"`
	Fecha            time.Time       `gorm:"type:date;not null"`
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Cliente *Cliente    `gorm:"foreignKey:ClienteID"`
	Items   []VentaItem `gorm:"foreignKey:VentaID"`
}

func (Venta) TableName() string { return "ventas" }

// VentaItem is one line of a sale. Precio is a snapshot of the product's
// sale price at the moment the line was added; the product reference may be
// nulled later without affecting the stored price.
type VentaItem struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VentaID    uuid.UUID  `gorm:"type:uuid;not null;index"`
	ProductoID *uuid.UUID `gorm:"type:uuid"`
	Precio     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	Cantidad   int             `gorm:"not null;default:1"`

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaItem) TableName() string { return "venta_items" }

// PuedeModificar reports whether the sale still accepts mutations.
func (v *Venta) PuedeModificar() bool {
	return v.Estado == VentaPendiente
}

// CostoItem computes the item cost as product recipe cost × cantidad,
// rounded to 2 decimals half-up. Items whose product was removed cost 0.
// Requires Producto.RecetaItems (with Insumo) preloaded.
func (it *VentaItem) CostoItem() (decimal.Decimal, error) {
	if it.Producto == nil {
		return decimal.Zero, nil
	}
	costo, err := it.Producto.CostoTotal()
	if err != nil {
		return decimal.Zero, err
	}
	return costo.Mul(decimal.NewFromInt(int64(it.Cantidad))).Round(2), nil
}

// CalcularTotales recomputes both cached totals from the items and writes
// them into the struct (not the store). Price and cost are each rounded to
// 2 decimals half-up at the sale level only.
func (v *Venta) CalcularTotales() (precio, costo decimal.Decimal, err error) {
	precio = decimal.Zero
	costo = decimal.Zero
	for i := range v.Items {
		it := &v.Items[i]
		precio = precio.Add(it.Precio.Mul(decimal.NewFromInt(int64(it.Cantidad))))
		costoItem, cerr := it.CostoItem()
		if cerr != nil {
			return decimal.Zero, decimal.Zero, cerr
		}
		costo = costo.Add(costoItem)
	}
	v.PrecioTotalCache = precio.Round(2)
	v.CostoTotalCache = costo.Round(2)
	return v.PrecioTotalCache, v.CostoTotalCache, nil
}

// PrecioFinal is the payable total after redeeming points, floored at zero.
func (v *Venta) PrecioFinal() decimal.Decimal {
	final := v.PrecioTotalCache.Sub(decimal.NewFromInt(int64(v.PuntosUsados))).Round(2)
	if final.IsNegative() {
		return decimal.Zero.Round(2)
	}
	return final
}

// PuntosARedimir returns the automatic redemption for the given balance:
// min(puntos disponibles, floor(precio total)), whole currency units.
func (v *Venta) PuntosARedimir(puntosDisponibles int) int {
	tope := int(v.PrecioTotalCache.Floor().IntPart())
	if puntosDisponibles < tope {
		return puntosDisponibles
	}
	return tope
}

// PuntosAGanar returns floor(precio final / 10) — the points awarded to the
// customer on finalization.
func (v *Venta) PuntosAGanar() int {
	return int(v.PrecioFinal().Div(decimal.NewFromInt(10)).Floor().IntPart())
}
