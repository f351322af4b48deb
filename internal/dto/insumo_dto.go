package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearInsumoRequest struct {
	Nombre         string          `json:"nombre"           validate:"required,min=2,max=120"`
	Cantidad       decimal.Decimal `json:"cantidad"         validate:"min=0"`
	CantidadMinima decimal.Decimal `json:"cantidad_minima"  validate:"min=0"`
	Unidad         string          `json:"unidad"           validate:"required,oneof=kg g l ml unidad"`
	CostoPorUnidad decimal.Decimal `json:"costo_por_unidad" validate:"min=0"`
}

type ActualizarInsumoRequest struct {
	Nombre         *string          `json:"nombre"           validate:"omitempty,min=2,max=120"`
	Cantidad       *decimal.Decimal `json:"cantidad"`
	CantidadMinima *decimal.Decimal `json:"cantidad_minima"`
	Unidad         *string          `json:"unidad"           validate:"omitempty,oneof=kg g l ml unidad"`
	CostoPorUnidad *decimal.Decimal `json:"costo_por_unidad"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type InsumoResponse struct {
	ID             string          `json:"id"`
	Nombre         string          `json:"nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	CantidadMinima decimal.Decimal `json:"cantidad_minima"`
	Unidad         string          `json:"unidad"`
	CostoPorUnidad decimal.Decimal `json:"costo_por_unidad"`
	CostoTotal     decimal.Decimal `json:"costo_total"`
	BajoStock      bool            `json:"bajo_stock"`
	Activo         bool            `json:"activo"`
}
