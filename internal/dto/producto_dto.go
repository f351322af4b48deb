package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,min=2,max=120"`
	Descripcion *string         `json:"descripcion"`
	PrecioVenta decimal.Decimal `json:"precio_venta" validate:"min=0"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
	Activo      *bool            `json:"activo"`
}

type RecetaItemRequest struct {
	InsumoID string          `json:"insumo_id" validate:"required,uuid"`
	Cantidad decimal.Decimal `json:"cantidad"  validate:"required"`
	Unidad   string          `json:"unidad"    validate:"required,oneof=kg g l ml unidad docena"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type RecetaItemResponse struct {
	ID         string          `json:"id"`
	InsumoID   string          `json:"insumo_id"`
	Insumo     string          `json:"insumo"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Unidad     string          `json:"unidad"`
	CostoLinea decimal.Decimal `json:"costo_linea"`
}

type ProductoResponse struct {
	ID          string               `json:"id"`
	Nombre      string               `json:"nombre"`
	Descripcion *string              `json:"descripcion"`
	PrecioVenta decimal.Decimal      `json:"precio_venta"`
	Activo      bool                 `json:"activo"`
	Receta      []RecetaItemResponse `json:"receta"`
}

// ProductoCostosResponse augments the product with its derived figures.
// Served by GET /v1/productos/:id/costos (redis-cached).
type ProductoCostosResponse struct {
	ProductoResponse
	CostoTotal       decimal.Decimal `json:"costo_total"`
	MargenGanancia   decimal.Decimal `json:"margen_ganancia"`
	GananciaUnitaria decimal.Decimal `json:"ganancia_unitaria"`
}
