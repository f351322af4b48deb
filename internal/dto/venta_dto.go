package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// VentaFilter is bound from query string of GET /v1/ventas.
type VentaFilter struct {
	Fecha  string `form:"fecha"`                // YYYY-MM-DD; empty = all dates
	Estado string `form:"estado,default=all"`   // pendiente | finalizada | all
	Page   int    `form:"page,default=1"   validate:"min=1"`
	Limit  int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearVentaRequest struct {
	Titulo    string  `json:"titulo"     validate:"required,min=1,max=120"`
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	Fecha     string  `json:"fecha"      validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarVentaRequest struct {
	Titulo    *string `json:"titulo"     validate:"omitempty,min=1,max=120"`
	ClienteID *string `json:"cliente_id" validate:"omitempty,uuid"`
	Fecha     *string `json:"fecha"      validate:"omitempty,datetime=2006-01-02"`
}

type ItemVentaRequest struct {
	ProductoID string `json:"producto_id" validate:"required,uuid"`
	Cantidad   int    `json:"cantidad"    validate:"required,min=1"`
}

type ActualizarItemRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ItemVentaResponse struct {
	ID       string          `json:"id"`
	Producto string          `json:"producto"`
	Cantidad int             `json:"cantidad"`
	Precio   decimal.Decimal `json:"precio"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID           string              `json:"id"`
	Titulo       string              `json:"titulo"`
	ClienteID    *string             `json:"cliente_id"`
	Cliente      *string             `json:"cliente"`
	Fecha        string              `json:"fecha"`
	Estado       string              `json:"estado"`
	Items        []ItemVentaResponse `json:"items"`
	PrecioTotal  decimal.Decimal     `json:"precio_total"`
	CostoTotal   decimal.Decimal     `json:"costo_total"`
	PuntosUsados int                 `json:"puntos_usados"`
	PrecioFinal  decimal.Decimal     `json:"precio_final"`
}
