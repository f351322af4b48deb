package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearEmpleadoRequest struct {
	Nombre            string          `json:"nombre"             validate:"required,min=2,max=120"`
	Correo            string          `json:"correo"             validate:"required,email"`
	Password          string          `json:"password"           validate:"required,min=8"`
	Rol               string          `json:"rol"                validate:"required,oneof=barista mesero gerente cocinero otro"`
	PagoPorHora       decimal.Decimal `json:"pago_por_hora"      validate:"min=0"`
	FechaContratacion string          `json:"fecha_contratacion" validate:"omitempty,datetime=2006-01-02"`
}

type ActualizarEmpleadoRequest struct {
	Nombre      *string          `json:"nombre"        validate:"omitempty,min=2,max=120"`
	Correo      *string          `json:"correo"        validate:"omitempty,email"`
	Password    *string          `json:"password"      validate:"omitempty,min=8"`
	Rol         *string          `json:"rol"           validate:"omitempty,oneof=barista mesero gerente cocinero otro"`
	PagoPorHora *decimal.Decimal `json:"pago_por_hora"`
}

// ResumenHorasFilter is bound from query string of the hours/pay report.
// Hasta may be omitted for a one-day range; out-of-order dates are swapped
// by the service.
type ResumenHorasFilter struct {
	Desde string `form:"desde"`
	Hasta string `form:"hasta"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmpleadoResponse struct {
	ID                 string          `json:"id"`
	Nombre             string          `json:"nombre"`
	Correo             string          `json:"correo"`
	Rol                string          `json:"rol"`
	PagoPorHora        decimal.Decimal `json:"pago_por_hora"`
	FechaContratacion  string          `json:"fecha_contratacion"`
	FechaDesactivacion *string         `json:"fecha_desactivacion"`
	Activo             bool            `json:"activo"`
}

type ResumenHorasResponse struct {
	EmpleadoID      string          `json:"empleado_id"`
	Desde           string          `json:"desde"`
	Hasta           string          `json:"hasta"`
	HorasAsignadas  decimal.Decimal `json:"horas_asignadas"`
	HorasTrabajadas decimal.Decimal `json:"horas_trabajadas"`
	PagoFinal       decimal.Decimal `json:"pago_final"`
}
