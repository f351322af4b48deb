package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearClienteRequest struct {
	Nombre  string  `json:"nombre"  validate:"required,min=2,max=120"`
	Correo  *string `json:"correo"  validate:"omitempty,email"`
	Celular *string `json:"celular" validate:"omitempty,max=30"`
}

type ActualizarClienteRequest struct {
	Nombre  *string `json:"nombre"  validate:"omitempty,min=2,max=120"`
	Correo  *string `json:"correo"  validate:"omitempty,email"`
	Celular *string `json:"celular" validate:"omitempty,max=30"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ClienteResponse struct {
	ID      string  `json:"id"`
	Nombre  string  `json:"nombre"`
	Correo  *string `json:"correo"`
	Celular *string `json:"celular"`
	Puntos  int     `json:"puntos"`
}
