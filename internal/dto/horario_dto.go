package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearHorarioRequest struct {
	EmpleadoID string `json:"empleado_id" validate:"required,uuid"`
	// Fecha must be a Monday: it anchors the week the block belongs to.
	Fecha      string `json:"fecha"       validate:"required,datetime=2006-01-02"`
	DiaSemana  int    `json:"dia_semana"  validate:"min=0,max=6"`
	HoraInicio string `json:"hora_inicio" validate:"required"`
	HoraFin    string `json:"hora_fin"    validate:"required"`
}

type ActualizarHorarioRequest struct {
	HoraInicio *string `json:"hora_inicio"`
	HoraFin    *string `json:"hora_fin"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type HorarioResponse struct {
	ID         string `json:"id"`
	EmpleadoID string `json:"empleado_id"`
	Empleado   string `json:"empleado,omitempty"`
	Fecha      string `json:"fecha"`
	DiaSemana  int    `json:"dia_semana"`
	FechaDia   string `json:"fecha_dia"`
	HoraInicio string `json:"hora_inicio"`
	HoraFin    string `json:"hora_fin"`
	Estado     string `json:"estado"` // futuro | ausente | parcial | completo
}

// TableroSemanaResponse groups every block of one week by weekday, for the
// weekly board view.
type TableroSemanaResponse struct {
	Lunes   string                      `json:"lunes"`
	Dias    map[string][]HorarioResponse `json:"dias"` // keyed "0".."6"
}
