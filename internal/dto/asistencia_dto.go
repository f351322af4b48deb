package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

// MarcarAsistenciaRequest is the clock-in/out payload. The employee identifies
// with their own credentials at the shared terminal and states which mark
// they are recording.
type MarcarAsistenciaRequest struct {
	Correo   string `json:"correo"   validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Tipo     string `json:"tipo"     validate:"required,oneof=entrada salida"`
	Notas    string `json:"notas"    validate:"omitempty,max=500"`
}

type ActualizarAsistenciaRequest struct {
	HoraEntrada *string `json:"hora_entrada"`
	HoraSalida  *string `json:"hora_salida"`
	Notas       *string `json:"notas"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AsistenciaResponse struct {
	ID          string  `json:"id"`
	EmpleadoID  string  `json:"empleado_id"`
	Fecha       string  `json:"fecha"`
	HoraEntrada *string `json:"hora_entrada"`
	HoraSalida  *string `json:"hora_salida"`
	Notas       string  `json:"notas,omitempty"`
	Horas       string  `json:"horas_trabajadas"`
}

// MarcarAsistenciaResponse tells the employee which mark was just recorded.
type MarcarAsistenciaResponse struct {
	Tipo       string             `json:"tipo"` // entrada | salida
	Asistencia AsistenciaResponse `json:"asistencia"`
}
