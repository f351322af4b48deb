package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Asistencia is the attendance record of one employee on one calendar date.
// Rows are created by the clock-in action or as an empty placeholder when a
// shift is scheduled, and mutated in place by the matching clock-out.
// Unique per (empleado, fecha).
type Asistencia struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID  uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_empleado_fecha;not null"`
	Fecha       time.Time `gorm:"type:date;uniqueIndex:idx_empleado_fecha;not null"`
	HoraEntrada *string   `gorm:"type:time"`
	HoraSalida  *string   `gorm:"type:time"`
	Notas       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Empleado *Empleado `gorm:"foreignKey:EmpleadoID"`
}

func (Asistencia) TableName() string { return "asistencias" }

// TieneRegistro reports whether either clock mark is present.
func (a *Asistencia) TieneRegistro() bool {
	return a.HoraEntrada != nil || a.HoraSalida != nil
}

// HorasTrabajadas returns the worked duration in decimal hours, applying the
// midnight-crossing rule. Records missing either mark contribute 0.
func (a *Asistencia) HorasTrabajadas() (decimal.Decimal, error) {
	if a.HoraEntrada == nil || a.HoraSalida == nil {
		return decimal.Zero, nil
	}
	return DiferenciaHoras(*a.HoraEntrada, *a.HoraSalida)
}
