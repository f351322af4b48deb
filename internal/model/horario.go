package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Horario is one scheduled shift block. Fecha always stores the Monday that
// anchors the week; the real calendar date of the block is Fecha + DiaSemana
// days (0 = lunes .. 6 = domingo). Unique per (empleado, fecha, dia_semana).
type Horario struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EmpleadoID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_empleado_semana_dia;not null"`
	// Fecha is the anchor Monday of the week
	Fecha      time.Time `gorm:"type:date;uniqueIndex:idx_empleado_semana_dia;not null"`
	DiaSemana  int       `gorm:"uniqueIndex:idx_empleado_semana_dia;not null"`
	HoraInicio string    `gorm:"type:time;not null"`
	HoraFin    string    `gorm:"type:time;not null"`

	Empleado *Empleado `gorm:"foreignKey:EmpleadoID"`
}

func (Horario) TableName() string { return "horarios" }

// FechaDia returns the real calendar date of the block.
func (h *Horario) FechaDia() time.Time {
	return h.Fecha.AddDate(0, 0, h.DiaSemana)
}

// DuracionHoras returns the scheduled length of the block in hours.
func (h *Horario) DuracionHoras() (decimal.Decimal, error) {
	return DiferenciaHoras(h.HoraInicio, h.HoraFin)
}

// LunesDeSemana returns the Monday of the week containing fecha.
func LunesDeSemana(fecha time.Time) time.Time {
	// time.Weekday: Sunday = 0; shift so Monday = 0
	offset := (int(fecha.Weekday()) + 6) % 7
	return fecha.AddDate(0, 0, -offset)
}

// EsLunes reports whether fecha falls on a Monday.
func EsLunes(fecha time.Time) bool {
	return fecha.Weekday() == time.Monday
}

// ParseHoraDia parses a time-of-day string as stored by the TIME column
// ("15:04:05", seconds optional).
func ParseHoraDia(s string) (time.Time, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("hora inválida: %q", s)
}

// DiferenciaHoras computes fin - inicio as decimal hours. When fin <= inicio
// the block is assumed to cross midnight and a full day is added before
// subtracting. The division runs over whole seconds so the result is exact.
func DiferenciaHoras(inicio, fin string) (decimal.Decimal, error) {
	if inicio == "" || fin == "" {
		return decimal.Zero, nil
	}
	hi, err := ParseHoraDia(inicio)
	if err != nil {
		return decimal.Zero, err
	}
	hf, err := ParseHoraDia(fin)
	if err != nil {
		return decimal.Zero, err
	}
	if !hf.After(hi) {
		hf = hf.AddDate(0, 0, 1)
	}
	segundos := int64(hf.Sub(hi).Seconds())
	return decimal.NewFromInt(segundos).Div(decimal.NewFromInt(3600)), nil
}
