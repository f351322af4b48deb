package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

// Empleado stores staff with an hourly pay rate.
// Rol: "barista" | "mesero" | "gerente" | "cocinero" | "otro"
type Empleado struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre             string    `gorm:"index;not null"`
	Correo             *string   `gorm:"uniqueIndex"`
	Celular            *string
	Rol                string          `gorm:"type:varchar(20);not null"`
	PagoPorHora        decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	FechaContratacion  time.Time       `gorm:"type:date;not null"`
	Activo             bool            `gorm:"not null;default:true"`
	FechaDesactivacion *time.Time      `gorm:"type:date"`
	PasswordHash       string          `gorm:"not null;default:''"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (Empleado) TableName() string { return "empleados" }

// SetPassword hashes and stores the clock-in password. Does not persist.
func (e *Empleado) SetPassword(raw string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(raw), 12)
	if err != nil {
		return err
	}
	e.PasswordHash = string(hash)
	return nil
}

// CheckPassword verifies the clock-in password against the stored hash.
// Employees without a hash can never authenticate.
func (e *Empleado) CheckPassword(raw string) bool {
	if e.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(e.PasswordHash), []byte(raw)) == nil
}
