package model

import (
	"time"

	"github.com/google/uuid"
)

// Cliente is a loyalty-program customer. Puntos is a whole-unit balance:
// 1 punto = 1 unidad de moneda al canjear. The schema allows any integer;
// business logic floors the balance at zero.
type Cliente struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre  string    `gorm:"not null"`
	Correo  *string   `gorm:"uniqueIndex"`
	Celular *string
	Puntos  int  `gorm:"not null;default:0"`
	Activo  bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Cliente) TableName() string { return "clientes" }
