package service

import "time"

// Reloj abstracts "now" so attendance state and clock-in marks are
// deterministic under test.
type Reloj interface {
	Ahora() time.Time
}

type relojSistema struct{}

func (relojSistema) Ahora() time.Time { return time.Now() }

func NewRelojSistema() Reloj { return relojSistema{} }

// RelojFijo always returns the same instant. Test helper.
type RelojFijo struct{ T time.Time }

func (r RelojFijo) Ahora() time.Time { return r.T }
