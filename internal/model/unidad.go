package model

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Unidad is a unit of measure for stock and recipes.
// Insumos use kg/g/l/ml/unidad; las recetas además admiten docena.
type Unidad string

const (
	UnidadKg     Unidad = "kg"
	UnidadG      Unidad = "g"
	UnidadL      Unidad = "l"
	UnidadMl     Unidad = "ml"
	UnidadPieza  Unidad = "unidad"
	UnidadDocena Unidad = "docena"
)

// ErrUnidadesIncompatibles is returned when conversion between unrelated
// magnitudes (e.g. masa ↔ volumen) is requested. The legacy system silently
// returned the input quantity for these pairs; here it is a hard error so
// that a mis-typed recipe line cannot poison costing or stock deduction.
var ErrUnidadesIncompatibles = errors.New("unidades incompatibles")

var (
	mil  = decimal.NewFromInt(1000)
	doce = decimal.NewFromInt(12)
)

// Convertir converts cantidad expressed in desde to the equivalent amount in
// hacia. Supported pairs: identity, kg↔g, l↔ml, docena↔unidad. All arithmetic
// is exact decimal — quantities and money never touch binary floats.
func Convertir(cantidad decimal.Decimal, desde, hacia Unidad) (decimal.Decimal, error) {
	if desde == hacia {
		return cantidad, nil
	}

	switch {
	case desde == UnidadKg && hacia == UnidadG:
		return cantidad.Mul(mil), nil
	case desde == UnidadG && hacia == UnidadKg:
		return cantidad.Div(mil), nil
	case desde == UnidadL && hacia == UnidadMl:
		return cantidad.Mul(mil), nil
	case desde == UnidadMl && hacia == UnidadL:
		return cantidad.Div(mil), nil
	case desde == UnidadDocena && hacia == UnidadPieza:
		return cantidad.Mul(doce), nil
	case desde == UnidadPieza && hacia == UnidadDocena:
		return cantidad.Div(doce), nil
	}

	return decimal.Zero, fmt.Errorf("%w: %s → %s", ErrUnidadesIncompatibles, desde, hacia)
}

// EsUnidadInsumo reports whether u is valid for an Insumo (docena excluded).
func EsUnidadInsumo(u Unidad) bool {
	switch u {
	case UnidadKg, UnidadG, UnidadL, UnidadMl, UnidadPieza:
		return true
	}
	return false
}

// EsUnidadReceta reports whether u is valid for a recipe line.
func EsUnidadReceta(u Unidad) bool {
	return EsUnidadInsumo(u) || u == UnidadDocena
}
