package unit

import "github.com/shopspring/decimal"

// Unit es una unidad de medida del catálogo fijo de la finca.
// El catálogo no cambia en runtime: la categoría y el factor de conversión
// son funciones puras y totales sobre este conjunto.
type Unit string

const (
	Bulto50Kg Unit = "BULTO_50KG" // bulto de 50 kg (insumos a granel)
	Kilo      Unit = "KILO"
	Gramo     Unit = "GRAMO"
	Litro     Unit = "LITRO"
	Mililitro Unit = "MILILITRO"
	Unidad    Unit = "UNIDAD" // artículos discretos (herramientas, bolsas, etc.)
)

// Category es la categoría base de una unidad.
type Category string

const (
	Masa    Category = "MASA"    // unidad base: gramo
	Volumen Category = "VOLUMEN" // unidad base: mililitro
	Conteo  Category = "CONTEO"  // unidad base: la propia unidad
)

// factors lleva cada unidad a la unidad canónica de su categoría.
var factors = map[Unit]decimal.Decimal{
	Bulto50Kg: decimal.NewFromInt(50000),
	Kilo:      decimal.NewFromInt(1000),
	Gramo:     decimal.NewFromInt(1),
	Litro:     decimal.NewFromInt(1000),
	Mililitro: decimal.NewFromInt(1),
	Unidad:    decimal.NewFromInt(1),
}

var categories = map[Unit]Category{
	Bulto50Kg: Masa,
	Kilo:      Masa,
	Gramo:     Masa,
	Litro:     Volumen,
	Mililitro: Volumen,
	Unidad:    Conteo,
}

// Valid indica si la unidad pertenece al catálogo.
func (u Unit) Valid() bool {
	_, ok := factors[u]
	return ok
}

// BaseCategory devuelve la categoría base de la unidad.
// Para unidades fuera del catálogo devuelve Conteo; validar antes con Valid.
func (u Unit) BaseCategory() Category {
	if c, ok := categories[u]; ok {
		return c
	}
	return Conteo
}

// Factor devuelve el factor de conversión a la unidad base de la categoría.
func (u Unit) Factor() decimal.Decimal {
	if f, ok := factors[u]; ok {
		return f
	}
	return decimal.NewFromInt(1)
}

// ToBase convierte una cantidad expresada en u a unidades base
// (gramos, mililitros o unidades según la categoría).
func ToBase(qty decimal.Decimal, u Unit) decimal.Decimal {
	return qty.Mul(u.Factor())
}

// All devuelve el catálogo completo, útil para validación y UI.
func All() []Unit {
	return []Unit{Bulto50Kg, Kilo, Gramo, Litro, Mililitro, Unidad}
}
