package unit_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jfarias/agrolibro-api/internal/domain/unit"
)

// ToBase es lineal y total sobre el catálogo: factores fijos y positivos.
func TestToBase_FactoresDelCatalogo(t *testing.T) {
	one := decimal.NewFromInt(1)

	assert.True(t, unit.ToBase(one, unit.Kilo).Equal(decimal.NewFromInt(1000)))
	assert.True(t, unit.ToBase(one, unit.Bulto50Kg).Equal(decimal.NewFromInt(50000)))
	assert.True(t, unit.ToBase(one, unit.Gramo).Equal(one))
	assert.True(t, unit.ToBase(one, unit.Litro).Equal(decimal.NewFromInt(1000)))
	assert.True(t, unit.ToBase(one, unit.Mililitro).Equal(one))
}

// Para artículos discretos la conversión es identidad: toBase(x, UNIDAD) = x.
func TestToBase_UnidadEsIdentidad(t *testing.T) {
	for _, x := range []int64{0, 1, 7, 350, 100000} {
		q := decimal.NewFromInt(x)
		assert.True(t, unit.ToBase(q, unit.Unidad).Equal(q), "x = %d", x)
	}
}

func TestToBase_Linealidad(t *testing.T) {
	// toBase(a+b, u) = toBase(a, u) + toBase(b, u)
	a := decimal.NewFromFloat(2.5)
	b := decimal.NewFromFloat(0.75)
	sum := unit.ToBase(a.Add(b), unit.Kilo)
	parts := unit.ToBase(a, unit.Kilo).Add(unit.ToBase(b, unit.Kilo))
	assert.True(t, sum.Equal(parts))
}

func TestBaseCategory_TotalSobreElCatalogo(t *testing.T) {
	expected := map[unit.Unit]unit.Category{
		unit.Bulto50Kg: unit.Masa,
		unit.Kilo:      unit.Masa,
		unit.Gramo:     unit.Masa,
		unit.Litro:     unit.Volumen,
		unit.Mililitro: unit.Volumen,
		unit.Unidad:    unit.Conteo,
	}
	for u, cat := range expected {
		assert.Equal(t, cat, u.BaseCategory(), "unidad %s", u)
		assert.True(t, u.Valid())
		assert.True(t, u.Factor().GreaterThan(decimal.Zero))
	}
}

func TestValid_RechazaUnidadDesconocida(t *testing.T) {
	assert.False(t, unit.Unit("ARROBA").Valid())
}
