package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Clientes-api/internal/domain/contact"
)

// ──────────────────────────────────────────────────────────────────────────────
// PhoneLike — la regla que separa teléfonos de nombres y consecutivos.
//
// Un valor es telefónico si, quitando espacios/guiones/paréntesis/+/puntos,
// quedan solo dígitos (7..15) y además empieza como teléfono o tiene ≥ 10
// dígitos.
// ──────────────────────────────────────────────────────────────────────────────

func TestPhoneLike_FormatosTelefonicos(t *testing.T) {
	casos := []struct {
		nombre string
		valor  string
	}{
		{"guiones EEUU", "555-123-4567"},
		{"parentesis y espacios", "(301) 555 0101"},
		{"internacional con mas", "+57 310 555 1234"},
		{"puntos", "310.555.1234"},
		{"pegado 10 digitos", "3105551234"},
		{"celular colombiano con cero", "0315551234"},
		{"corto que empieza en digito", "5551234"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.True(t, contact.PhoneLike(c.valor), "%q debe clasificar como teléfono", c.valor)
		})
	}
}

func TestPhoneLike_NoTelefonicos(t *testing.T) {
	casos := []struct {
		nombre string
		valor  string
	}{
		{"vacio", ""},
		{"solo espacios", "   "},
		{"nombre propio", "Juan Pérez"},
		{"letras y digitos", "Casa 4217"},
		{"muy corto", "123456"},
		{"muy largo", "1234567890123456"},
		{"email", "juan@example.com"},
		{"consecutivo con letras", "INV-2024-001"},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			assert.False(t, contact.PhoneLike(c.valor), "%q no debe clasificar como teléfono", c.valor)
		})
	}
}

// Un valor de 7-9 dígitos que NO empieza como teléfono (por los separadores
// iniciales) solo pasa si tiene ≥ 10 dígitos depurados.
func TestPhoneLike_CortoSinPrefijoTelefonico(t *testing.T) {
	// "(555" arranca con paréntesis: no empieza con dígito/+, y depurado
	// tiene 7 dígitos (< 10) → no es teléfono.
	assert.False(t, contact.PhoneLike("(555) 1234"))
	// El mismo formato con 10 dígitos sí pasa por la regla de longitud.
	assert.True(t, contact.PhoneLike("(555) 123-4567"))
}

func TestDigitsOnly(t *testing.T) {
	assert.Equal(t, "5551234567", contact.DigitsOnly("(555) 123-4567"))
	assert.Equal(t, "573105551234", contact.DigitsOnly("+57 310 555 1234"))
	assert.Equal(t, "", contact.DigitsOnly("sin dígitos"))
}
