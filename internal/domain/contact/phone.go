package contact

import (
	"strings"
	"unicode"
)

// PhoneLike decide si un valor de texto parece un número telefónico.
//
// Regla: quitando espacios, guiones, paréntesis, `+` y puntos, el resto debe
// ser solo dígitos con longitud entre 7 y 15; además, o el string original
// empieza con dígito o `+`, o la longitud depurada es ≥ 10. Así "555-123-4567"
// es teléfono pero "Casa 42" o un consecutivo corto no.
func PhoneLike(value string) bool {
	s := strings.TrimSpace(value)
	if s == "" {
		return false
	}
	stripped := stripPhoneChars(s)
	if stripped == "" {
		return false
	}
	for _, r := range stripped {
		if r < '0' || r > '9' {
			return false
		}
	}
	n := len(stripped)
	if n < 7 || n > 15 {
		return false
	}
	first := rune(s[0])
	startsLikePhone := first == '+' || (first >= '0' && first <= '9')
	return startsLikePhone || n >= 10
}

// stripPhoneChars quita los separadores habituales de un teléfono escrito a mano.
func stripPhoneChars(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
		case r == '-' || r == '(' || r == ')' || r == '+' || r == '.':
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// DigitsOnly deja solo los dígitos de un string. Es la normalización que usa
// el resolver para comparar teléfonos entre sí.
func DigitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
