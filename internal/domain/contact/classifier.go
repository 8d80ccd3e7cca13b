package contact

import (
	"strconv"
	"strings"

	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// Palabras que descartan un campo de texto como candidato a nombre aunque su
// label contenga "name" (ej. "invoice number", "contact phone").
var nameSkipWords = []string{
	"number", "amount", "price", "total", "invoice", "order",
	"quantity", "hours", "time", "phone", "mobile", "contact",
}

// Sustantivos de label que marcan un campo como telefónico.
var phoneLabelWords = []string{"phone", "mobile", "contact number"}

// Classify extrae un Record de contacto a partir del esquema del formulario y
// el mapa de valores crudos (por field ID). Respeta el orden de los campos:
// dentro de cada categoría, el primer match gana.
//
// Orden de evaluación:
//  1. detección de teléfonos — esos campos quedan excluidos de la búsqueda de nombre
//  2. nombre: campos full-name estructurados; si no hay, campos de texto con
//     label de nombre en contexto de cliente
//  3. email y partes de dirección, en pasadas independientes
func Classify(fields []entity.FormField, values map[string]any) Record {
	var rec Record

	// ── 1. Teléfonos ─────────────────────────────────────────────────────────
	phoneFields := make(map[string]bool, len(fields))
	for _, f := range fields {
		val := stringValue(values[f.ID])
		if !isPhoneField(f, val) {
			continue
		}
		phoneFields[f.ID] = true
		if rec.Phone == "" && strings.TrimSpace(val) != "" {
			rec.Phone = strings.TrimSpace(val)
		}
	}

	// ── 2. Nombre ────────────────────────────────────────────────────────────
	// Pasada 1: campos full-name estructurados (firstName/lastName).
	for _, f := range fields {
		if phoneFields[f.ID] || f.Kind() != entity.FieldKindFullName {
			continue
		}
		name := fullNameValue(values[f.ID])
		if name != "" && !PhoneLike(name) {
			rec.Name = name
			break
		}
	}
	// Pasada 2: campos de texto cuyo label nombra al cliente.
	if rec.Name == "" {
		for _, f := range fields {
			if phoneFields[f.ID] || f.Kind() != entity.FieldKindText {
				continue
			}
			if !isCustomerNameLabel(f) {
				continue
			}
			val := strings.TrimSpace(stringValue(values[f.ID]))
			if val != "" && !PhoneLike(val) {
				rec.Name = val
				break
			}
		}
	}
	// Guarda final: un nombre que parece teléfono se descarta.
	if PhoneLike(rec.Name) {
		rec.Name = ""
	}

	// ── 3. Email ─────────────────────────────────────────────────────────────
	for _, f := range fields {
		if !isEmailField(f) {
			continue
		}
		val := strings.TrimSpace(stringValue(values[f.ID]))
		if val != "" {
			rec.Email = val
			break
		}
	}

	// ── 4. Partes de dirección ───────────────────────────────────────────────
	for _, f := range fields {
		// Un "Email Address" o un teléfono no son partes de dirección.
		if phoneFields[f.ID] || isEmailField(f) {
			continue
		}
		val := strings.TrimSpace(stringValue(values[f.ID]))
		if val == "" {
			continue
		}
		label := strings.ToLower(f.Label)
		switch {
		case rec.Address == "" && containsAny(label, "address", "location", "property"):
			rec.Address = val
		case rec.City == "" && strings.Contains(label, "city"):
			rec.City = val
		case rec.State == "" && containsAny(label, "state", "province"):
			rec.State = val
		case rec.Zip == "" && containsAny(label, "zip", "postal", "postcode"):
			rec.Zip = val
		case rec.Address == "" && f.Kind() == entity.FieldKindAddressPart:
			// tipo declarado "address" sin label reconocible
			rec.Address = val
		}
	}

	return rec
}

// isPhoneField marca un campo como telefónico por tipo declarado, por label o
// porque su valor parece un teléfono.
func isPhoneField(f entity.FormField, value string) bool {
	if f.Kind() == entity.FieldKindPhone {
		return true
	}
	label := strings.ToLower(f.Label)
	for _, w := range phoneLabelWords {
		if strings.Contains(label, w) {
			return true
		}
	}
	return PhoneLike(value)
}

// isCustomerNameLabel acepta labels como "Customer Name", "Client full name" o
// exactamente "Name", y rechaza los que contienen palabras de la lista de
// exclusión en label o ID.
func isCustomerNameLabel(f entity.FormField) bool {
	label := strings.ToLower(strings.TrimSpace(f.Label))
	id := strings.ToLower(f.ID)
	for _, w := range nameSkipWords {
		if strings.Contains(label, w) || strings.Contains(id, w) {
			return false
		}
	}
	if !strings.Contains(label, "name") {
		return false
	}
	return strings.Contains(label, "customer") || strings.Contains(label, "client") || label == "name"
}

// isEmailField acepta campos de tipo email o con sinónimo de email en
// label/ID, siempre que el tipo declarado no sea numérico.
func isEmailField(f entity.FormField) bool {
	if f.Kind() == entity.FieldKindEmail {
		return true
	}
	if f.Kind() == entity.FieldKindNumber {
		return false
	}
	label := strings.ToLower(f.Label)
	id := strings.ToLower(f.ID)
	return containsAny(label, "email", "e-mail") || containsAny(id, "email", "e-mail")
}

// fullNameValue arma "first last" desde el sub-mapa de un campo full-name.
// Acepta también un string plano (algunos editores mandan el nombre ya unido).
func fullNameValue(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case map[string]any:
		first := strings.TrimSpace(stringValue(val["firstName"]))
		last := strings.TrimSpace(stringValue(val["lastName"]))
		return strings.TrimSpace(first + " " + last)
	default:
		return ""
	}
}

// stringValue convierte un valor crudo de submission a texto. Valores no
// representables (mapas, slices, nil) rinden "" — el clasificador es total.
func stringValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
