package entity

import (
	"strings"
	"time"
)

// FieldKind es la unión cerrada de tipos de campo que el clasificador conoce.
// Los strings de tipo que llegan del editor de formularios se normalizan una
// sola vez con KindOf; el resto del código despacha sobre el enum.
type FieldKind int

const (
	FieldKindUnknown FieldKind = iota
	FieldKindText
	FieldKindFullName
	FieldKindEmail
	FieldKindPhone
	FieldKindNumber
	FieldKindAddressPart
)

// KindOf normaliza el string de tipo declarado por el editor de formularios.
// Cualquier tipo no reconocido cae en FieldKindUnknown (nunca error).
func KindOf(fieldType string) FieldKind {
	switch strings.ToLower(strings.TrimSpace(fieldType)) {
	case "text", "short_text", "short-text", "long_text", "long-text", "textarea", "string":
		return FieldKindText
	case "full_name", "full-name", "fullname", "name":
		return FieldKindFullName
	case "email":
		return FieldKindEmail
	case "phone", "tel", "telephone":
		return FieldKindPhone
	case "number", "numeric", "currency":
		return FieldKindNumber
	case "address", "address_part", "address-part":
		return FieldKindAddressPart
	default:
		return FieldKindUnknown
	}
}

// FormField es un campo declarado por el tenant en su formulario.
type FormField struct {
	ID    string
	Label string
	Type  string // tipo declarado tal cual llega del editor; ver KindOf
}

// Kind devuelve la clase normalizada del campo.
func (f FormField) Kind() FieldKind { return KindOf(f.Type) }

// Form representa un formulario de captura definido por un tenant.
// La lista de campos está ordenada: el clasificador respeta ese orden
// ("primer match gana").
type Form struct {
	ID        string
	TenantID  string
	Name      string
	Fields    []FormField
	CreatedAt time.Time
	UpdatedAt time.Time
}
