// Package contact implementa el clasificador de campos: dado el esquema de un
// formulario definido por el tenant y los valores crudos de un envío, extrae
// un Record de contacto estructurado. Lógica pura de dominio: sin I/O, sin
// estado, total (nunca falla) y determinista.
package contact

// Record es el contacto transitorio extraído de un envío. No se persiste;
// el resolver de identidad lo convierte en un Customer canónico.
// Todos los campos son opcionales: "" = no extraído.
type Record struct {
	Name    string
	Email   string
	Phone   string
	Address string
	City    string
	State   string
	Zip     string
}

// Empty indica si no se extrajo ningún campo.
func (r Record) Empty() bool {
	return r == Record{}
}
