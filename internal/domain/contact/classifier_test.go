package contact_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Clientes-api/internal/domain/contact"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Classify — extracción de contacto desde esquemas arbitrarios de formulario.
//
// El clasificador es total y determinista: nunca falla, y el mismo par
// (esquema, valores) produce siempre el mismo Record.
// ──────────────────────────────────────────────────────────────────────────────

func campo(id, label, tipo string) entity.FormField {
	return entity.FormField{ID: id, Label: label, Type: tipo}
}

func TestClassify_FormularioCompleto(t *testing.T) {
	fields := []entity.FormField{
		campo("f1", "Customer Name", "text"),
		campo("f2", "Email Address", "email"),
		campo("f3", "Phone", "tel"),
		campo("f4", "Service Address", "text"),
		campo("f5", "City", "text"),
		campo("f6", "State", "text"),
		campo("f7", "Zip Code", "text"),
	}
	values := map[string]any{
		"f1": "María García",
		"f2": " maria@example.com ",
		"f3": "310-555-1234",
		"f4": "Calle 45 #12-30",
		"f5": "Bogotá",
		"f6": "Cundinamarca",
		"f7": "110111",
	}

	rec := contact.Classify(fields, values)

	assert.Equal(t, "María García", rec.Name)
	assert.Equal(t, "maria@example.com", rec.Email, "el email debe quedar recortado, sin otra normalización")
	assert.Equal(t, "310-555-1234", rec.Phone)
	assert.Equal(t, "Calle 45 #12-30", rec.Address)
	assert.Equal(t, "Bogotá", rec.City)
	assert.Equal(t, "Cundinamarca", rec.State)
	assert.Equal(t, "110111", rec.Zip)
}

func TestClassify_Determinista(t *testing.T) {
	fields := []entity.FormField{
		campo("a", "Client Name", "text"),
		campo("b", "Mobile", "text"),
	}
	values := map[string]any{"a": "Pedro", "b": "3105551234"}

	r1 := contact.Classify(fields, values)
	r2 := contact.Classify(fields, values)
	assert.Equal(t, r1, r2, "el mismo input debe producir siempre el mismo Record")
}

// ── Teléfonos ─────────────────────────────────────────────────────────────────

// Un valor telefónico en un campo rotulado como nombre no debe convertirse en
// nombre: el campo queda marcado como telefónico y excluido de esa búsqueda.
func TestClassify_GuardaTelefonica_ValorTelefonicoEnCampoNombre(t *testing.T) {
	fields := []entity.FormField{campo("f1", "Customer Name", "text")}
	values := map[string]any{"f1": "555-123-4567"}

	rec := contact.Classify(fields, values)

	assert.Empty(t, rec.Name, "un teléfono nunca debe quedar como nombre")
	assert.Equal(t, "555-123-4567", rec.Phone, "el valor telefónico sí se aprovecha como teléfono")
}

func TestClassify_PrimerTelefonoGana(t *testing.T) {
	fields := []entity.FormField{
		campo("f1", "Phone", "tel"),
		campo("f2", "Mobile", "text"),
	}
	values := map[string]any{"f1": "601 555 0100", "f2": "310 555 0200"}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "601 555 0100", rec.Phone)
}

// Campo tipo tel declarado pero vacío: marca el campo, pero el teléfono lo
// aporta el siguiente campo telefónico con valor.
func TestClassify_TelefonoDeclaradoVacio(t *testing.T) {
	fields := []entity.FormField{
		campo("f1", "Phone", "tel"),
		campo("f2", "Contact Number", "text"),
	}
	values := map[string]any{"f2": "3105550200"}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "3105550200", rec.Phone)
}

// ── Nombre ────────────────────────────────────────────────────────────────────

// Prioridad: un campo full-name estructurado le gana a un campo de texto
// "Customer Name" aunque ambos tengan valor.
func TestClassify_FullNameEstructuradoGanaAlTexto(t *testing.T) {
	fields := []entity.FormField{
		campo("txt", "Customer Name", "text"),
		campo("fn", "Name", "full_name"),
	}
	values := map[string]any{
		"txt": "Nombre Del Texto",
		"fn":  map[string]any{"firstName": "Ana", "lastName": "Ruiz"},
	}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "Ana Ruiz", rec.Name)
}

func TestClassify_FullNameSoloFirstName(t *testing.T) {
	fields := []entity.FormField{campo("fn", "Name", "full_name")}
	values := map[string]any{"fn": map[string]any{"firstName": "Ana"}}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "Ana", rec.Name, "sin lastName el nombre es solo el firstName, sin espacios colgantes")
}

func TestClassify_LabelExactamenteName(t *testing.T) {
	fields := []entity.FormField{campo("f1", "Name", "text")}
	values := map[string]any{"f1": "Carlos Mota"}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "Carlos Mota", rec.Name, `el label exacto "Name" califica sin contexto de cliente`)
}

// "Name" sin contexto de cliente y sin ser exactamente "name" no califica:
// evita capturar "Project Name", "Company Name", etc.
func TestClassify_NameSinContextoClienteNoCalifica(t *testing.T) {
	fields := []entity.FormField{campo("f1", "Project Name", "text")}
	values := map[string]any{"f1": "Remodelación cocina"}

	rec := contact.Classify(fields, values)
	assert.Empty(t, rec.Name)
}

func TestClassify_PalabrasDeExclusion(t *testing.T) {
	// Labels con palabra de exclusión: jamás son nombre, aunque digan "customer".
	casos := []string{
		"Customer Invoice Number",
		"Customer Order Name",
		"Client Phone Name",
		"Customer Name Total",
	}
	for _, label := range casos {
		t.Run(label, func(t *testing.T) {
			fields := []entity.FormField{campo("f1", label, "text")}
			rec := contact.Classify(fields, map[string]any{"f1": "cualquier valor"})
			assert.Empty(t, rec.Name, "label %q contiene palabra de exclusión", label)
		})
	}
}

// La exclusión también aplica sobre el ID del campo.
func TestClassify_ExclusionPorID(t *testing.T) {
	fields := []entity.FormField{campo("invoice_ref", "Customer Name", "text")}
	rec := contact.Classify(fields, map[string]any{"invoice_ref": "ACME-01"})
	assert.Empty(t, rec.Name)
}

// ── Email ─────────────────────────────────────────────────────────────────────

func TestClassify_EmailPorLabel(t *testing.T) {
	fields := []entity.FormField{campo("f1", "Correo (e-mail)", "text")}
	values := map[string]any{"f1": "x@y.co"}

	rec := contact.Classify(fields, values)
	assert.Equal(t, "x@y.co", rec.Email)
}

func TestClassify_EmailTipoNumberNoCalifica(t *testing.T) {
	fields := []entity.FormField{campo("email_code", "Email Code", "number")}
	values := map[string]any{"email_code": float64(42)}

	rec := contact.Classify(fields, values)
	assert.Empty(t, rec.Email, "un campo numérico no es email aunque su ID diga email")
}

// ── Totalidad ─────────────────────────────────────────────────────────────────

func TestClassify_EsquemaVacioYValoresFaltantes(t *testing.T) {
	require.NotPanics(t, func() {
		rec := contact.Classify(nil, nil)
		assert.True(t, rec.Empty())

		// Campos sin valores y valores con tipos inesperados.
		fields := []entity.FormField{
			campo("f1", "Customer Name", "text"),
			campo("f2", "Email", "email"),
			campo("f3", "", "tipo-desconocido"),
		}
		values := map[string]any{
			"f2": []any{"no", "es", "texto"},
			"f3": map[string]any{"x": 1},
		}
		rec = contact.Classify(fields, values)
		assert.True(t, rec.Empty(), "valores malformados rinden campos vacíos, nunca pánico")
	})
}
