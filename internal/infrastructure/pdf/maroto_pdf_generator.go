// Package pdf implementa la generación del dossier PDF de un cliente:
// ficha de contacto, historial de submissions y facturas asociadas.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Negocio (tenant)  │  Cliente + fecha de emisión    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: email / teléfono / dirección                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUBMISSIONS: Fecha | Formulario | # Valores                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FACTURAS: Número | Fecha | Estado | Total                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/Clientes-api/internal/application/crm"
	"github.com/jhoicas/Clientes-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ crm.CustomerPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa crm.CustomerPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateCustomerPDF genera el dossier y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateCustomerPDF(
	_ context.Context,
	tenant *entity.Tenant,
	customer *entity.Customer,
	submissions []*entity.Submission,
	invoices []*entity.Invoice,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Dossier de Cliente", true).
		WithAuthor(tenant.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(tenant, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Historial de submissions
	m.AddRows(sectionRow("HISTORIAL DE SUBMISSIONS"))
	m.AddRows(submissionHeaderRow())
	for _, r := range submissionRows(submissions) {
		m.AddRows(r)
	}

	// Facturas
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sectionRow("FACTURAS"))
	m.AddRows(invoiceHeaderRow())
	for _, r := range invoiceRows(invoices) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: negocio (izq) y nombre del cliente + contador (der).
func headerRow(tenant *entity.Tenant, customer *entity.Customer) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(tenant.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Dossier de cliente", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New(fmt.Sprintf("Submissions: %d", customer.SubmissionCount), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
			text.New("Desde: "+customer.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// contactRow: datos de contacto del cliente.
func contactRow(customer *entity.Customer) core.Row {
	address := customer.Address
	for _, part := range []string{customer.City, customer.State, customer.Zip} {
		if part != "" {
			if address != "" {
				address += ", "
			}
			address += part
		}
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("DATOS DE CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s   |   Dirección: %s",
				nonEmpty(customer.Email, "—"),
				nonEmpty(customer.Phone, "—"),
				nonEmpty(address, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func sectionRow(title string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(title, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
		}),
	))
}

func submissionHeaderRow() core.Row {
	return row.New(6).Add(
		tableHeader("Fecha", 3, align.Left),
		tableHeader("Formulario", 6, align.Left),
		tableHeader("Campos", 3, align.Right),
	)
}

func submissionRows(submissions []*entity.Submission) []core.Row {
	if len(submissions) == 0 {
		return []core.Row{emptyRow("Sin submissions registradas")}
	}
	result := make([]core.Row, 0, len(submissions))
	for _, s := range submissions {
		result = append(result, row.New(6).Add(
			tableCell(s.CreatedAt.Format("02/01/2006 15:04"), 3, align.Left),
			tableCell(s.FormID, 6, align.Left),
			tableCell(fmt.Sprintf("%d", len(s.Values)), 3, align.Right),
		))
	}
	return result
}

func invoiceHeaderRow() core.Row {
	return row.New(6).Add(
		tableHeader("Número", 3, align.Left),
		tableHeader("Fecha", 3, align.Left),
		tableHeader("Estado", 3, align.Center),
		tableHeader("Total", 3, align.Right),
	)
}

func invoiceRows(invoices []*entity.Invoice) []core.Row {
	if len(invoices) == 0 {
		return []core.Row{emptyRow("Sin facturas emitidas")}
	}
	result := make([]core.Row, 0, len(invoices))
	for _, inv := range invoices {
		result = append(result, row.New(6).Add(
			tableCell(inv.Prefix+inv.Number, 3, align.Left),
			tableCell(inv.Date.Format("02/01/2006"), 3, align.Left),
			tableCell(inv.Status, 3, align.Center),
			tableCell("$"+formatMoney(inv.Total.StringFixed(0)), 3, align.Right),
		))
	}
	return result
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tableHeader(label string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(label, props.Text{
		Style: fontstyle.Bold, Size: 8, Align: a,
		Color: colorPrimary, Top: 1, Left: 1, Right: 1,
	}))
}

func tableCell(value string, size int, a align.Type) core.Col {
	return col.New(size).Add(text.New(value, props.Text{
		Size: 8, Align: a, Top: 1, Left: 1, Right: 1,
	}))
}

func emptyRow(msg string) core.Row {
	return row.New(6).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 8, Color: colorGray, Top: 1, Left: 1}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "1000000" → "1.000.000"
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
