// Package pdf implementa la representación imprimible de una Solicitud de
// Propuesta (RFP) para adjuntar o archivar.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título de la RFP  │  Estado + Fecha                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TÉRMINOS: Presupuesto / Entrega / Pago / Garantía           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Ítem | Especificaciones                       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PROVEEDORES INVITADOS                                       │
//	│  SOLICITUD ORIGINAL (texto libre, auditoría)                 │
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

	"github.com/jhoicas/procura-api/internal/application/ports"
	"github.com/jhoicas/procura-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// Verificar en tiempo de compilación que implementa el puerto.
var _ ports.RFPPDFGenerator = (*MarotoRFPGenerator)(nil)

// MarotoRFPGenerator implementa ports.RFPPDFGenerator usando Maroto v2.
type MarotoRFPGenerator struct{}

// NewMarotoRFPGenerator construye el generador.
func NewMarotoRFPGenerator() *MarotoRFPGenerator { return &MarotoRFPGenerator{} }

// GenerateRFPPDF genera el PDF y devuelve sus bytes.
func (g *MarotoRFPGenerator) GenerateRFPPDF(
	_ context.Context,
	rfp *entity.RFP,
	vendors []*entity.Vendor,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Solicitud de Propuesta", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rfp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(termsRow(rfp))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(rfp.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(vendorsRows(vendors)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(requestRows(rfp)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y estado + fecha de creación (der).
func headerRow(rfp *entity.RFP) core.Row {
	fecha := rfp.CreatedAt.Format("02/01/2006")

	return row.New(18).Add(
		col.New(8).Add(
			text.New("SOLICITUD DE PROPUESTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(rfp.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 6,
			}),
		),
		col.New(4).Add(
			text.New("Estado: "+string(rfp.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// termsRow: términos comerciales de la solicitud.
func termsRow(rfp *entity.RFP) core.Row {
	budget := "—"
	if !rfp.Budget.IsZero() {
		budget = "$" + rfp.Budget.StringFixed(0)
	}
	delivery := "—"
	if rfp.DeliveryDate != nil {
		delivery = rfp.DeliveryDate.Format("02/01/2006")
	}
	return row.New(14).Add(
		col.New(12).Add(
			text.New("TÉRMINOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Presupuesto: %s   |   Entrega: %s   |   Pago: %s   |   Garantía: %s",
				budget,
				delivery,
				nonEmpty(rfp.PaymentTerms, "—"),
				nonEmpty(rfp.Warranty, "—"),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Ítem", 4, align.Left),
		h("Especificaciones", 6, align.Left),
	)
}

// tableItemRows: una fila por renglón solicitado.
func tableItemRows(items []entity.RFPItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				fmt.Sprintf("%g", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(4).Add(text.New(
				it.Name,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				nonEmpty(it.Specs, "—"),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
		))
	}
	return result
}

// vendorsRows: proveedores a los que se envió la solicitud (vacío en Draft).
func vendorsRows(vendors []*entity.Vendor) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("PROVEEDORES INVITADOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(vendors) == 0 {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Aún no enviada a proveedores.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
		return rows
	}
	for _, v := range vendors {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s  <%s>", v.Name, v.Email), props.Text{Size: 8, Top: 1}),
		)))
	}
	return rows
}

// requestRows: el texto libre original del comprador, conservado para auditoría.
func requestRows(rfp *entity.RFP) []core.Row {
	return []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("SOLICITUD ORIGINAL", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
		row.New(24).Add(col.New(12).Add(
			text.New(rfp.NaturalLanguageRequest, props.Text{Size: 8, Color: colorGray, Top: 1}),
		)),
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
