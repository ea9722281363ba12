// Package pdf genera el comprobante de venta en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: COMPROBANTE DE VENTA │ N° + Fecha + Estado          │
//	│  CLIENTE: Nombre + email + teléfono                          │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  PAGOS: medio + referencia + monto                           │
//	│  TOTAL                                                       │
//	│  FOOTER: QR con el ID de la venta                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	appsales "github.com/npochettino/sales-management-api/internal/application/sales"
	"github.com/npochettino/sales-management-api/internal/domain/entity"
)

var _ appsales.ReceiptPDFGenerator = (*MarotoPDFGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 31, Green: 41, Blue: 55}
	colorGray    = &props.Color{Red: 107, Green: 114, Blue: 128}
)

var statusLabels = map[entity.SaleStatus]string{
	entity.SaleStatusPending:   "Pendiente",
	entity.SaleStatusCompleted: "Completada",
	entity.SaleStatusCancelled: "Cancelada",
}

var paymentLabels = map[entity.PaymentType]string{
	entity.PaymentCash:     "Efectivo",
	entity.PaymentCredit:   "Tarjeta de crédito",
	entity.PaymentDebit:    "Tarjeta de débito",
	entity.PaymentTransfer: "Transferencia",
	entity.PaymentOther:    "Otro",
}

// MarotoPDFGenerator implementa sales.ReceiptPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	printer *message.Printer
}

// NewMarotoPDFGenerator los montos se formatean según tag (separadores de miles y decimales).
func NewMarotoPDFGenerator(tag language.Tag) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{printer: message.NewPrinter(tag)}
}

// GenerateSaleReceipt arma el comprobante. client puede ser nil si el cliente fue eliminado.
func (g *MarotoPDFGenerator) GenerateSaleReceipt(_ context.Context, sale *entity.Sale, client *entity.Client) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(12).WithBottomMargin(12).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de venta "+sale.ID, true).
		Build()

	m := maroto.New(cfg)
	m.AddRows(g.header(sale))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(clientRow(client))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))

	m.AddRows(itemsHeader())
	m.AddRows(g.itemRows(sale.Items)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.2}))
	m.AddRows(g.paymentRows(sale.PaymentMethods)...)
	m.AddRows(g.totalRow(sale.Total))

	m.AddRows(line.NewRow(4))
	m.AddRows(row.New(40).Add(
		col.New(3).Add(code.NewQr(sale.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(text.New("Conserve este comprobante. El código QR identifica la venta.", props.Text{
			Size: 8, Top: 4, Left: 3, Color: colorGray,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *MarotoPDFGenerator) header(sale *entity.Sale) core.Row {
	status := statusLabels[sale.Status]
	if status == "" {
		status = string(sale.Status)
	}
	return row.New(20).Add(
		col.New(6).Add(
			text.New("COMPROBANTE DE VENTA", props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 2}),
			text.New("Documento no válido como factura", props.Text{Size: 7, Top: 10, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("N° "+sale.ID, props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2}),
			text.New("Fecha: "+sale.CreatedAt.Format("02/01/2006 15:04"), props.Text{Size: 8, Align: align.Right, Top: 8, Color: colorGray}),
			text.New("Estado: "+status, props.Text{Size: 8, Align: align.Right, Top: 13, Color: colorGray}),
		),
	)
}

func clientRow(client *entity.Client) core.Row {
	name, contact := "Cliente eliminado", ""
	if client != nil {
		name = client.Name
		contact = fmt.Sprintf("Email: %s   |   Tel: %s", nonEmpty(client.Email, "-"), nonEmpty(client.Phone, "-"))
	}
	return row.New(14).Add(col.New(12).Add(
		text.New("CLIENTE", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(name, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5}),
		text.New(contact, props.Text{Size: 8, Top: 10, Color: colorGray}),
	))
}

func itemsHeader() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Align: a, Top: 2}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func (g *MarotoPDFGenerator) itemRows(items []entity.SaleItem) []core.Row {
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(6).Add(
			col.New(1).Add(text.New(fmt.Sprint(it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(6).Add(text.New(it.ProductName, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(g.money(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(3).Add(text.New(g.money(it.Subtotal), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) paymentRows(payments []entity.PaymentMethod) []core.Row {
	rows := []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("PAGOS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
	))}
	for _, pm := range payments {
		label := paymentLabels[pm.Type]
		if pm.Reference != "" {
			label += " (" + pm.Reference + ")"
		}
		rows = append(rows, row.New(5).Add(
			col.New(9).Add(text.New(label, props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(g.money(pm.Amount), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return rows
}

func (g *MarotoPDFGenerator) totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(9).Add(text.New("TOTAL", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2})),
		col.New(3).Add(text.New(g.money(total), props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorPrimary, Top: 2})),
	)
}

// money formatea con dos decimales según el idioma del generador.
func (g *MarotoPDFGenerator) money(d decimal.Decimal) string {
	return g.printer.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
