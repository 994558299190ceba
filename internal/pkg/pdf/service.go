// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/ambassador-platform/internal/config"
	"github.com/your-org/ambassador-platform/internal/domain/catalog"
	"github.com/your-org/ambassador-platform/internal/domain/order"
)

// Service renders order receipts as PDF
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg}
}

// GenerateReceipt renders a PDF receipt for an order.
func (s *Service) GenerateReceipt(o *order.Order) (*bytes.Buffer, error) {
	data := receiptData{
		ReceiptNumber: fmt.Sprintf("REC-%06d", o.ID),
		Date:          o.CreatedAt.Format("02/01/2006"),
		Platform:      s.config.App.Name,
		Order:         o,
	}
	for _, item := range o.Items {
		data.Lines = append(data.Lines, receiptLine{
			Title:     item.Title,
			Quantity:  item.Quantity,
			UnitPrice: catalog.FormatAmount(item.UnitPrice),
			LineTotal: catalog.FormatAmount(item.LineTotal()),
		})
	}
	data.Subtotal = catalog.FormatAmount(o.Subtotal())
	data.Shipping = catalog.FormatAmount(o.ShippingCost)
	data.Total = catalog.FormatAmount(o.Total)

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

func (s *Service) generateHTML(data receiptData) (string, error) {
	tmpl := template.Must(template.New("receipt").Parse(receiptTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.String(), nil
}

type receiptLine struct {
	Title     string
	Quantity  int
	UnitPrice string
	LineTotal string
}

type receiptData struct {
	ReceiptNumber string
	Date          string
	Platform      string
	Order         *order.Order
	Lines         []receiptLine
	Subtotal      string
	Shipping      string
	Total         string
}

const receiptTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Recibo {{.ReceiptNumber}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 0; padding: 24px; color: #333; }
        .header { border-bottom: 2px solid #eee; padding-bottom: 16px; margin-bottom: 24px; }
        .title { font-size: 26px; font-weight: bold; color: #2563eb; }
        .meta td { padding: 4px 16px 4px 0; }
        .buyer { margin: 24px 0; }
        .section-title { font-size: 15px; font-weight: bold; margin-bottom: 8px; color: #374151; }
        table.items { width: 100%; border-collapse: collapse; margin-bottom: 24px; }
        table.items th, table.items td { border: 1px solid #ddd; padding: 10px 8px; text-align: left; }
        table.items th { background-color: #f8f9fa; }
        .num { text-align: right; width: 90px; }
        .totals { float: right; width: 280px; }
        .totals td { padding: 6px 8px; border-bottom: 1px solid #eee; }
        .totals .label { text-align: right; font-weight: bold; }
        .totals .amount { text-align: right; }
        .grand { font-size: 17px; font-weight: bold; border-top: 2px solid #333 !important; }
        .footer { margin-top: 48px; text-align: center; color: #666; font-size: 12px; }
    </style>
</head>
<body>
    <div class="header">
        <div class="title">{{.Platform}}</div>
        <table class="meta">
            <tr>
                <td><strong>Recibo:</strong> {{.ReceiptNumber}}</td>
                <td><strong>Fecha:</strong> {{.Date}}</td>
                <td><strong>Estado:</strong> {{.Order.Status}}</td>
                <td><strong>Moneda:</strong> {{.Order.Currency}}</td>
            </tr>
        </table>
    </div>

    <div class="buyer">
        <div class="section-title">Cliente</div>
        <p><strong>{{.Order.BuyerName}}</strong> — {{.Order.DocumentID}}</p>
        <p>{{.Order.StreetAddress}} {{.Order.HouseNumber}}, {{.Order.City}}, {{.Order.State}}</p>
        <p>{{.Order.Email}} · {{.Order.Phone}}</p>
    </div>

    <table class="items">
        <thead>
            <tr>
                <th>Producto</th>
                <th class="num">Cantidad</th>
                <th class="num">Precio</th>
                <th class="num">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Lines}}
            <tr>
                <td>{{.Title}}</td>
                <td class="num">{{.Quantity}}</td>
                <td class="num">{{.UnitPrice}}</td>
                <td class="num">{{.LineTotal}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr><td class="label">Subtotal:</td><td class="amount">{{.Subtotal}}</td></tr>
            <tr><td class="label">Envío:</td><td class="amount">{{.Shipping}}</td></tr>
            <tr class="grand"><td class="label">Total:</td><td class="amount">{{.Total}} {{.Order.Currency}}</td></tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Gracias por su compra.</p>
    </div>
</body>
</html>
`
