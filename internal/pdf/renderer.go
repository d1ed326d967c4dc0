package pdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/skip2/go-qrcode"

	"maktab/internal/config"
	"maktab/internal/domain"
)

// Renderer produces A4 PDF documents with the configured company letterhead.
type Renderer struct {
	company config.CompanyConfig
}

// NewRenderer creates a Renderer using the given letterhead details.
func NewRenderer(company config.CompanyConfig) *Renderer {
	return &Renderer{company: company}
}

// RenderInvoice renders a tax invoice as PDF bytes.
func (r *Renderer) RenderInvoice(inv *domain.Invoice) ([]byte, error) {
	pdf := r.newDocument("TAX INVOICE")

	r.documentHeader(pdf, [][2]string{
		{"Invoice No", inv.InvoiceNumber},
		{"Date", inv.InvoiceDate.Format("02 Jan 2006")},
		{"Bill To", inv.ClientName},
	})

	r.lineItemTable(pdf, inv.Items)
	r.totalsBlock(pdf, inv.IncludeVAT, inv.Subtotal, inv.VATAmount, inv.Total)

	// Payment summary
	pdf.Ln(4)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Amount Paid: AED %.2f", inv.AmountPaid), "", 1, "R", false, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Balance Due: AED %.2f", inv.Balance), "", 1, "R", false, 0, "")

	if inv.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+inv.Notes, "", "L", false)
	}

	qrContent := fmt.Sprintf("%s|%s|%.2f|%s", inv.InvoiceNumber, inv.InvoiceDate.Format("2006-01-02"), inv.Total, r.company.TRN)
	if err := r.qrBlock(pdf, qrContent); err != nil {
		return nil, err
	}

	return output(pdf)
}

// RenderQuotation renders a quotation as PDF bytes.
func (r *Renderer) RenderQuotation(q *domain.Quotation) ([]byte, error) {
	pdf := r.newDocument("QUOTATION")

	validUntil := q.CreatedAt.AddDate(0, 0, 30)
	r.documentHeader(pdf, [][2]string{
		{"Quotation No", q.QuotationNumber},
		{"Date", q.CreatedAt.Format("02 Jan 2006")},
		{"Valid Until", validUntil.Format("02 Jan 2006")},
		{"Prepared For", q.ClientName},
	})

	r.lineItemTable(pdf, q.Items)
	r.totalsBlock(pdf, q.IncludeVAT, q.Subtotal, q.VATAmount, q.Total)

	if q.Notes != "" {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 9)
		pdf.MultiCell(0, 5, "Notes: "+q.Notes, "", "L", false)
	}

	pdf.Ln(6)
	pdf.SetFont("Arial", "", 8)
	pdf.MultiCell(0, 4, "This quotation is valid for 30 days from the date of issue. Prices are in AED.", "", "L", false)

	qrContent := fmt.Sprintf("%s|%s|%.2f", q.QuotationNumber, q.CreatedAt.Format("2006-01-02"), q.Total)
	if err := r.qrBlock(pdf, qrContent); err != nil {
		return nil, err
	}

	return output(pdf)
}

// newDocument creates an A4 portrait page with the letterhead and title.
func (r *Renderer) newDocument(title string) *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 8, r.company.Name, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	if r.company.Address != "" {
		pdf.CellFormat(0, 4, r.company.Address, "", 1, "L", false, 0, "")
	}
	contact := r.company.Phone
	if r.company.Email != "" {
		if contact != "" {
			contact += "  |  "
		}
		contact += r.company.Email
	}
	if contact != "" {
		pdf.CellFormat(0, 4, contact, "", 1, "L", false, 0, "")
	}
	if r.company.TRN != "" {
		pdf.CellFormat(0, 4, "TRN: "+r.company.TRN, "", 1, "L", false, 0, "")
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, title, "B", 1, "C", false, 0, "")
	pdf.Ln(4)
	return pdf
}

// documentHeader prints label/value pairs under the title.
func (r *Renderer) documentHeader(pdf *gofpdf.Fpdf, fields [][2]string) {
	for _, f := range fields {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(35, 6, f[0]+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, f[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// lineItemTable prints the service line items.
func (r *Renderer) lineItemTable(pdf *gofpdf.Fpdf, items domain.LineItems) {
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	pdf.CellFormat(12, 7, "#", "1", 0, "C", true, 0, "")
	pdf.CellFormat(138, 7, "Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(30, 7, "Amount (AED)", "1", 1, "R", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for i, item := range items {
		pdf.CellFormat(12, 7, fmt.Sprintf("%d", i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(138, 7, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", item.Amount), "1", 1, "R", false, 0, "")
	}
}

// totalsBlock prints subtotal, VAT, and grand total right-aligned.
func (r *Renderer) totalsBlock(pdf *gofpdf.Fpdf, includeVAT bool, subtotal, vat, total float64) {
	pdf.Ln(2)
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Subtotal: AED %.2f", subtotal), "", 1, "R", false, 0, "")
	if includeVAT {
		pdf.CellFormat(0, 6, fmt.Sprintf("VAT (5%%): AED %.2f", vat), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Total: AED %.2f", total), "T", 1, "R", false, 0, "")
}

// qrBlock embeds a QR code at the bottom left with a generated-at line.
func (r *Renderer) qrBlock(pdf *gofpdf.Fpdf, content string) error {
	qrPng, err := qrcode.Encode(content, qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encoding QR code: %w", err)
	}

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("doc_qr", opts, bytes.NewReader(qrPng))

	_, pageH := pdf.GetPageSize()
	pdf.ImageOptions("doc_qr", 15, pageH-45, 25, 25, false, opts, 0, "")

	pdf.SetXY(15, pageH-19)
	pdf.SetFont("Arial", "", 7)
	pdf.CellFormat(0, 4, "Generated on "+time.Now().Format("02 Jan 2006 15:04"), "", 1, "L", false, 0, "")
	return nil
}

func output(pdf *gofpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}
