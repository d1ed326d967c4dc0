package csvexport

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"maktab/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var invoiceColumns = []string{
	"Invoice Number",
	"Invoice Date",
	"Client Name",
	"Subtotal",
	"VAT",
	"Total",
	"Amount Paid",
	"Balance",
	"Payment Status",
	"Created At",
}

var paymentColumns = []string{
	"Payment Date",
	"Invoice Number",
	"Client Name",
	"Amount",
	"Method",
	"Reference",
	"Received By",
	"Created At",
}

// InvoiceWriter exports invoices as a register CSV.
type InvoiceWriter struct {
	csv *csv.Writer
}

// NewInvoiceWriter creates an InvoiceWriter that writes CSV to w.
func NewInvoiceWriter(w io.Writer) *InvoiceWriter {
	return &InvoiceWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the register header row.
func (w *InvoiceWriter) WriteHeader() error {
	return w.csv.Write(invoiceColumns)
}

// WriteInvoices converts a batch of invoices to CSV rows and writes them.
func (w *InvoiceWriter) WriteInvoices(invoices []domain.Invoice) error {
	for i := range invoices {
		if err := w.csv.Write(invoiceToRow(&invoices[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *InvoiceWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *InvoiceWriter) Error() error {
	return w.csv.Error()
}

func invoiceToRow(inv *domain.Invoice) []string {
	return []string{
		inv.InvoiceNumber,
		inv.InvoiceDate.Format("2006-01-02"),
		inv.ClientName,
		formatAmount(inv.Subtotal),
		formatAmount(inv.VATAmount),
		formatAmount(inv.Total),
		formatAmount(inv.AmountPaid),
		formatAmount(inv.Balance),
		string(inv.PaymentStatus),
		inv.CreatedAt.Format(time.RFC3339),
	}
}

// PaymentWriter exports payments as a ledger CSV.
type PaymentWriter struct {
	csv *csv.Writer
}

// NewPaymentWriter creates a PaymentWriter that writes CSV to w.
func NewPaymentWriter(w io.Writer) *PaymentWriter {
	return &PaymentWriter{csv: csv.NewWriter(w)}
}

// WriteHeader writes the ledger header row.
func (w *PaymentWriter) WriteHeader() error {
	return w.csv.Write(paymentColumns)
}

// WritePayments converts a batch of payments to CSV rows and writes them.
func (w *PaymentWriter) WritePayments(payments []domain.Payment) error {
	for i := range payments {
		if err := w.csv.Write(paymentToRow(&payments[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *PaymentWriter) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *PaymentWriter) Error() error {
	return w.csv.Error()
}

func paymentToRow(p *domain.Payment) []string {
	return []string{
		p.PaymentDate.Format("2006-01-02"),
		p.InvoiceNumber,
		p.ClientName,
		formatAmount(p.Amount),
		string(p.Method),
		p.Reference,
		p.CreatedBy,
		p.CreatedAt.Format(time.RFC3339),
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
