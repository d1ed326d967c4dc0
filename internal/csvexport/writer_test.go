package csvexport_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"maktab/internal/csvexport"
	"maktab/internal/domain"
)

func TestInvoiceWriter_Register(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewInvoiceWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WriteInvoices([]domain.Invoice{{
		InvoiceNumber: "INV-2026-00042",
		InvoiceDate:   time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
		ClientName:    "Al Noor Trading LLC",
		Subtotal:      1350.5,
		VATAmount:     67.53,
		Total:         1418.03,
		AmountPaid:    500,
		Balance:       918.03,
		PaymentStatus: domain.PaymentStatusPartial,
		CreatedAt:     time.Date(2026, 8, 15, 9, 30, 0, 0, time.UTC),
	}}))
	w.Flush()
	require.NoError(t, w.Error())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Invoice Number,Invoice Date,Client Name,Subtotal,VAT,Total,Amount Paid,Balance,Payment Status,Created At", lines[0])
	assert.Equal(t, "INV-2026-00042,2026-08-15,Al Noor Trading LLC,1350.50,67.53,1418.03,500.00,918.03,partial,2026-08-15T09:30:00Z", lines[1])
}

func TestPaymentWriter_EscapesCommas(t *testing.T) {
	var buf bytes.Buffer
	w := csvexport.NewPaymentWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.WritePayments([]domain.Payment{{
		PaymentDate:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		InvoiceNumber: "INV-2026-00042",
		ClientName:    "Khalid Trading, Est.",
		Amount:        500,
		Method:        domain.PaymentMethodCash,
		Reference:     "RCPT-1042",
		CreatedBy:     "fatima",
	}}))
	w.Flush()
	require.NoError(t, w.Error())

	assert.Contains(t, buf.String(), `"Khalid Trading, Est."`)
	assert.Contains(t, buf.String(), "500.00,cash,RCPT-1042,fatima")
}
