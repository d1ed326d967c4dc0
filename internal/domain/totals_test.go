package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"maktab/internal/domain"
)

func TestComputeTotals_WithVAT(t *testing.T) {
	items := domain.LineItems{
		{Description: "Trade license renewal", Amount: 1200},
		{Description: "Typing fees", Amount: 150.50},
	}

	totals, err := domain.ComputeTotals(items, true)

	assert.NoError(t, err)
	assert.Equal(t, 1350.50, totals.Subtotal)
	assert.Equal(t, 67.53, totals.VATAmount)
	assert.Equal(t, 1418.03, totals.Total)
}

func TestComputeTotals_WithoutVAT(t *testing.T) {
	items := domain.LineItems{
		{Description: "Government fee (pass-through)", Amount: 500},
	}

	totals, err := domain.ComputeTotals(items, false)

	assert.NoError(t, err)
	assert.Equal(t, 500.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.VATAmount)
	assert.Equal(t, 500.0, totals.Total)
}

func TestComputeTotals_EmptyItems(t *testing.T) {
	totals, err := domain.ComputeTotals(nil, true)

	assert.NoError(t, err)
	assert.Equal(t, 0.0, totals.Subtotal)
	assert.Equal(t, 0.0, totals.Total)
}

func TestComputeTotals_NegativeAmountRejected(t *testing.T) {
	items := domain.LineItems{
		{Description: "Discount", Amount: -50},
	}

	_, err := domain.ComputeTotals(items, true)

	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestComputeTotals_RoundsHalfUp(t *testing.T) {
	// 0.05 * 100.10 = 5.005, rounds to 5.01
	items := domain.LineItems{{Description: "Service", Amount: 100.10}}

	totals, err := domain.ComputeTotals(items, true)

	assert.NoError(t, err)
	assert.Equal(t, 5.01, totals.VATAmount)
	assert.Equal(t, 105.11, totals.Total)
}

func TestDerivePaymentState(t *testing.T) {
	tests := []struct {
		name        string
		total       float64
		amountPaid  float64
		wantBalance float64
		wantStatus  domain.PaymentStatus
	}{
		{"unpaid", 1000, 0, 1000, domain.PaymentStatusUnpaid},
		{"partial", 1000, 400, 600, domain.PaymentStatusPartial},
		{"paid exactly", 1000, 1000, 0, domain.PaymentStatusPaid},
		{"paid beyond total floors at zero", 1000, 1100, 0, domain.PaymentStatusPaid},
		{"zero total is paid", 0, 0, 0, domain.PaymentStatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance, status := domain.DerivePaymentState(tt.total, tt.amountPaid)
			assert.Equal(t, tt.wantBalance, balance)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

// Follows one document through its life: quote the work, bill it, then
// collect in two installments.
func TestQuoteToPaidInvoiceFlow(t *testing.T) {
	items := domain.LineItems{
		{Description: "Job Offer", Amount: 1000},
		{Description: "Service Charge", Amount: 200},
	}

	totals, err := domain.ComputeTotals(items, true)
	assert.NoError(t, err)
	assert.Equal(t, 1200.0, totals.Subtotal)
	assert.Equal(t, 60.0, totals.VATAmount)
	assert.Equal(t, 1260.0, totals.Total)

	balance, status := domain.DerivePaymentState(totals.Total, 0)
	assert.Equal(t, 1260.0, balance)
	assert.Equal(t, domain.PaymentStatusUnpaid, status)

	balance, status = domain.DerivePaymentState(totals.Total, 760)
	assert.Equal(t, 500.0, balance)
	assert.Equal(t, domain.PaymentStatusPartial, status)

	balance, status = domain.DerivePaymentState(totals.Total, 760+500)
	assert.Equal(t, 0.0, balance)
	assert.Equal(t, domain.PaymentStatusPaid, status)
}
