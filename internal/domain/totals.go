package domain

import "math"

// VATRate is the UAE standard VAT rate applied to quotations and invoices.
const VATRate = 0.05

// Round2 rounds a currency amount to 2 decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Totals holds the computed monetary summary of a line-item list.
type Totals struct {
	Subtotal  float64 `json:"subtotal"`
	VATAmount float64 `json:"vat_amount"`
	Total     float64 `json:"total"`
}

// ComputeTotals sums the line items and applies VAT when requested.
// Negative item amounts are rejected.
func ComputeTotals(items LineItems, includeVAT bool) (Totals, error) {
	var subtotal float64
	for _, item := range items {
		if item.Amount < 0 {
			return Totals{}, ErrInvalidAmount
		}
		subtotal += item.Amount
	}
	subtotal = Round2(subtotal)

	var vat float64
	if includeVAT {
		vat = Round2(subtotal * VATRate)
	}
	return Totals{
		Subtotal:  subtotal,
		VATAmount: vat,
		Total:     Round2(subtotal + vat),
	}, nil
}

// DerivePaymentState recomputes an invoice's derived payment fields from
// the authoritative sum of its payments. Balance floors at zero.
func DerivePaymentState(total, amountPaid float64) (balance float64, status PaymentStatus) {
	balance = Round2(total - amountPaid)
	if balance < 0 {
		balance = 0
	}
	switch {
	case balance == 0:
		return 0, PaymentStatusPaid
	case amountPaid > 0:
		return balance, PaymentStatusPartial
	default:
		return balance, PaymentStatusUnpaid
	}
}
