package domain

import "time"

// RevenueSummary aggregates invoicing and collection over a date range.
type RevenueSummary struct {
	From             time.Time `json:"from"`
	To               time.Time `json:"to"`
	InvoiceCount     int       `db:"invoice_count" json:"invoice_count"`
	PaymentCount     int       `db:"payment_count" json:"payment_count"`
	TotalInvoiced    float64   `db:"total_invoiced" json:"total_invoiced"`
	TotalCollected   float64   `db:"total_collected" json:"total_collected"`
	TotalOutstanding float64   `db:"total_outstanding" json:"total_outstanding"`
	TotalVAT         float64   `db:"total_vat" json:"total_vat"`
}

// OutstandingInvoiceRow is a single unpaid or partially paid invoice in
// the outstanding report.
type OutstandingInvoiceRow struct {
	InvoiceNumber string        `db:"invoice_number" json:"invoice_number"`
	ClientName    string        `db:"client_name" json:"client_name"`
	InvoiceDate   time.Time     `db:"invoice_date" json:"invoice_date"`
	Total         float64       `db:"total" json:"total"`
	AmountPaid    float64       `db:"amount_paid" json:"amount_paid"`
	Balance       float64       `db:"balance" json:"balance"`
	PaymentStatus PaymentStatus `db:"payment_status" json:"payment_status"`
}

// MethodTotalRow aggregates collected payments per payment method.
type MethodTotalRow struct {
	Method PaymentMethod `db:"method" json:"method"`
	Count  int           `db:"count" json:"count"`
	Total  float64       `db:"total" json:"total"`
}

// ApplicationPipelineRow counts applications per type and status.
type ApplicationPipelineRow struct {
	ApplicationType ApplicationType   `db:"application_type" json:"application_type"`
	Status          ApplicationStatus `db:"status" json:"status"`
	Count           int               `db:"count" json:"count"`
}
