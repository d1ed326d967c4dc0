package port

import "maktab/internal/domain"

// DocumentRenderer produces printable representations of billing documents.
type DocumentRenderer interface {
	RenderInvoice(inv *domain.Invoice) ([]byte, error)
	RenderQuotation(q *domain.Quotation) ([]byte, error)
}
