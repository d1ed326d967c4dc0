package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/service"
)

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	paymentService service.PaymentService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, paymentService service.PaymentService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, paymentService: paymentService}
}

// Create handles POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Create(c.Request.Context(), input, auditMetaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// List handles GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	status := domain.PaymentStatus(c.Query("payment_status"))

	invoices, total, err := h.invoiceService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, invoices, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/invoices/:id
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	inv, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Update handles PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var input service.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	inv, err := h.invoiceService.Update(c.Request.Context(), id, input, auditMetaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, inv)
}

// Delete handles DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), id, auditMetaFrom(c)); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "invoice deleted"})
}

// PDF handles GET /api/v1/invoices/:id/pdf
func (h *InvoiceHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	pdf, err := h.invoiceService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=invoice-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// History handles GET /api/v1/invoices/:id/audit
func (h *InvoiceHandler) History(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}
	offset, limit := pagination(c)

	entries, total, err := h.invoiceService.AuditHistory(c.Request.Context(), id, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, entries, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// RecordPayment handles POST /api/v1/invoices/:id/payments
func (h *InvoiceHandler) RecordPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	var input service.PaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	input.InvoiceID = id

	result, err := h.paymentService.Record(c.Request.Context(), input, auditMetaFrom(c).Actor)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// ListPayments handles GET /api/v1/invoices/:id/payments
func (h *InvoiceHandler) ListPayments(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid invoice ID")
		return
	}

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, payments)
}
