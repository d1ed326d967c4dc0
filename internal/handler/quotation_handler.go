package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maktab/internal/service"
)

// QuotationHandler handles quotation endpoints.
type QuotationHandler struct {
	quotationService service.QuotationService
}

// NewQuotationHandler creates a new QuotationHandler.
func NewQuotationHandler(quotationService service.QuotationService) *QuotationHandler {
	return &QuotationHandler{quotationService: quotationService}
}

// Create handles POST /api/v1/quotations
func (h *QuotationHandler) Create(c *gin.Context) {
	var input service.QuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.quotationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, q)
}

// List handles GET /api/v1/quotations
func (h *QuotationHandler) List(c *gin.Context) {
	offset, limit := pagination(c)

	quotations, total, err := h.quotationService.List(c.Request.Context(), offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, quotations, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/quotations/:id
func (h *QuotationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	q, err := h.quotationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Update handles PUT /api/v1/quotations/:id
func (h *QuotationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	var input service.QuotationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	q, err := h.quotationService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, q)
}

// Delete handles DELETE /api/v1/quotations/:id
func (h *QuotationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	if err := h.quotationService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "quotation deleted"})
}

// Convert handles POST /api/v1/quotations/:id/convert
func (h *QuotationHandler) Convert(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	inv, err := h.quotationService.ConvertToInvoice(c.Request.Context(), id, auditMetaFrom(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, inv)
}

// PDF handles GET /api/v1/quotations/:id/pdf
func (h *QuotationHandler) PDF(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid quotation ID")
		return
	}

	pdf, err := h.quotationService.RenderPDF(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=quotation-%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
