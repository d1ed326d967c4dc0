package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"maktab/internal/csvexport"
	"maktab/internal/service"
)

// ReportHandler handles reporting and export endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RevenueSummary handles GET /api/v1/reports/summary
func (h *ReportHandler) RevenueSummary(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	summary, err := h.reportService.RevenueSummary(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// OutstandingInvoices handles GET /api/v1/reports/outstanding
func (h *ReportHandler) OutstandingInvoices(c *gin.Context) {
	rows, err := h.reportService.OutstandingInvoices(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// PaymentsByMethod handles GET /api/v1/reports/payments-by-method
func (h *ReportHandler) PaymentsByMethod(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	rows, err := h.reportService.PaymentsByMethod(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// ApplicationPipeline handles GET /api/v1/reports/applications
func (h *ReportHandler) ApplicationPipeline(c *gin.Context) {
	rows, err := h.reportService.ApplicationPipeline(c.Request.Context())
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// ExportInvoices handles GET /api/v1/reports/invoices.csv
func (h *ReportHandler) ExportInvoices(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	invoices, err := h.reportService.InvoiceRegister(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewInvoiceWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteInvoices(invoices); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("invoices-%s-%s.csv", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportPayments handles GET /api/v1/reports/payments.csv
func (h *ReportHandler) ExportPayments(c *gin.Context) {
	from, to, ok := dateRange(c)
	if !ok {
		return
	}

	payments, err := h.reportService.PaymentLedger(c.Request.Context(), from, to)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewPaymentWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WritePayments(payments); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	filename := fmt.Sprintf("payments-%s-%s.csv", from.Format("20060102"), to.Format("20060102"))
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// dateRange parses from/to query parameters (YYYY-MM-DD). Defaults to the
// current month when absent. The to date is inclusive.
func dateRange(c *gin.Context) (from, to time.Time, ok bool) {
	now := time.Now().UTC()
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = now

	if s := c.Query("from"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "from must be YYYY-MM-DD")
			return from, to, false
		}
		from = parsed
	}
	if s := c.Query("to"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must be YYYY-MM-DD")
			return from, to, false
		}
		to = parsed.Add(24*time.Hour - time.Nanosecond)
	}
	if to.Before(from) {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "to must not be before from")
		return from, to, false
	}
	return from, to, true
}
