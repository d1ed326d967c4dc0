package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"maktab/internal/domain"
	"maktab/internal/middleware"
	"maktab/internal/service"
)

// ApplicationHandler handles application workflow endpoints.
type ApplicationHandler struct {
	applicationService service.ApplicationService
}

// NewApplicationHandler creates a new ApplicationHandler.
func NewApplicationHandler(applicationService service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Create handles POST /api/v1/applications
func (h *ApplicationHandler) Create(c *gin.Context) {
	var input service.ApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	app, err := h.applicationService.Create(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, app)
}

// List handles GET /api/v1/applications
func (h *ApplicationHandler) List(c *gin.Context) {
	offset, limit := pagination(c)
	status := domain.ApplicationStatus(c.Query("status"))

	apps, total, err := h.applicationService.List(c.Request.Context(), status, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, apps, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/applications/:id
func (h *ApplicationHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	app, err := h.applicationService.GetByID(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Update handles PUT /api/v1/applications/:id
func (h *ApplicationHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	var input service.ApplicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	app, err := h.applicationService.Update(c.Request.Context(), id, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Delete handles DELETE /api/v1/applications/:id
func (h *ApplicationHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	if err := h.applicationService.Delete(c.Request.Context(), id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "application deleted"})
}

// CompleteStep handles POST /api/v1/applications/:id/steps
func (h *ApplicationHandler) CompleteStep(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	var input service.CompleteStepInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	app, err := h.applicationService.CompleteStep(c.Request.Context(), id, input, middleware.GetUsername(c))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Complete handles POST /api/v1/applications/:id/complete
func (h *ApplicationHandler) Complete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid application ID")
		return
	}

	app, err := h.applicationService.MarkCompleted(c.Request.Context(), id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, app)
}

// Steps handles GET /api/v1/applications/types/:type/steps
func (h *ApplicationHandler) Steps(c *gin.Context) {
	appType := domain.ApplicationType(c.Param("type"))

	steps := h.applicationService.Steps(appType)
	if steps == nil && appType != domain.AppTypeOther {
		RespondError(c, http.StatusNotFound, "NOT_FOUND", "unknown application type")
		return
	}

	RespondOK(c, gin.H{"application_type": appType, "steps": steps})
}
