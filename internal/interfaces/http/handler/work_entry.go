package handler

import (
	billingapp "github.com/factuur/backend/internal/application/billing"
	"github.com/factuur/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// WorkEntryHandler handles work ledger endpoints
type WorkEntryHandler struct {
	BaseHandler
	workEntryService *billingapp.WorkEntryService
}

// NewWorkEntryHandler creates a new WorkEntryHandler
func NewWorkEntryHandler(workEntryService *billingapp.WorkEntryService) *WorkEntryHandler {
	return &WorkEntryHandler{workEntryService: workEntryService}
}

// RegisterRoutes registers work entry routes
func (h *WorkEntryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	entries := rg.Group("/work-entries")
	{
		entries.POST("", h.Create)
		entries.GET("", h.List)
	}
}

// Create records one billable fact
func (h *WorkEntryHandler) Create(c *gin.Context) {
	var req billingapp.CreateWorkEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.workEntryService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns one contractor's entries for an ISO week
func (h *WorkEntryHandler) List(c *gin.Context) {
	var filter billingapp.WorkEntryListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	responses, err := h.workEntryService.List(c.Request.Context(), middleware.GetPrincipal(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessList(c, responses, len(responses))
}
