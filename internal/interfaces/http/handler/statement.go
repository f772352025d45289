package handler

import (
	billingapp "github.com/factuur/backend/internal/application/billing"
	"github.com/factuur/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// StatementHandler handles weekly statement and invoice endpoints
type StatementHandler struct {
	BaseHandler
	statementService *billingapp.StatementService
	invoiceService   *billingapp.InvoiceService
}

// NewStatementHandler creates a new StatementHandler
func NewStatementHandler(statementService *billingapp.StatementService, invoiceService *billingapp.InvoiceService) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		invoiceService:   invoiceService,
	}
}

// RegisterRoutes registers statement and invoice routes
func (h *StatementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	statements := rg.Group("/statements")
	{
		statements.POST("/generate", h.Generate)
		statements.GET("", h.List)
		statements.GET("/:id", h.Get)
		statements.PATCH("/:id/status", h.UpdateStatus)
		statements.POST("/:id/invoice", h.IssueInvoice)
		statements.GET("/:id/invoice", h.GetInvoice)
	}
}

// Generate aggregates work entries into weekly statements
func (h *StatementHandler) Generate(c *gin.Context) {
	// An empty body means the whole tenant for the current week.
	var req billingapp.GenerateStatementsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.BindError(c, err)
			return
		}
	}

	principal := middleware.GetPrincipal(c)

	if req.ContractorID != nil {
		resp, err := h.statementService.GenerateOne(c.Request.Context(), principal, *req.ContractorID, req.Year, req.Week)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, billingapp.GenerateStatementsResult{Statements: []billingapp.StatementResponse{*resp}})
		return
	}

	result, err := h.statementService.GenerateForTenant(c.Request.Context(), principal, req.Year, req.Week)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, *result)
}

// List returns the tenant's statements
func (h *StatementHandler) List(c *gin.Context) {
	var filter billingapp.StatementListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	responses, err := h.statementService.List(c.Request.Context(), middleware.GetPrincipal(c), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessList(c, responses, len(responses))
}

// Get returns one statement
func (h *StatementHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid statement ID")
		return
	}

	resp, err := h.statementService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// UpdateStatus moves a statement forward in its lifecycle
func (h *StatementHandler) UpdateStatus(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid statement ID")
		return
	}

	var req billingapp.UpdateStatementStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.statementService.UpdateStatus(c.Request.Context(), middleware.GetPrincipal(c), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// IssueInvoice issues the legal invoice for a statement, idempotently
func (h *StatementHandler) IssueInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid statement ID")
		return
	}

	resp, err := h.invoiceService.Issue(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	if resp.IsExisting {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// GetInvoice returns the invoice issued for a statement
func (h *StatementHandler) GetInvoice(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid statement ID")
		return
	}

	resp, err := h.invoiceService.Get(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
