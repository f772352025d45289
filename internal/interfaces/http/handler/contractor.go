package handler

import (
	identityapp "github.com/factuur/backend/internal/application/identity"
	"github.com/factuur/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ContractorHandler handles contractor management endpoints
type ContractorHandler struct {
	BaseHandler
	contractorService *identityapp.ContractorService
}

// NewContractorHandler creates a new ContractorHandler
func NewContractorHandler(contractorService *identityapp.ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorService: contractorService}
}

// RegisterRoutes registers contractor routes
func (h *ContractorHandler) RegisterRoutes(rg *gin.RouterGroup) {
	contractors := rg.Group("/contractors")
	{
		contractors.POST("", h.Create)
		contractors.GET("", h.List)
	}
}

// Create onboards a contractor, optionally with a login account
func (h *ContractorHandler) Create(c *gin.Context) {
	var req identityapp.CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.contractorService.Create(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, resp)
}

// List returns the tenant's contractors
func (h *ContractorHandler) List(c *gin.Context) {
	responses, err := h.contractorService.List(c.Request.Context(), middleware.GetPrincipal(c))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.SuccessList(c, responses, len(responses))
}
