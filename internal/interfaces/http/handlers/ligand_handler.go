package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	applig "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// LigandHandler serves ligand registry and similarity endpoints.
type LigandHandler struct {
	service applig.Service
}

func NewLigandHandler(service applig.Service) *LigandHandler {
	return &LigandHandler{service: service}
}

// Register handles POST /api/v1/ligands.
func (h *LigandHandler) Register(c *gin.Context) {
	var req ltypes.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	dto, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusCreated, dto)
}

// Get handles GET /api/v1/ligands/:id.
func (h *LigandHandler) Get(c *gin.Context) {
	dto, err := h.service.Get(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, dto)
}

// List handles GET /api/v1/ligands.
func (h *LigandHandler) List(c *gin.Context) {
	resp, err := h.service.List(c.Request.Context(), parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Describe handles POST /api/v1/ligands/describe.
func (h *LigandHandler) Describe(c *gin.Context) {
	var req ltypes.DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.service.Describe(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Depict handles POST /api/v1/ligands/depict. The response body is the raw
// PNG rather than the JSON envelope.
func (h *LigandHandler) Depict(c *gin.Context) {
	var req ltypes.DescribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	png, err := h.service.Depict(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Similar handles POST /api/v1/ligands/similar.
func (h *LigandHandler) Similar(c *gin.Context) {
	var req ltypes.SimilarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.service.Similar(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}
