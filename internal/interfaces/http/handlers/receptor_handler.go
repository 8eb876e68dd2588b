package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/receptor"
	rtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/receptor"
)

// ReceptorHandler serves the static receptor registry. The registry is
// compiled in, so this handler reads the domain package directly with no
// application service in between.
type ReceptorHandler struct{}

func NewReceptorHandler() *ReceptorHandler {
	return &ReceptorHandler{}
}

// List handles GET /api/v1/receptors.
func (h *ReceptorHandler) List(c *gin.Context) {
	all := receptor.All()
	dtos := make([]rtypes.ReceptorDTO, len(all))
	for i, r := range all {
		dtos[i] = r.DTO()
	}
	respondOK(c, rtypes.ListResponse{Receptors: dtos})
}

// Get handles GET /api/v1/receptors/:key.
func (h *ReceptorHandler) Get(c *gin.Context) {
	r, err := receptor.Lookup(c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, r.DTO())
}
