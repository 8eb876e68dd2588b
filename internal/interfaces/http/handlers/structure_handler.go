package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/receptor"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/external"
)

// StructureResponse carries one resolved PDB structure.
type StructureResponse struct {
	PDBID  string `json:"pdb_id"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// StructureHandler serves structure resolution through the RCSB → AlphaFold →
// placeholder fallback chain.
type StructureHandler struct {
	resolver *external.StructureResolver
}

func NewStructureHandler(resolver *external.StructureResolver) *StructureHandler {
	return &StructureHandler{resolver: resolver}
}

// Get handles GET /api/v1/structures/:pdb_id.
func (h *StructureHandler) Get(c *gin.Context) {
	id, err := receptor.ValidatePDBID(c.Param("pdb_id"))
	if err != nil {
		respondError(c, err)
		return
	}

	resolved := h.resolver.Resolve(c.Request.Context(), id)
	respondOK(c, StructureResponse{
		PDBID:  resolved.PDBID,
		Source: string(resolved.Source),
		Text:   resolved.Text,
	})
}
