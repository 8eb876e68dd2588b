package handlers

import (
	"github.com/gin-gonic/gin"

	appexport "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/export"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// ExportHandler serves export-artifact generation endpoints.
type ExportHandler struct {
	service appexport.Service
}

func NewExportHandler(service appexport.Service) *ExportHandler {
	return &ExportHandler{service: service}
}

// HistoryCSV handles GET /api/v1/exports/csv.
func (h *ExportHandler) HistoryCSV(c *gin.Context) {
	artifact, err := h.service.HistoryCSV(c.Request.Context(), c.Query("receptor"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, artifact)
}

// JobReport handles GET /api/v1/exports/report/:job_id.
func (h *ExportHandler) JobReport(c *gin.Context) {
	artifact, err := h.service.JobReport(c.Request.Context(), common.ID(c.Param("job_id")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, artifact)
}

// StructurePDB handles GET /api/v1/exports/pdb/:pdb_id.
func (h *ExportHandler) StructurePDB(c *gin.Context) {
	artifact, err := h.service.StructurePDB(c.Request.Context(), c.Param("pdb_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, artifact)
}
