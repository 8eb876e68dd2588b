package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/application/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// DockingHandler serves prediction and job endpoints.
type DockingHandler struct {
	service appdock.Service
}

func NewDockingHandler(service appdock.Service) *DockingHandler {
	return &DockingHandler{service: service}
}

// Predict handles POST /api/v1/dock/predict.
func (h *DockingHandler) Predict(c *gin.Context) {
	var req dtypes.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.service.Predict(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// Submit handles POST /api/v1/dock/jobs.
func (h *DockingHandler) Submit(c *gin.Context) {
	var req dtypes.PredictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	resp, err := h.service.Submit(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respond(c, http.StatusAccepted, resp)
}

// GetJob handles GET /api/v1/dock/jobs/:id.
func (h *DockingHandler) GetJob(c *gin.Context) {
	job, err := h.service.GetJob(c.Request.Context(), common.ID(c.Param("id")))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, job)
}

// ListJobs handles GET /api/v1/dock/jobs.
func (h *DockingHandler) ListJobs(c *gin.Context) {
	status := dtypes.JobStatus(c.Query("status"))
	resp, err := h.service.ListJobs(c.Request.Context(), status, parsePagination(c))
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, resp)
}

// History handles GET /api/v1/dock/history.
func (h *DockingHandler) History(c *gin.Context) {
	page := parsePagination(c)
	records, total, err := h.service.History(c.Request.Context(), c.Query("receptor"), page)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]dtypes.HistoryEntry, len(records))
	for i, rec := range records {
		entries[i] = dtypes.HistoryEntry{
			ID:           rec.ID,
			StructureKey: rec.StructureKey,
			LigandSMILES: rec.LigandSMILES,
			ReceptorKey:  rec.ReceptorKey,
			Result:       rec.Result,
			CreatedAt:    rec.CreatedAt,
		}
	}
	respondOK(c, common.NewPageResponse(entries, total, page))
}
