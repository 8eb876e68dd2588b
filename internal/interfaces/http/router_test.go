package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/deepdock"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/interfaces/http/handlers"
	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// fakeDockingService answers Predict deterministically and errors elsewhere.
type fakeDockingService struct {
	predictErr error
}

func (f *fakeDockingService) Predict(_ context.Context, req dtypes.PredictRequest) (*dtypes.PredictResponse, error) {
	if f.predictErr != nil {
		return nil, f.predictErr
	}
	result := deepdock.Predict(deepdock.Input{
		LigandSMILES:  req.LigandSMILES,
		ReceptorKey:   req.ReceptorKey,
		ReceptorFASTA: req.ReceptorFASTA,
	})
	return &dtypes.PredictResponse{
		LigandSMILES: req.LigandSMILES,
		ReceptorKey:  req.ReceptorKey,
		Result:       result,
	}, nil
}

func (f *fakeDockingService) Submit(_ context.Context, _ dtypes.PredictRequest) (*dtypes.SubmitResponse, error) {
	return &dtypes.SubmitResponse{JobID: common.NewID(), Status: dtypes.JobPending}, nil
}

func (f *fakeDockingService) GetJob(_ context.Context, _ common.ID) (*dtypes.JobDTO, error) {
	return nil, apperrors.New(apperrors.ErrCodeJobNotFound, "docking job not found")
}

func (f *fakeDockingService) ListJobs(_ context.Context, _ dtypes.JobStatus, page common.Pagination) (*dtypes.JobListResponse, error) {
	resp := common.NewPageResponse([]dtypes.JobDTO{}, 0, page)
	return &resp, nil
}

func (f *fakeDockingService) History(_ context.Context, _ string, _ common.Pagination) ([]*domdock.PredictionRecord, int64, error) {
	return nil, 0, nil
}

type fakeLigandService struct{}

func (fakeLigandService) Register(_ context.Context, req ltypes.RegisterRequest) (*ltypes.LigandDTO, error) {
	return &ltypes.LigandDTO{SMILES: strings.TrimSpace(req.SMILES), StructureKey: "LIG-2A7E92A3"}, nil
}

func (fakeLigandService) Describe(_ context.Context, req ltypes.DescribeRequest) (*ltypes.DescribeResponse, error) {
	return &ltypes.DescribeResponse{SMILES: req.SMILES}, nil
}

func (fakeLigandService) Get(_ context.Context, _ common.ID) (*ltypes.LigandDTO, error) {
	return nil, apperrors.New(apperrors.ErrCodeLigandNotFound, "ligand not found")
}

func (fakeLigandService) List(_ context.Context, page common.Pagination) (*ltypes.ListResponse, error) {
	resp := common.NewPageResponse([]ltypes.LigandDTO{}, 0, page)
	return &resp, nil
}

func (fakeLigandService) Similar(_ context.Context, _ ltypes.SimilarRequest) (*ltypes.SimilarResponse, error) {
	return &ltypes.SimilarResponse{}, nil
}

func (fakeLigandService) Depict(_ context.Context, _ ltypes.DescribeRequest) ([]byte, error) {
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(_ context.Context) error { return p.err }

func testRouter(t *testing.T, mutate func(*RouterConfig)) *gin.Engine {
	t.Helper()
	cfg := RouterConfig{
		Server:   config.ServerConfig{Mode: "test"},
		Docking:  handlers.NewDockingHandler(&fakeDockingService{}),
		Ligand:   handlers.NewLigandHandler(fakeLigandService{}),
		Receptor: handlers.NewReceptorHandler(),
	}
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRouter(cfg)
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPredictEndpoint(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/dock/predict",
		`{"ligand_smiles":"CCO","receptor_key":"il-6"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	var resp common.APIResponse[dtypes.PredictResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.InDelta(t, 3.0807721508, resp.Data.Result.PKd, 1e-9)
	assert.Equal(t, 74, resp.Data.Result.Confidence)
}

func TestPredictEndpoint_MissingBodyFields(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/dock/predict", `{"ligand_smiles":"CCO"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, apperrors.ErrCodeBadRequest.String(), resp.Error.Code)
}

func TestPredictEndpoint_ServiceErrorMapsToStatus(t *testing.T) {
	r := testRouter(t, func(cfg *RouterConfig) {
		cfg.Docking = handlers.NewDockingHandler(&fakeDockingService{
			predictErr: apperrors.New(apperrors.ErrCodeReceptorUnknown, "unknown receptor key"),
		})
	})

	w := doJSON(r, http.MethodPost, "/api/v1/dock/predict",
		`{"ligand_smiles":"CCO","receptor_key":"nope"}`)
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp common.APIResponse[any]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, apperrors.ErrCodeReceptorUnknown.String(), resp.Error.Code)
}

func TestSubmitEndpoint_Accepted(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/dock/jobs",
		`{"ligand_smiles":"CCO","receptor_key":"il-6"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp common.APIResponse[dtypes.SubmitResponse]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dtypes.JobPending, resp.Data.Status)
}

func TestReceptorEndpoints(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodGet, "/api/v1/receptors", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "il-6")
	assert.Contains(t, w.Body.String(), "5KIR")

	w = doJSON(r, http.MethodGet, "/api/v1/receptors/egfr", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1M17")

	w = doJSON(r, http.MethodGet, "/api/v1/receptors/unknown", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLigandRegisterEndpoint_Created(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/ligands", `{"smiles":"CCO"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "LIG-2A7E92A3")
}

func TestLigandDepictEndpoint_ReturnsPNG(t *testing.T) {
	r := testRouter(t, nil)

	w := doJSON(r, http.MethodPost, "/api/v1/ligands/depict", `{"smiles":"CCO"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes())
}

func TestHealthEndpoints(t *testing.T) {
	r := testRouter(t, func(cfg *RouterConfig) {
		cfg.Health = handlers.NewHealthHandler(map[string]handlers.Pinger{
			"postgres": fakePinger{},
			"redis":    fakePinger{err: assert.AnError},
		}, nil)
	})

	w := doJSON(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/readyz", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, common.HealthDown, resp.Status)
	require.Len(t, resp.Components, 2)
	assert.Equal(t, "postgres", resp.Components[0].Name)
	assert.Equal(t, common.HealthUp, resp.Components[0].Status)
	assert.Equal(t, common.HealthDown, resp.Components[1].Status)
}

func TestRateLimitAppliedToAPIButNotHealth(t *testing.T) {
	r := testRouter(t, func(cfg *RouterConfig) {
		cfg.Server.RateLimitRPS = 0.001
		cfg.Server.RateLimitBurst = 1
		cfg.Health = handlers.NewHealthHandler(nil, nil)
	})

	w := doJSON(r, http.MethodGet, "/api/v1/receptors", "")
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodGet, "/api/v1/receptors", "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), apperrors.ErrCodeTooManyRequests.String())

	// Health probes bypass the limiter.
	w = doJSON(r, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDPropagation(t *testing.T) {
	r := testRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/receptors", nil)
	req.Header.Set("X-Request-ID", "req-12345")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "req-12345", w.Header().Get("X-Request-ID"))

	var resp common.APIResponse[json.RawMessage]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "req-12345", resp.RequestID)
}
