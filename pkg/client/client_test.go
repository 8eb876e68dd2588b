package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

func TestNew_RejectsEmptyBaseURL(t *testing.T) {
	_, err := New("  ")
	require.Error(t, err)
}

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/dock/predict", r.URL.Path)

		var req dtypes.PredictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "CCO", req.LigandSMILES)

		resp := common.NewSuccessResponse(dtypes.PredictResponse{
			LigandSMILES: req.LigandSMILES,
			ReceptorKey:  req.ReceptorKey,
			Result:       dtypes.AffinityResult{PKd: 3.08, Confidence: 74},
		})
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.Predict(context.Background(), dtypes.PredictRequest{
		LigandSMILES: "CCO",
		ReceptorKey:  "il-6",
	})
	require.NoError(t, err)
	assert.Equal(t, 74, resp.Result.Confidence)
	assert.InDelta(t, 3.08, resp.Result.PKd, 1e-9)
}

func TestErrorEnvelopeBecomesAppError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := common.NewErrorResponse(
			apperrors.ErrCodeReceptorUnknown.String(), "unknown receptor key")
		resp.RequestID = "req-1"
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.Predict(context.Background(), dtypes.PredictRequest{
		LigandSMILES: "CCO",
		ReceptorKey:  "nope",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeReceptorUnknown, apperrors.GetCode(err))
	assert.Contains(t, err.Error(), "req-1")
}

func TestListJobs_QueryParameters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/dock/jobs", r.URL.Path)
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "50", r.URL.Query().Get("page_size"))

		resp := common.NewSuccessResponse(common.NewPageResponse([]dtypes.JobDTO{}, 0,
			common.Pagination{Page: 2, PageSize: 50}))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	resp, err := c.ListJobs(context.Background(), dtypes.JobCompleted,
		common.Pagination{Page: 2, PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Page)
}

func TestDepictLigand_RawBytes(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/ligands/depict", r.URL.Path)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(png)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	got, err := c.DepictLigand(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestDepictLigand_ErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		resp := common.NewErrorResponse(
			apperrors.ErrCodeSourceUnavailable.String(), "depiction source is not configured")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.DepictLigand(context.Background(), ltypes.DescribeRequest{SMILES: "CCO"})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeSourceUnavailable, apperrors.GetCode(err))
}

func TestServerUnreachable(t *testing.T) {
	c, err := New("http://127.0.0.1:1")
	require.NoError(t, err)

	_, err = c.ListReceptors(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeServiceUnavailable, apperrors.GetCode(err))
}
