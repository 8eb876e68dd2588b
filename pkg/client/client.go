// Package client provides a typed Go client for the DeepDock affinity HTTP
// API. All methods unwrap the APIResponse envelope and surface failures as
// *errors.AppError carrying the server's error code.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
	rtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/receptor"
)

const (
	defaultTimeout = 30 * time.Second
	apiPrefix      = "/api/v1"
)

// Client talks to one DeepDock API server.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithTimeout sets the per-request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// New creates a client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.InvalidParam("base URL must not be empty")
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "invalid base URL")
	}

	c := &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ─────────────────────────────────────────────────────────────────────────────
// Docking
// ─────────────────────────────────────────────────────────────────────────────

// Predict runs a synchronous affinity prediction.
func (c *Client) Predict(ctx context.Context, req dtypes.PredictRequest) (*dtypes.PredictResponse, error) {
	return do[dtypes.PredictResponse](ctx, c, http.MethodPost, "/dock/predict", req)
}

// SubmitJob queues an asynchronous docking job.
func (c *Client) SubmitJob(ctx context.Context, req dtypes.PredictRequest) (*dtypes.SubmitResponse, error) {
	return do[dtypes.SubmitResponse](ctx, c, http.MethodPost, "/dock/jobs", req)
}

// GetJob fetches one docking job by ID.
func (c *Client) GetJob(ctx context.Context, id common.ID) (*dtypes.JobDTO, error) {
	return do[dtypes.JobDTO](ctx, c, http.MethodGet, "/dock/jobs/"+url.PathEscape(string(id)), nil)
}

// ListJobs fetches a page of jobs, optionally filtered by status.
func (c *Client) ListJobs(ctx context.Context, status dtypes.JobStatus, page common.Pagination) (*dtypes.JobListResponse, error) {
	q := pageQuery(page)
	if status != "" {
		q.Set("status", string(status))
	}
	return do[dtypes.JobListResponse](ctx, c, http.MethodGet, "/dock/jobs?"+q.Encode(), nil)
}

// History fetches a page of persisted predictions, optionally filtered by
// receptor key.
func (c *Client) History(ctx context.Context, receptorKey string, page common.Pagination) (*dtypes.HistoryResponse, error) {
	q := pageQuery(page)
	if receptorKey != "" {
		q.Set("receptor", receptorKey)
	}
	return do[dtypes.HistoryResponse](ctx, c, http.MethodGet, "/dock/history?"+q.Encode(), nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Ligands
// ─────────────────────────────────────────────────────────────────────────────

// RegisterLigand validates and stores a ligand.
func (c *Client) RegisterLigand(ctx context.Context, req ltypes.RegisterRequest) (*ltypes.LigandDTO, error) {
	return do[ltypes.LigandDTO](ctx, c, http.MethodPost, "/ligands", req)
}

// GetLigand fetches one ligand by ID.
func (c *Client) GetLigand(ctx context.Context, id common.ID) (*ltypes.LigandDTO, error) {
	return do[ltypes.LigandDTO](ctx, c, http.MethodGet, "/ligands/"+url.PathEscape(string(id)), nil)
}

// ListLigands fetches a page of registered ligands.
func (c *Client) ListLigands(ctx context.Context, page common.Pagination) (*ltypes.ListResponse, error) {
	return do[ltypes.ListResponse](ctx, c, http.MethodGet, "/ligands?"+pageQuery(page).Encode(), nil)
}

// DescribeLigand estimates descriptors without registration.
func (c *Client) DescribeLigand(ctx context.Context, req ltypes.DescribeRequest) (*ltypes.DescribeResponse, error) {
	return do[ltypes.DescribeResponse](ctx, c, http.MethodPost, "/ligands/describe", req)
}

// DepictLigand renders a 2D PNG depiction of the structure. This is the one
// endpoint that returns raw bytes instead of the JSON envelope.
func (c *Client) DepictLigand(ctx context.Context, req ltypes.DescribeRequest) ([]byte, error) {
	encoded, err := json.Marshal(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode request body")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+apiPrefix+"/ligands/depict", bytes.NewReader(encoded))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to build request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to read response")
	}
	if resp.StatusCode != http.StatusOK {
		var envelope common.APIResponse[struct{}]
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != nil {
			return nil, errors.New(errors.ErrorCode(envelope.Error.Code), envelope.Error.Message).
				WithDetail("request_id=" + envelope.RequestID)
		}
		return nil, errors.New(errors.ErrCodeUnknown, "request failed with status "+strconv.Itoa(resp.StatusCode))
	}
	return raw, nil
}

// SimilarLigands runs a descriptor-vector similarity search.
func (c *Client) SimilarLigands(ctx context.Context, req ltypes.SimilarRequest) (*ltypes.SimilarResponse, error) {
	return do[ltypes.SimilarResponse](ctx, c, http.MethodPost, "/ligands/similar", req)
}

// ─────────────────────────────────────────────────────────────────────────────
// Receptors and structures
// ─────────────────────────────────────────────────────────────────────────────

// ListReceptors fetches the predefined receptor registry.
func (c *Client) ListReceptors(ctx context.Context) (*rtypes.ListResponse, error) {
	return do[rtypes.ListResponse](ctx, c, http.MethodGet, "/receptors", nil)
}

// GetReceptor fetches one predefined receptor by key.
func (c *Client) GetReceptor(ctx context.Context, key string) (*rtypes.ReceptorDTO, error) {
	return do[rtypes.ReceptorDTO](ctx, c, http.MethodGet, "/receptors/"+url.PathEscape(key), nil)
}

// StructureResult carries one resolved PDB structure.
type StructureResult struct {
	PDBID  string `json:"pdb_id"`
	Source string `json:"source"`
	Text   string `json:"text"`
}

// GetStructure resolves a PDB structure through the server's fallback chain.
func (c *Client) GetStructure(ctx context.Context, pdbID string) (*StructureResult, error) {
	return do[StructureResult](ctx, c, http.MethodGet, "/structures/"+url.PathEscape(pdbID), nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Exports
// ─────────────────────────────────────────────────────────────────────────────

// ExportArtifact mirrors the server-side export artifact descriptor.
type ExportArtifact struct {
	Key         string    `json:"key"`
	Format      string    `json:"format"`
	URL         string    `json:"url"`
	SizeBytes   int       `json:"size_bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}

// ExportHistoryCSV generates a CSV export of prediction history.
func (c *Client) ExportHistoryCSV(ctx context.Context, receptorKey string) (*ExportArtifact, error) {
	path := "/exports/csv"
	if receptorKey != "" {
		path += "?receptor=" + url.QueryEscape(receptorKey)
	}
	return do[ExportArtifact](ctx, c, http.MethodGet, path, nil)
}

// ExportJobReport generates a report artifact for a completed job.
func (c *Client) ExportJobReport(ctx context.Context, jobID common.ID) (*ExportArtifact, error) {
	return do[ExportArtifact](ctx, c, http.MethodGet, "/exports/report/"+url.PathEscape(string(jobID)), nil)
}

// ExportStructurePDB generates a PDB artifact for a structure.
func (c *Client) ExportStructurePDB(ctx context.Context, pdbID string) (*ExportArtifact, error) {
	return do[ExportArtifact](ctx, c, http.MethodGet, "/exports/pdb/"+url.PathEscape(pdbID), nil)
}

// ─────────────────────────────────────────────────────────────────────────────
// Transport plumbing
// ─────────────────────────────────────────────────────────────────────────────

// do executes one API call and unwraps the response envelope.
func do[T any](ctx context.Context, c *Client, method, path string, body interface{}) (*T, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeSerialization, "failed to encode request body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+apiPrefix+path, reader)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeBadRequest, "failed to build request")
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 32<<20))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeServiceUnavailable, "failed to read response")
	}

	var envelope common.APIResponse[T]
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSerialization,
			fmt.Sprintf("failed to decode response (status %d)", resp.StatusCode))
	}

	if !envelope.Success {
		if envelope.Error != nil {
			return nil, errors.New(errors.ErrorCode(envelope.Error.Code), envelope.Error.Message).
				WithDetail("request_id=" + envelope.RequestID)
		}
		return nil, errors.New(errors.ErrCodeUnknown, "request failed with status "+strconv.Itoa(resp.StatusCode))
	}
	return &envelope.Data, nil
}

func pageQuery(page common.Pagination) url.Values {
	q := url.Values{}
	if page.Page > 0 {
		q.Set("page", strconv.Itoa(page.Page))
	}
	if page.PageSize > 0 {
		q.Set("page_size", strconv.Itoa(page.PageSize))
	}
	return q
}
