// Package external wraps the public chemistry and structure databases the
// service pulls from. All failures here are soft: callers fall back to the
// next source in their chain rather than propagating the error to the user.
package external

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

const maxResponseBytes = 8 << 20

// PubChemClient resolves SMILES strings against the PubChem PUG REST API.
type PubChemClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewPubChemClient builds a client from source configuration.
func NewPubChemClient(cfg config.SourcesConfig, logger logging.Logger) *PubChemClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &PubChemClient{
		baseURL: cfg.PubChemBaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.Named("pubchem"),
	}
}

type pubchemCIDResponse struct {
	IdentifierList struct {
		CID []int64 `json:"CID"`
	} `json:"IdentifierList"`
}

// ResolveCID looks a SMILES string up and returns its PubChem compound ID.
func (c *PubChemClient) ResolveCID(ctx context.Context, smiles string) (int64, error) {
	if smiles == "" {
		return 0, errors.New(errors.ErrCodeValidation, "smiles is required")
	}

	endpoint := fmt.Sprintf("%s/compound/smiles/%s/cids/JSON", c.baseURL, url.PathEscape(smiles))
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}

	var resp pubchemCIDResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, errors.Wrap(err, errors.ErrCodeSourceParseError, "failed to parse pubchem response")
	}
	if len(resp.IdentifierList.CID) == 0 {
		return 0, errors.New(errors.ErrCodeStructureNotFound, "no compound found for smiles")
	}
	return resp.IdentifierList.CID[0], nil
}

// DepictionPNG fetches the 2D depiction of a molecule as PNG bytes.
func (c *PubChemClient) DepictionPNG(ctx context.Context, smiles string) ([]byte, error) {
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeValidation, "smiles is required")
	}
	endpoint := fmt.Sprintf("%s/compound/smiles/%s/PNG", c.baseURL, url.PathEscape(smiles))
	return c.get(ctx, endpoint)
}

func (c *PubChemClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	start := time.Now()
	body, err := fetch(ctx, c.http, endpoint)
	c.logger.Debug("pubchem fetch",
		logging.String("url", endpoint),
		logging.Duration("took", time.Since(start)),
		logging.Err(err))
	return body, err
}

// fetch performs a GET with the shared soft-failure semantics: 404 maps to
// ErrCodeStructureNotFound, 429 to ErrCodeSourceRateLimited, anything else
// non-2xx to ErrCodeSourceUnavailable.
func fetch(ctx context.Context, client *http.Client, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to build request")
	}
	req.Header.Set("Accept", "*/*")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceUnavailable, "source request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeStructureNotFound, "structure not found").WithDetail(endpoint)
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, errors.New(errors.ErrCodeSourceRateLimited, "source rate limited").WithDetail(endpoint)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, errors.New(errors.ErrCodeSourceUnavailable,
			fmt.Sprintf("source returned status %d", resp.StatusCode)).WithDetail(endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeSourceUnavailable, "failed to read source response")
	}
	return body, nil
}
