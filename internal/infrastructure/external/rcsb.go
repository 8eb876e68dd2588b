package external

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/receptor"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

// RCSBClient downloads experimental structures from the RCSB PDB file server.
type RCSBClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewRCSBClient builds a client from source configuration.
func NewRCSBClient(cfg config.SourcesConfig, logger logging.Logger) *RCSBClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &RCSBClient{
		baseURL: cfg.RCSBBaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.Named("rcsb"),
	}
}

// FetchStructure downloads the PDB text for a four-character PDB ID.
func (c *RCSBClient) FetchStructure(ctx context.Context, pdbID string) (string, error) {
	normalized, err := receptor.ValidatePDBID(pdbID)
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/download/%s.pdb", c.baseURL, normalized)
	start := time.Now()
	body, err := fetch(ctx, c.http, endpoint)
	c.logger.Debug("rcsb fetch",
		logging.String("pdb_id", pdbID),
		logging.Duration("took", time.Since(start)),
		logging.Err(err))
	if err != nil {
		return "", err
	}

	text := string(body)
	if !looksLikePDB(text) {
		return "", errors.New(errors.ErrCodeSourceParseError, "response is not a PDB document").WithDetail(pdbID)
	}
	return text, nil
}

// looksLikePDB applies a cheap sanity check before handing the payload on.
func looksLikePDB(text string) bool {
	trimmed := strings.TrimLeft(text, " \t\r\n")
	for _, prefix := range []string{"HEADER", "ATOM", "HETATM", "REMARK", "TITLE", "MODEL"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
