package external

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/config"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

// AlphaFoldClient fetches predicted structures from the AlphaFold database.
// It is the second rung of the structure fallback chain, behind RCSB.
type AlphaFoldClient struct {
	baseURL string
	http    *http.Client
	logger  logging.Logger
}

// NewAlphaFoldClient builds a client from source configuration.
func NewAlphaFoldClient(cfg config.SourcesConfig, logger logging.Logger) *AlphaFoldClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &AlphaFoldClient{
		baseURL: cfg.AlphaFoldBaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.Named("alphafold"),
	}
}

type alphafoldEntry struct {
	PDBURL string `json:"pdbUrl"`
}

// FetchPredictedStructure resolves a UniProt accession to its predicted
// model and downloads the PDB text.
func (c *AlphaFoldClient) FetchPredictedStructure(ctx context.Context, uniprotID string) (string, error) {
	if uniprotID == "" {
		return "", errors.New(errors.ErrCodeValidation, "uniprot id is required")
	}

	endpoint := fmt.Sprintf("%s/api/prediction/%s", c.baseURL, url.PathEscape(uniprotID))
	start := time.Now()
	body, err := fetch(ctx, c.http, endpoint)
	if err != nil {
		c.logger.Debug("alphafold lookup failed",
			logging.String("uniprot_id", uniprotID),
			logging.Err(err))
		return "", err
	}

	var entries []alphafoldEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return "", errors.Wrap(err, errors.ErrCodeSourceParseError, "failed to parse alphafold response")
	}
	if len(entries) == 0 || entries[0].PDBURL == "" {
		return "", errors.New(errors.ErrCodeStructureNotFound, "no predicted model for accession").WithDetail(uniprotID)
	}

	pdb, err := fetch(ctx, c.http, entries[0].PDBURL)
	if err != nil {
		return "", err
	}
	c.logger.Debug("alphafold fetch",
		logging.String("uniprot_id", uniprotID),
		logging.Duration("took", time.Since(start)))
	return string(pdb), nil
}
