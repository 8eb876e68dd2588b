// Package export generates downloadable artifacts: CSV prediction history,
// plaintext affinity reports, and PDB structure dumps. Artifacts land in
// object storage and are served through presigned URLs.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	domdock "github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/docking"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/external"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/logging"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/monitoring/prometheus"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/infrastructure/storage/minio"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// Format identifies an export artifact kind.
type Format string

const (
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
	FormatPDB    Format = "pdb"
)

// historyExportPageSize caps how much prediction history one CSV export pulls.
const historyExportPageSize = 500

// Artifact describes one generated export.
type Artifact struct {
	Key         string    `json:"key"`
	Format      Format    `json:"format"`
	URL         string    `json:"url"`
	SizeBytes   int       `json:"size_bytes"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Service defines the export operations.
type Service interface {
	// HistoryCSV exports prediction history as CSV, optionally filtered by
	// receptor key.
	HistoryCSV(ctx context.Context, receptorKey string) (*Artifact, error)

	// JobReport renders a human-readable report for a completed job.
	JobReport(ctx context.Context, jobID common.ID) (*Artifact, error)

	// StructurePDB exports the structure text for a PDB ID, walking the
	// source fallback chain.
	StructurePDB(ctx context.Context, pdbID string) (*Artifact, error)
}

type serviceImpl struct {
	predictions domdock.PredictionRepository
	jobs        domdock.JobRepository
	structures  *external.StructureResolver
	store       minio.ArtifactStore
	metrics     *prometheus.AppMetrics
	logger      logging.Logger
}

// NewService wires the export service. structures and metrics may be nil;
// StructurePDB then reports the source chain as unavailable.
func NewService(
	predictions domdock.PredictionRepository,
	jobs domdock.JobRepository,
	structures *external.StructureResolver,
	store minio.ArtifactStore,
	metrics *prometheus.AppMetrics,
	logger logging.Logger,
) Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &serviceImpl{
		predictions: predictions,
		jobs:        jobs,
		structures:  structures,
		store:       store,
		metrics:     metrics,
		logger:      logger.Named("export"),
	}
}

func (s *serviceImpl) HistoryCSV(ctx context.Context, receptorKey string) (*Artifact, error) {
	start := time.Now()
	records, _, err := s.predictions.List(ctx, receptorKey,
		common.Pagination{Page: 1, PageSize: historyExportPageSize})
	if err != nil {
		return s.finish(FormatCSV, nil, start, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{
		"created_at", "structure_key", "ligand_smiles", "receptor_key",
		"pkd", "kd_nanomolar", "confidence", "interactions",
	})
	for _, rec := range records {
		_ = w.Write([]string{
			rec.CreatedAt.UTC().Format(time.RFC3339),
			rec.StructureKey,
			rec.LigandSMILES,
			rec.ReceptorKey,
			strconv.FormatFloat(rec.Result.PKd, 'f', 4, 64),
			strconv.FormatFloat(rec.Result.KdNanomolar, 'f', 2, 64),
			strconv.Itoa(rec.Result.Confidence),
			strconv.Itoa(len(rec.Result.Interactions)),
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return s.finish(FormatCSV, nil, start, errors.Wrap(err, errors.ErrCodeExportFailed, "failed to write csv"))
	}

	key := artifactKey(FormatCSV, "predictions-"+nonEmpty(receptorKey, "all"))
	return s.upload(ctx, FormatCSV, key, buf.Bytes(), "text/csv", start)
}

func (s *serviceImpl) JobReport(ctx context.Context, jobID common.ID) (*Artifact, error) {
	start := time.Now()
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		return s.finish(FormatReport, nil, start, err)
	}
	if job.Status != dtypes.JobCompleted || job.Result == nil {
		return s.finish(FormatReport, nil, start, errors.New(errors.ErrCodeExportFailed,
			"report requires a completed job").WithDetail("status="+string(job.Status)))
	}

	text := renderReport(job)
	key := artifactKey(FormatReport, string(job.ID))
	return s.upload(ctx, FormatReport, key, []byte(text), "text/plain; charset=utf-8", start)
}

func (s *serviceImpl) StructurePDB(ctx context.Context, pdbID string) (*Artifact, error) {
	start := time.Now()
	if s.structures == nil {
		return s.finish(FormatPDB, nil, start,
			errors.New(errors.ErrCodeSourceUnavailable, "structure sources are not configured"))
	}

	resolved := s.structures.Resolve(ctx, pdbID)
	key := artifactKey(FormatPDB, strings.ToUpper(resolved.PDBID))
	return s.upload(ctx, FormatPDB, key, []byte(resolved.Text), "chemical/x-pdb", start)
}

func (s *serviceImpl) upload(ctx context.Context, format Format, key string, data []byte, contentType string, start time.Time) (*Artifact, error) {
	url, err := s.store.Put(ctx, key, data, contentType)
	if err != nil {
		return s.finish(format, nil, start, err)
	}
	return s.finish(format, &Artifact{
		Key:         key,
		Format:      format,
		URL:         url,
		SizeBytes:   len(data),
		GeneratedAt: time.Now().UTC(),
	}, start, nil)
}

// finish records export metrics on both paths and passes the outcome through.
func (s *serviceImpl) finish(format Format, artifact *Artifact, start time.Time, err error) (*Artifact, error) {
	if s.metrics != nil {
		status := "ok"
		if err != nil {
			status = "error"
		}
		s.metrics.ExportsTotal.WithLabelValues(string(format), status).Inc()
		s.metrics.ExportDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	}
	if err != nil {
		s.logger.Warn("export failed",
			logging.String("format", string(format)),
			logging.Err(err))
		return nil, err
	}
	return artifact, nil
}

func artifactKey(format Format, stem string) string {
	return fmt.Sprintf("exports/%s/%s-%s.%s",
		format, stem, time.Now().UTC().Format("20060102T150405Z"), extension(format))
}

func extension(format Format) string {
	switch format {
	case FormatCSV:
		return "csv"
	case FormatPDB:
		return "pdb"
	default:
		return "txt"
	}
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func renderReport(job *domdock.Job) string {
	r := job.Result
	var b strings.Builder
	b.WriteString("DeepDock Affinity Report\n")
	b.WriteString("========================\n\n")
	fmt.Fprintf(&b, "Job ID:        %s\n", job.ID)
	fmt.Fprintf(&b, "Ligand SMILES: %s\n", job.LigandSMILES)
	fmt.Fprintf(&b, "Receptor:      %s\n", job.ReceptorKey)
	fmt.Fprintf(&b, "Finished:      %s\n\n", job.FinishedAt.UTC().Format(time.RFC3339))

	fmt.Fprintf(&b, "Predicted pKd: %.4f\n", r.PKd)
	fmt.Fprintf(&b, "Implied Kd:    %.2f nM\n", r.KdNanomolar)
	fmt.Fprintf(&b, "Confidence:    %d%%\n\n", r.Confidence)

	b.WriteString("Estimated descriptors\n")
	fmt.Fprintf(&b, "  Molecular weight:  %.3f g/mol\n", r.Descriptors.MolecularWeight)
	fmt.Fprintf(&b, "  LogP:              %.3f\n", r.Descriptors.LogP)
	fmt.Fprintf(&b, "  TPSA:              %.1f A^2\n", r.Descriptors.TPSA)
	fmt.Fprintf(&b, "  H-bond donors:     %d\n", r.Descriptors.HBondDonors)
	fmt.Fprintf(&b, "  H-bond acceptors:  %d\n", r.Descriptors.HBondAcceptors)
	fmt.Fprintf(&b, "  Rotatable bonds:   %d\n", r.Descriptors.RotatableBonds)
	fmt.Fprintf(&b, "  Aromatic rings:    %d\n\n", r.Descriptors.AromaticRings)

	b.WriteString("Predicted interactions\n")
	for _, it := range r.Interactions {
		fmt.Fprintf(&b, "  %-14s %-8s %.2f A  strength %.3f\n",
			it.Type, it.Residue, it.Distance, it.Strength)
	}
	return b.String()
}
