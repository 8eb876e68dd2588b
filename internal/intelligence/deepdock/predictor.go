// Package deepdock implements the deterministic affinity estimator.  The
// "model" is arithmetic over a hash-seeded pseudo-random stream blended with
// character-counting descriptors; it has no physical grounding and exists to
// produce plausible, perfectly reproducible demonstration output.
//
// The one hard guarantee is idempotence: for a fixed input triple the result
// is bit-identical across calls, processes, and hosts.  Everything about the
// draw order below is therefore part of the output contract and pinned by
// tests.
package deepdock

import (
	"math"
	"strconv"
	"strings"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/ligand"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/domain/receptor"
	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/seed"
	dtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/docking"
)

// Affinity is reported as pKd, larger = stronger.  The original demo mixed a
// kcal/mol convention into some outputs; this implementation uses pKd only.
const (
	PKdMin = 1.30
	PKdMax = 9.47

	ConfidenceMin = 70
	ConfidenceMax = 95

	InteractionsMin = 3
	InteractionsMax = 6

	DistanceMinAngstrom = 1.5
	DistanceMaxAngstrom = 4.5
)

// Descriptor nudge weights.  LogP pulls the score up, heavy molecules pull it
// down around a 350 Da pivot.
const (
	logPWeight    = 0.4
	weightPenalty = 0.002
	weightPivot   = 350.0
)

// fallbackResidues is the interaction partner pool when neither a registry
// table nor a FASTA sequence is available.
var fallbackResidues = []string{
	"ALA10", "GLY24", "LEU52", "SER77", "THR103", "VAL128",
}

// aminoThreeLetter maps one-letter amino-acid codes to three-letter residue
// prefixes for FASTA-derived interaction labels.
var aminoThreeLetter = map[byte]string{
	'A': "ALA", 'C': "CYS", 'D': "ASP", 'E': "GLU", 'F': "PHE",
	'G': "GLY", 'H': "HIS", 'I': "ILE", 'K': "LYS", 'L': "LEU",
	'M': "MET", 'N': "ASN", 'P': "PRO", 'Q': "GLN", 'R': "ARG",
	'S': "SER", 'T': "THR", 'V': "VAL", 'W': "TRP", 'Y': "TYR",
}

// Input is the prediction input triple.  Any strings are accepted; the
// predictor itself has no rejection path.
type Input struct {
	LigandSMILES  string
	ReceptorKey   string
	ReceptorFASTA string
}

// normalize trims and canonicalises the triple so that cosmetic whitespace or
// key casing does not change the seed.
func (in Input) normalize() Input {
	return Input{
		LigandSMILES:  strings.TrimSpace(in.LigandSMILES),
		ReceptorKey:   strings.ToLower(strings.TrimSpace(in.ReceptorKey)),
		ReceptorFASTA: strings.TrimSpace(in.ReceptorFASTA),
	}
}

// Seed returns the combined seed for the triple.  Parts are separated by
// "|" so that ("ab","c") and ("a","bc") derive different seeds.
func (in Input) Seed() int32 {
	n := in.normalize()
	return seed.Derive(n.LigandSMILES, "|", n.ReceptorKey, "|", n.ReceptorFASTA)
}

// Predict produces the full affinity result for the input triple.
//
// Draw order from the seeded stream: affinity base, confidence, interaction
// count, then per interaction residue pick, distance, strength.  Reordering
// these draws silently changes every prediction, so don't.
func Predict(in Input) dtypes.AffinityResult {
	n := in.normalize()
	stream := seed.NewStream(n.Seed())
	desc := ligand.EstimateDescriptors(n.LigandSMILES)

	raw := stream.Float(PKdMin, PKdMax)
	raw += logPWeight * desc.LogP
	raw -= weightPenalty * (desc.MolecularWeight - weightPivot)
	pkd := clamp(raw, PKdMin, PKdMax)

	confidence := stream.Int(ConfidenceMin, ConfidenceMax)
	count := stream.Int(InteractionsMin, InteractionsMax)

	pool := residuePool(n.ReceptorKey, n.ReceptorFASTA)
	interactions := make([]dtypes.Interaction, 0, count)
	for i := 0; i < count; i++ {
		res := pool.pick(stream)
		interactions = append(interactions, dtypes.Interaction{
			Type:     dtypes.InteractionTypes[i%len(dtypes.InteractionTypes)],
			Residue:  res,
			Distance: stream.Float(DistanceMinAngstrom, DistanceMaxAngstrom),
			Strength: stream.Next(),
		})
	}

	return dtypes.AffinityResult{
		PKd:          pkd,
		KdNanomolar:  math.Pow(10, 9-pkd),
		Confidence:   confidence,
		Descriptors:  desc,
		Interactions: interactions,
	}
}

// residueSource yields interaction partner labels for one receptor.
type residueSource struct {
	table    []string // registry or fallback table
	sequence string   // FASTA sequence, used when table is nil
}

func residuePool(receptorKey, fasta string) residueSource {
	if r, err := receptor.Lookup(receptorKey); err == nil {
		return residueSource{table: r.BindingSiteResidues}
	}
	if seq, err := receptor.NormalizeFASTA(fasta); err == nil {
		return residueSource{sequence: seq}
	}
	return residueSource{table: fallbackResidues}
}

// pick draws one residue label, consuming exactly one stream value.
func (p residueSource) pick(s *seed.Stream) string {
	if p.table != nil {
		return p.table[s.Pick(len(p.table))]
	}
	pos := s.Pick(len(p.sequence))
	code, ok := aminoThreeLetter[p.sequence[pos]]
	if !ok {
		code = "UNK"
	}
	return code + strconv.Itoa(pos+1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
