// Package receptor provides the predefined receptor registry and the custom
// receptor model.  Predefined targets carry a static binding-site residue
// table that the predictor samples interaction partners from; custom targets
// are defined by a FASTA sequence or a 4-character PDB identifier.
package receptor

import (
	"regexp"
	"sort"
	"strings"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	rtypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/receptor"
)

// CustomKey is the reserved receptor key for FASTA- or PDB-defined targets.
const CustomKey = "custom"

// Receptor describes one predefined docking target.
type Receptor struct {
	Key                 string
	Name                string
	PDBID               string
	Description         string
	BindingSiteResidues []string
}

// registry holds the predefined targets.  Residue tables are static so that
// predictions against a named target replay identically forever.
var registry = map[string]Receptor{
	"il-6": {
		Key:         "il-6",
		Name:        "Interleukin-6",
		PDBID:       "1ALU",
		Description: "Pro-inflammatory cytokine, site II receptor-binding interface",
		BindingSiteResidues: []string{
			"ARG30", "TYR31", "GLY35", "SER37", "ARG179", "ARG182", "GLN183",
		},
	},
	"il-10": {
		Key:         "il-10",
		Name:        "Interleukin-10",
		PDBID:       "2ILK",
		Description: "Anti-inflammatory cytokine, receptor-binding helix A/D face",
		BindingSiteResidues: []string{
			"PHE30", "LEU33", "ARG42", "LYS49", "GLN56", "ASP144",
		},
	},
	"tnf-alpha": {
		Key:         "tnf-alpha",
		Name:        "Tumor Necrosis Factor alpha",
		PDBID:       "2AZ5",
		Description: "Trimeric cytokine, small-molecule site at the dimer interface",
		BindingSiteResidues: []string{
			"LEU57", "TYR59", "SER60", "TYR119", "LEU120", "GLY121", "TYR151",
		},
	},
	"egfr": {
		Key:         "egfr",
		Name:        "Epidermal Growth Factor Receptor kinase domain",
		PDBID:       "1M17",
		Description: "Receptor tyrosine kinase, ATP-competitive pocket",
		BindingSiteResidues: []string{
			"LEU718", "VAL726", "ALA743", "LYS745", "MET793", "LEU844", "ASP855",
		},
	},
	"cox-2": {
		Key:         "cox-2",
		Name:        "Cyclooxygenase-2",
		PDBID:       "5KIR",
		Description: "Prostaglandin synthase, arachidonic-acid channel",
		BindingSiteResidues: []string{
			"HIS90", "ARG120", "VAL349", "TYR355", "TYR385", "SER530",
		},
	},
}

// Lookup returns the predefined receptor for a key.  Keys are matched
// case-insensitively after trimming.
func Lookup(key string) (Receptor, error) {
	k := strings.ToLower(strings.TrimSpace(key))
	r, ok := registry[k]
	if !ok {
		return Receptor{}, errors.New(errors.ErrCodeReceptorUnknown, "unknown receptor key").
			WithDetail("key=" + key)
	}
	return r, nil
}

// IsPredefined reports whether key names a registry target.
func IsPredefined(key string) bool {
	_, ok := registry[strings.ToLower(strings.TrimSpace(key))]
	return ok
}

// All returns every predefined receptor sorted by key.
func All() []Receptor {
	out := make([]Receptor, 0, len(registry))
	for _, r := range registry {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// DTO converts a Receptor to its transport representation.
func (r Receptor) DTO() rtypes.ReceptorDTO {
	return rtypes.ReceptorDTO{
		Key:                 r.Key,
		Name:                r.Name,
		PDBID:               r.PDBID,
		Description:         r.Description,
		BindingSiteResidues: append([]string(nil), r.BindingSiteResidues...),
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Custom receptor validation
// ─────────────────────────────────────────────────────────────────────────────

var (
	// The 20 standard one-letter amino-acid codes plus X for unknown residues.
	validFASTAChars = regexp.MustCompile(`^[ACDEFGHIKLMNPQRSTVWYX]+$`)

	validPDBID = regexp.MustCompile(`^[0-9][A-Za-z0-9]{3}$`)
)

// NormalizeFASTA strips an optional header line and all whitespace, upcases
// the sequence, and validates it against the amino-acid alphabet.
func NormalizeFASTA(fasta string) (string, error) {
	lines := strings.Split(fasta, "\n")
	var sb strings.Builder
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		sb.WriteString(strings.ToUpper(line))
	}
	seq := sb.String()
	if seq == "" {
		return "", errors.New(errors.ErrCodeReceptorInvalidFASTA, "FASTA sequence is empty")
	}
	if !validFASTAChars.MatchString(seq) {
		return "", errors.New(errors.ErrCodeReceptorInvalidFASTA, "FASTA contains non-amino-acid characters")
	}
	return seq, nil
}

// ValidatePDBID checks the 4-character Protein Data Bank identifier format
// and returns it upcased.
func ValidatePDBID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !validPDBID.MatchString(id) {
		return "", errors.New(errors.ErrCodeReceptorInvalidPDBID, "PDB identifier must be 4 characters starting with a digit").
			WithDetail("id=" + id)
	}
	return strings.ToUpper(id), nil
}
