// Package ligand defines the ligand-domain Data Transfer Objects, enumerations,
// and request/response structures shared by every layer of the DeepDock affinity
// service.  No domain logic lives here — only plain data types that are safe to
// import from any layer without creating circular dependencies.
package ligand

import (
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
)

// ─────────────────────────────────────────────────────────────────────────────
// DescriptorSet — estimated physicochemical descriptor set
// ─────────────────────────────────────────────────────────────────────────────

// DescriptorSet holds the physicochemical descriptors estimated for a ligand
// from its SMILES text.  The values come from character-level composition
// counting, not from a chemistry toolkit, so they are approximations suitable
// for ranking and display rather than for quantitative modelling.
type DescriptorSet struct {
	// MolecularWeight is the estimated molecular weight in g/mol.
	MolecularWeight float64 `json:"molecular_weight"`

	// LogP is the estimated octanol-water partition coefficient.
	LogP float64 `json:"log_p"`

	// TPSA is the estimated topological polar surface area in Å².
	TPSA float64 `json:"tpsa"`

	// HBondDonors is the estimated count of hydrogen-bond donor groups.
	HBondDonors int `json:"h_bond_donors"`

	// HBondAcceptors is the estimated count of hydrogen-bond acceptor groups.
	HBondAcceptors int `json:"h_bond_acceptors"`

	// RotatableBonds is the estimated count of rotatable bonds.
	RotatableBonds int `json:"rotatable_bonds"`

	// AromaticRings is the estimated count of aromatic ring systems.
	AromaticRings int `json:"aromatic_rings"`
}

// Vector returns the descriptor values as a flat float32 slice in a fixed
// field order, suitable for vector indexing and similarity search.
func (d DescriptorSet) Vector() []float32 {
	return []float32{
		float32(d.MolecularWeight),
		float32(d.LogP),
		float32(d.TPSA),
		float32(d.HBondDonors),
		float32(d.HBondAcceptors),
		float32(d.RotatableBonds),
		float32(d.AromaticRings),
	}
}

// VectorDim is the dimensionality of the descriptor vector produced by
// DescriptorSet.Vector.  The Milvus collection schema depends on this value.
const VectorDim = 7

// ─────────────────────────────────────────────────────────────────────────────
// LigandDTO — cross-layer data transfer object for a ligand
// ─────────────────────────────────────────────────────────────────────────────

// LigandDTO is the canonical ligand representation passed between the
// application, interface, and client layers.
type LigandDTO struct {
	common.BaseEntity

	// SMILES is the whitespace-trimmed SMILES string as registered.
	SMILES string `json:"smiles"`

	// StructureKey is the deterministic hash-derived key for the SMILES text,
	// used for de-duplication and as the cache key component.
	StructureKey string `json:"structure_key"`

	// Name is an optional display name supplied at registration.
	Name string `json:"name,omitempty"`

	// Descriptors contains the estimated physicochemical descriptor set.
	Descriptors DescriptorSet `json:"descriptors"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Request / response types
// ─────────────────────────────────────────────────────────────────────────────

// RegisterRequest is the input DTO for ligand registration.
type RegisterRequest struct {
	SMILES string `json:"smiles" binding:"required"`
	Name   string `json:"name,omitempty"`
}

// DescribeRequest is the input DTO for descriptor estimation without
// registration.
type DescribeRequest struct {
	SMILES string `json:"smiles" binding:"required"`
}

// DescribeResponse is the output DTO for descriptor estimation. CID is the
// PubChem compound ID and is zero when the lookup is disabled or fails.
type DescribeResponse struct {
	SMILES      string        `json:"smiles"`
	Descriptors DescriptorSet `json:"descriptors"`
	CID         int64         `json:"cid,omitempty"`
}

// SimilarRequest is the input DTO for descriptor-vector similarity search.
// TopK defaults to 10 in the service layer when zero.
type SimilarRequest struct {
	SMILES string `json:"smiles" binding:"required"`
	TopK   int    `json:"top_k,omitempty"`
}

// SimilarHit is one result of a similarity search, pairing a registered
// ligand with its vector-space score (higher is more similar).
type SimilarHit struct {
	Ligand LigandDTO `json:"ligand"`
	Score  float32   `json:"score"`
}

// SimilarResponse is the output DTO for similarity search.
type SimilarResponse struct {
	Query string       `json:"query"`
	Hits  []SimilarHit `json:"hits"`
}

// ListResponse is the paginated output DTO for ligand listing.
type ListResponse = common.PageResponse[LigandDTO]
