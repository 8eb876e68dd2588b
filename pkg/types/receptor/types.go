// Package receptor defines the receptor-domain DTOs shared by the API,
// client, and CLI layers.
package receptor

// ReceptorDTO describes one predefined receptor target.
type ReceptorDTO struct {
	// Key is the registry key, e.g. "il-6".
	Key string `json:"key"`

	// Name is the human-readable target name.
	Name string `json:"name"`

	// PDBID is the 4-character Protein Data Bank identifier of the reference
	// structure.
	PDBID string `json:"pdb_id"`

	// Description is a one-line summary of the target's biological role.
	Description string `json:"description"`

	// BindingSiteResidues lists the residue labels the predictor samples
	// interaction partners from.
	BindingSiteResidues []string `json:"binding_site_residues"`
}

// ListResponse is the output DTO for receptor listing.
type ListResponse struct {
	Receptors []ReceptorDTO `json:"receptors"`
}
