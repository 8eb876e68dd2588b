// Package ligand provides the ligand aggregate root and the character-counting
// descriptor estimator.  A Ligand wraps a SMILES string treated as opaque
// text: validation is a permissive character-class check plus bracket
// matching, not a chemical parse.
package ligand

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/amaanarif2512best/deepdock-affinity-ai/internal/intelligence/seed"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/common"
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// ─────────────────────────────────────────────────────────────────────────────
// Domain Events
// ─────────────────────────────────────────────────────────────────────────────

// DomainEvent is a marker interface for ligand-related domain events.
type DomainEvent interface {
	EventType() string
}

// LigandRegisteredEvent is published when a new ligand is registered.
type LigandRegisteredEvent struct {
	LigandID     common.ID
	StructureKey string
	SMILES       string
}

func (e LigandRegisteredEvent) EventType() string { return "ligand.registered" }

// ─────────────────────────────────────────────────────────────────────────────
// Ligand Aggregate Root
// ─────────────────────────────────────────────────────────────────────────────

// validSMILESChars defines the allowed character set for SMILES notation.
// This is a simplified check; full SMILES validation requires a parser.
var validSMILESChars = regexp.MustCompile(`^[A-Za-z0-9@+\-\[\]()=#/\\%.*]+$`)

// Ligand is the aggregate root for a registered small molecule.
type Ligand struct {
	common.BaseEntity

	// SMILES is the whitespace-trimmed input text.
	SMILES string `json:"smiles"`

	// StructureKey is the deterministic hash-derived key for SMILES, used for
	// de-duplication and as a cache key component.
	StructureKey string `json:"structure_key"`

	Name string `json:"name,omitempty"`

	Descriptors ltypes.DescriptorSet `json:"descriptors"`

	// Domain events, not persisted, cleared after publishing.
	events []DomainEvent
}

// NewLigand constructs a Ligand from raw SMILES input.  The input is trimmed,
// checked against the permitted character set, and checked for balanced
// brackets; descriptors are estimated immediately so the aggregate is always
// complete.
func NewLigand(smiles, name string) (*Ligand, error) {
	smiles = strings.TrimSpace(smiles)
	if smiles == "" {
		return nil, errors.New(errors.ErrCodeLigandInvalidSMILES, "SMILES must not be empty")
	}
	if !validSMILESChars.MatchString(smiles) {
		return nil, errors.New(errors.ErrCodeLigandInvalidSMILES, "SMILES contains invalid characters").
			WithDetail(fmt.Sprintf("input=%q", smiles))
	}
	if err := checkBrackets(smiles); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	l := &Ligand{
		BaseEntity: common.BaseEntity{
			ID:        common.NewID(),
			CreatedAt: now,
			UpdatedAt: now,
			Version:   1,
		},
		SMILES:       smiles,
		StructureKey: StructureKey(smiles),
		Name:         strings.TrimSpace(name),
		Descriptors:  EstimateDescriptors(smiles),
	}
	l.events = append(l.events, LigandRegisteredEvent{
		LigandID:     l.ID,
		StructureKey: l.StructureKey,
		SMILES:       l.SMILES,
	})
	return l, nil
}

// StructureKey derives the deterministic structure key for a SMILES string.
// Format: "LIG-" followed by the hash rendered as 8 uppercase hex digits.
func StructureKey(smiles string) string {
	return fmt.Sprintf("LIG-%08X", uint32(seed.Hash(strings.TrimSpace(smiles))))
}

// checkBrackets verifies that round and square brackets pair up and nest.
func checkBrackets(s string) error {
	var stack []byte
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(', '[':
			stack = append(stack, s[i])
		case ')':
			if len(stack) == 0 || stack[len(stack)-1] != '(' {
				return errors.New(errors.ErrCodeLigandInvalidSMILES, "unbalanced parentheses in SMILES")
			}
			stack = stack[:len(stack)-1]
		case ']':
			if len(stack) == 0 || stack[len(stack)-1] != '[' {
				return errors.New(errors.ErrCodeLigandInvalidSMILES, "unbalanced square brackets in SMILES")
			}
			stack = stack[:len(stack)-1]
		}
	}
	if len(stack) != 0 {
		return errors.New(errors.ErrCodeLigandInvalidSMILES, "unclosed bracket in SMILES")
	}
	return nil
}

// Events returns pending domain events.
func (l *Ligand) Events() []DomainEvent {
	return l.events
}

// ClearEvents discards pending domain events after publishing.
func (l *Ligand) ClearEvents() {
	l.events = nil
}

// DTO converts the aggregate to its transport representation.
func (l *Ligand) DTO() ltypes.LigandDTO {
	return ltypes.LigandDTO{
		BaseEntity:   l.BaseEntity,
		SMILES:       l.SMILES,
		StructureKey: l.StructureKey,
		Name:         l.Name,
		Descriptors:  l.Descriptors,
	}
}
