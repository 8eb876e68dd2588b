package ligand

import (
	ltypes "github.com/amaanarif2512best/deepdock-affinity-ai/pkg/types/ligand"
)

// Atomic masses and descriptor coefficients.  These are deliberate
// character-counting approximations, not cheminformatics-grade values; tests
// pin them because every cached and persisted prediction depends on them.
const (
	massCarbon   = 12.011
	massNitrogen = 14.007
	massOxygen   = 15.999
	massSulfur   = 32.06
	massHalogen  = 35.45
	massHydrogen = 1.008
)

// atomCounts is the character-level composition extracted from a SMILES string.
type atomCounts struct {
	aliphaticC int
	aromaticC  int
	nitrogen   int
	oxygen     int
	sulfur     int
	halogens   int
	ringDigits int
	hbdPairs   int // O or N immediately followed by H
}

func (c atomCounts) totalCarbon() int { return c.aliphaticC + c.aromaticC }

func (c atomCounts) heavyAtoms() int {
	return c.totalCarbon() + c.nitrogen + c.oxygen + c.sulfur + c.halogens
}

func (c atomCounts) rings() int { return c.ringDigits / 2 }

// countAtoms scans a SMILES string character by character.  Two-letter
// halogen symbols (Cl, Br) are consumed as single units so their letters do
// not double-count as carbon or boron.  Any string is accepted; characters
// outside the tracked set simply contribute nothing.
func countAtoms(smiles string) atomCounts {
	var c atomCounts
	for i := 0; i < len(smiles); i++ {
		ch := smiles[i]
		next := byte(0)
		if i+1 < len(smiles) {
			next = smiles[i+1]
		}
		switch {
		case ch == 'C' && next == 'l':
			c.halogens++
			i++
		case ch == 'B' && next == 'r':
			c.halogens++
			i++
		case ch == 'C':
			c.aliphaticC++
		case ch == 'c':
			c.aromaticC++
		case ch == 'N' || ch == 'n':
			c.nitrogen++
			if next == 'H' {
				c.hbdPairs++
			}
		case ch == 'O' || ch == 'o':
			c.oxygen++
			if next == 'H' {
				c.hbdPairs++
			}
		case ch == 'S' || ch == 's':
			c.sulfur++
		case ch == 'F' || ch == 'I':
			c.halogens++
		case ch >= '0' && ch <= '9':
			c.ringDigits++
		}
	}
	return c
}

// EstimateDescriptors approximates a descriptor set for any input string.
// There is no rejection path: malformed or empty input degrades to all-zero
// counts, never an error.  For a fixed input the output is bit-identical
// across calls.
func EstimateDescriptors(smiles string) ltypes.DescriptorSet {
	c := countAtoms(smiles)
	if c.heavyAtoms() == 0 {
		return ltypes.DescriptorSet{}
	}

	rings := c.rings()

	// Implicit hydrogens for a mostly-saturated skeleton.  Each ring closure
	// removes two.
	hydrogens := 2*c.aliphaticC + c.aromaticC + 2 - 2*rings
	if hydrogens < 0 {
		hydrogens = 0
	}

	mw := massCarbon*float64(c.totalCarbon()) +
		massNitrogen*float64(c.nitrogen) +
		massOxygen*float64(c.oxygen) +
		massSulfur*float64(c.sulfur) +
		massHalogen*float64(c.halogens) +
		massHydrogen*float64(hydrogens)

	logP := 0.5*float64(c.totalCarbon()) +
		0.3*float64(c.sulfur) +
		0.8*float64(c.halogens) -
		0.7*float64(c.nitrogen+c.oxygen) -
		0.2*float64(rings)

	tpsa := 23.8*float64(c.nitrogen) + 20.2*float64(c.oxygen) + 25.3*float64(c.sulfur)

	rotatable := c.aliphaticC + c.nitrogen + c.oxygen + c.sulfur - 1 - 2*rings
	if rotatable < 0 {
		rotatable = 0
	}

	aromaticRings := 0
	if c.aromaticC > 0 {
		aromaticRings = rings
	}

	return ltypes.DescriptorSet{
		MolecularWeight: mw,
		LogP:            logP,
		TPSA:            tpsa,
		HBondDonors:     c.hbdPairs,
		HBondAcceptors:  c.nitrogen + c.oxygen,
		RotatableBonds:  rotatable,
		AromaticRings:   aromaticRings,
	}
}
