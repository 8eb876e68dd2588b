package ligand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

func TestNewLigand(t *testing.T) {
	l, err := NewLigand("  CCO  ", "ethanol")
	require.NoError(t, err)
	assert.Equal(t, "CCO", l.SMILES)
	assert.Equal(t, "ethanol", l.Name)
	assert.Equal(t, StructureKey("CCO"), l.StructureKey)
	assert.NotEmpty(t, l.ID)
	require.Len(t, l.Events(), 1)
	assert.Equal(t, "ligand.registered", l.Events()[0].EventType())

	l.ClearEvents()
	assert.Empty(t, l.Events())
}

func TestNewLigand_Rejects(t *testing.T) {
	cases := []struct {
		name   string
		smiles string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"invalid characters", "CCO{}!"},
		{"unbalanced paren", "CC(=O"},
		{"crossed brackets", "C[N(C]O)"},
		{"stray closer", "CCO)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLigand(tc.smiles, "")
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeLigandInvalidSMILES))
		})
	}
}

func TestStructureKey_Deterministic(t *testing.T) {
	assert.Equal(t, StructureKey("CCO"), StructureKey("CCO"))
	assert.Equal(t, StructureKey("CCO"), StructureKey(" CCO "))
	assert.NotEqual(t, StructureKey("CCO"), StructureKey("OCC"))
	assert.Regexp(t, `^LIG-[0-9A-F]{8}$`, StructureKey("c1ccccc1"))
}

func TestEstimateDescriptors_Ethanol(t *testing.T) {
	d := EstimateDescriptors("CCO")
	// 2 C + 1 O + 6 implicit H.
	assert.InDelta(t, 2*12.011+15.999+6*1.008, d.MolecularWeight, 1e-9)
	assert.InDelta(t, 0.3, d.LogP, 1e-9)
	assert.InDelta(t, 20.2, d.TPSA, 1e-9)
	assert.Equal(t, 0, d.HBondDonors)
	assert.Equal(t, 1, d.HBondAcceptors)
	assert.Equal(t, 2, d.RotatableBonds)
	assert.Equal(t, 0, d.AromaticRings)
}

func TestEstimateDescriptors_Benzene(t *testing.T) {
	d := EstimateDescriptors("c1ccccc1")
	// 6 aromatic C, one ring closure, 6 implicit H.
	assert.InDelta(t, 6*12.011+6*1.008, d.MolecularWeight, 1e-9)
	assert.Equal(t, 1, d.AromaticRings)
	assert.Equal(t, 0, d.HBondAcceptors)
	assert.Equal(t, 0, d.RotatableBonds)
}

func TestEstimateDescriptors_Halogens(t *testing.T) {
	// Cl and Br must count as halogens, not as C or B.
	d := EstimateDescriptors("ClCBr")
	assert.InDelta(t, 12.011+2*35.45+2*1.008+2*1.008, d.MolecularWeight, 1e-9)
}

func TestEstimateDescriptors_EmptyAndGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "12345", "===###"} {
		d := EstimateDescriptors(in)
		assert.Zero(t, d.MolecularWeight, "input %q", in)
		assert.Zero(t, d.HBondDonors, "input %q", in)
		assert.Zero(t, d.HBondAcceptors, "input %q", in)
		assert.Zero(t, d.RotatableBonds, "input %q", in)
	}
}

func TestEstimateDescriptors_NonNegative(t *testing.T) {
	inputs := []string{"", "CCO", "c1ccccc1", "N", "O=C=O", "CC(=O)Oc1ccccc1C(=O)O",
		"[NH4+]", "FC(F)(F)F", "C1CC1C2CC2C3CC3"}
	for _, in := range inputs {
		d := EstimateDescriptors(in)
		assert.GreaterOrEqual(t, d.MolecularWeight, 0.0, "input %q", in)
		assert.GreaterOrEqual(t, d.HBondDonors, 0, "input %q", in)
		assert.GreaterOrEqual(t, d.HBondAcceptors, 0, "input %q", in)
		assert.GreaterOrEqual(t, d.RotatableBonds, 0, "input %q", in)
	}
}

func TestEstimateDescriptors_Deterministic(t *testing.T) {
	a := EstimateDescriptors("CC(=O)Oc1ccccc1C(=O)O")
	b := EstimateDescriptors("CC(=O)Oc1ccccc1C(=O)O")
	assert.Equal(t, a, b)
}

func TestDescriptorVector(t *testing.T) {
	d := EstimateDescriptors("CCO")
	v := d.Vector()
	require.Len(t, v, 7)
	assert.Equal(t, float32(d.MolecularWeight), v[0])
}
