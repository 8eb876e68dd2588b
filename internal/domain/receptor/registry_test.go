package receptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amaanarif2512best/deepdock-affinity-ai/pkg/errors"
)

func TestLookup(t *testing.T) {
	for _, key := range []string{"il-6", "il-10", "tnf-alpha", "egfr", "cox-2"} {
		r, err := Lookup(key)
		require.NoError(t, err, key)
		assert.Equal(t, key, r.Key)
		assert.Len(t, r.PDBID, 4)
		assert.NotEmpty(t, r.BindingSiteResidues, key)
	}
}

func TestLookup_CaseAndWhitespace(t *testing.T) {
	r, err := Lookup("  IL-6 ")
	require.NoError(t, err)
	assert.Equal(t, "il-6", r.Key)
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("braf")
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeReceptorUnknown))
	assert.False(t, IsPredefined("braf"))
	assert.False(t, IsPredefined(CustomKey))
}

func TestAll_SortedAndComplete(t *testing.T) {
	all := All()
	require.Len(t, all, 5)
	for i := 1; i < len(all); i++ {
		assert.Less(t, all[i-1].Key, all[i].Key)
	}
}

func TestNormalizeFASTA(t *testing.T) {
	seq, err := NormalizeFASTA(">sp|P05231|IL6_HUMAN\nmnsfst\nSAFGPVAF")
	require.NoError(t, err)
	assert.Equal(t, "MNSFSTSAFGPVAF", seq)
}

func TestNormalizeFASTA_Rejects(t *testing.T) {
	cases := map[string]string{
		"empty":       "",
		"header only": ">seq1\n",
		"bad letters": "MNSF123",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := NormalizeFASTA(in)
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, errors.ErrCodeReceptorInvalidFASTA))
		})
	}
}

func TestValidatePDBID(t *testing.T) {
	id, err := ValidatePDBID(" 1alu ")
	require.NoError(t, err)
	assert.Equal(t, "1ALU", id)

	for _, bad := range []string{"", "ALU", "ALUX", "12", "1ALUX"} {
		_, err := ValidatePDBID(bad)
		require.Error(t, err, bad)
		assert.True(t, errors.IsCode(err, errors.ErrCodeReceptorInvalidPDBID), bad)
	}
}
