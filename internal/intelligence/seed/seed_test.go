package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_Deterministic(t *testing.T) {
	inputs := []string{"", "CCO", "c1ccccc1", "CC(=O)Oc1ccccc1C(=O)O", "il-6", "custom"}
	for _, in := range inputs {
		assert.Equal(t, Hash(in), Hash(in), "hash must be stable for %q", in)
	}
}

func TestHash_KnownValues(t *testing.T) {
	// h = h*31 + charCode over the input.
	assert.Equal(t, int32(0), Hash(""))
	assert.Equal(t, int32('C'), Hash("C"))
	assert.Equal(t, int32('C')*31+int32('C'), Hash("CC"))
	assert.Equal(t, int32(('C'*31+'C')*31+'O'), Hash("CCO"))
}

func TestHash_Spread(t *testing.T) {
	seen := map[int32]string{}
	for _, in := range []string{"CCO", "OCC", "CCN", "CCC", "il-6", "il-10", "tnf-alpha", "egfr", "cox-2"} {
		prev, dup := seen[Hash(in)]
		require.False(t, dup, "unexpected collision between %q and %q", in, prev)
		seen[Hash(in)] = in
	}
}

func TestHash_WrapsAround(t *testing.T) {
	// Long inputs overflow int32; the accumulation must wrap, not panic.
	long := make([]byte, 4096)
	for i := range long {
		long[i] = byte('A' + i%26)
	}
	assert.Equal(t, Hash(string(long)), Hash(string(long)))
}

func TestRandom_BoundedForAnySeed(t *testing.T) {
	seeds := []int32{0, 1, -1, 31, -31, 233280, -233280, 1 << 30, -(1 << 30), 2147483647, -2147483648}
	for _, s := range seeds {
		v := Random(s)
		assert.GreaterOrEqual(t, v, 0.0, "seed %d", s)
		assert.Less(t, v, 1.0, "seed %d", s)
		assert.Equal(t, v, Random(s), "seed %d must be deterministic", s)
	}
}

func TestRandom_KnownValue(t *testing.T) {
	// (0*9301 + 49297) % 233280 = 49297.
	assert.InDelta(t, 49297.0/233280.0, Random(0), 1e-15)
}

func TestDerive_Concatenates(t *testing.T) {
	assert.Equal(t, Hash("CCOil-6"), Derive("CCO", "il-6"))
	assert.Equal(t, Derive("abc"), Derive("ab", "c"))
	assert.Equal(t, int32(0), Derive())
}

func TestStream_Replays(t *testing.T) {
	a := NewStream(Derive("CCO", "il-6"))
	b := NewStream(Derive("CCO", "il-6"))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Next(), b.Next(), "draw %d", i)
	}
}

func TestStream_Ranges(t *testing.T) {
	s := NewStream(-12345)
	for i := 0; i < 50; i++ {
		f := s.Float(1.5, 4.5)
		assert.GreaterOrEqual(t, f, 1.5)
		assert.Less(t, f, 4.5)
	}
	for i := 0; i < 50; i++ {
		n := s.Int(70, 95)
		assert.GreaterOrEqual(t, n, 70)
		assert.LessOrEqual(t, n, 95)
	}
	for i := 0; i < 50; i++ {
		idx := s.Pick(5)
		assert.GreaterOrEqual(t, idx, 0)
		assert.Less(t, idx, 5)
	}
}
