package vectors

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomVector(r *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = float32(r.NormFloat64())
	}
	return v
}

func TestNormalize_UnitNorm(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		v := randomVector(r, 1+r.Intn(512))
		n := Normalize(v)
		assert.Less(t, math.Abs(Norm(n)-1), 1e-5)
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	in := []float32{3, 4}
	out := Normalize(in)

	assert.Equal(t, []float32{3, 4}, in)
	assert.InDelta(t, 0.6, out[0], 1e-6)
	assert.InDelta(t, 0.8, out[1], 1e-6)

	out[0] = 42
	assert.Equal(t, float32(3), in[0])
}

func TestNormalize_ZeroVector(t *testing.T) {
	out := Normalize([]float32{0, 0, 0})
	assert.Equal(t, []float32{0, 0, 0}, out)
	assert.Empty(t, Normalize(nil))
}

func TestSimilarity_Range(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	for i := 0; i < 100; i++ {
		a := randomVector(r, 16)
		b := randomVector(r, 16)
		s := Similarity(a, b)
		assert.GreaterOrEqual(t, s, 0.0)
		assert.LessOrEqual(t, s, 1.0)
	}
}

func TestSimilarity_SelfIsOne(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	for i := 0; i < 20; i++ {
		a := randomVector(r, 64)
		assert.InDelta(t, 1.0, Similarity(a, a), 1e-6)
	}
}

func TestSimilarity_EdgeCases(t *testing.T) {
	tests := []struct {
		name string
		a, b []float32
		want float64
	}{
		{"zero norm a", []float32{0, 0}, []float32{1, 0}, 0},
		{"zero norm b", []float32{1, 0}, []float32{0, 0}, 0},
		{"opposite clamps to zero", []float32{1, 0}, []float32{-1, 0}, 0},
		{"orthogonal", []float32{1, 0}, []float32{0, 1}, 0},
		{"length mismatch", []float32{1, 0}, []float32{1, 0, 0}, 0},
		{"empty", nil, nil, 0},
		{"scaled copy", []float32{1, 2, 3}, []float32{2, 4, 6}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Similarity(tt.a, tt.b), 1e-6)
		})
	}
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, Clamp01(-0.5))
	assert.Equal(t, 1.0, Clamp01(1.0000001))
	assert.Equal(t, 0.25, Clamp01(0.25))
	assert.Equal(t, 0.0, Clamp01(math.NaN()))
}

func TestDot_CommonPrefix(t *testing.T) {
	assert.InDelta(t, 11.0, Dot([]float32{1, 2}, []float32{3, 4, 5}), 1e-9)
}

func TestEncodeDecode(t *testing.T) {
	v := []float32{0, 1.5, -2.25, float32(math.Pi)}
	b := Encode(nil, v)
	require.Len(t, b, 16)

	got, err := Decode(b, 4)
	require.NoError(t, err)
	assert.Equal(t, v, got)
}

func TestDecode_Truncated(t *testing.T) {
	_, err := Decode([]byte{1, 2, 3}, 1)
	assert.Error(t, err)
}

func TestClone(t *testing.T) {
	assert.Nil(t, Clone(nil))
	in := []float32{1, 2}
	out := Clone(in)
	out[0] = 9
	assert.Equal(t, float32(1), in[0])
}
