package texture

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedNormalize(t *testing.T) {
	assert.Equal(t, uint8(0), SignedNormalize.Intensity(-1.0))
	assert.Equal(t, uint8(255), SignedNormalize.Intensity(1.0))
	mid := SignedNormalize.Intensity(0.0)
	assert.True(t, mid == 127 || mid == 128, "mid=%d", mid)

	assert.Equal(t, uint8(0), SignedNormalize.Intensity(-3))
	assert.Equal(t, uint8(255), SignedNormalize.Intensity(3))
}

func TestDirectScale(t *testing.T) {
	assert.Equal(t, uint8(0), DirectScale.Intensity(0))
	assert.Equal(t, uint8(127), DirectScale.Intensity(0.5))
	assert.Equal(t, uint8(255), DirectScale.Intensity(0.9999999))
	assert.Equal(t, uint8(255), DirectScale.Intensity(1.0))

	// Negative values clamp instead of wrapping.
	assert.Equal(t, uint8(0), DirectScale.Intensity(-0.25))
	assert.Equal(t, uint8(0), DirectScale.Intensity(-1))
}

func TestIntensity_NaN(t *testing.T) {
	assert.Equal(t, uint8(0), SignedNormalize.Intensity(math.NaN()))
	assert.Equal(t, uint8(0), DirectScale.Intensity(math.NaN()))
}

func TestIntensity_Monotonic(t *testing.T) {
	for _, m := range []ColorMapping{SignedNormalize, DirectScale} {
		prev := m.Intensity(-1.5)
		for v := -1.5; v <= 1.5; v += 0.01 {
			cur := m.Intensity(v)
			require.GreaterOrEqual(t, cur, prev, "mapping=%s v=%v", m, v)
			prev = cur
		}
	}
}

func TestParseColorMapping(t *testing.T) {
	cases := map[string]ColorMapping{
		"":                 SignedNormalize,
		"signed":           SignedNormalize,
		"Signed-Normalize": SignedNormalize,
		"direct":           DirectScale,
		" direct-scale ":   DirectScale,
	}
	for in, want := range cases {
		got, err := ParseColorMapping(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseColorMapping("hsv")
	assert.Error(t, err)

	assert.Equal(t, "signed", SignedNormalize.String())
	assert.Equal(t, "direct", DirectScale.String())
	assert.Equal(t, "ColorMapping(7)", ColorMapping(7).String())
}
