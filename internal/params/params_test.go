package params

import (
	"testing"

	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBounded_Clamp(t *testing.T) {
	b, err := NewBounded(1, 16, 1, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, b.Value())

	assert.Equal(t, 16, b.Set(99))
	assert.Equal(t, 16, b.Value())
	assert.Equal(t, 1, b.Set(-5))
	assert.Equal(t, 4, b.Set(4))
	assert.Equal(t, 4.0, b.Derived())

	clamped, err := NewBounded(0, 10, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, 10, clamped.Value())
}

func TestBounded_Step(t *testing.T) {
	b, err := NewBounded(0, 25, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 10, b.Increment())
	assert.Equal(t, 20, b.Increment())
	assert.Equal(t, 25, b.Increment())
	assert.Equal(t, 25, b.Increment())
	assert.Equal(t, 15, b.Decrement())
	assert.Equal(t, 5, b.Decrement())
	assert.Equal(t, 0, b.Decrement())
	assert.Equal(t, 0, b.Decrement())
}

func TestBounded_Invalid(t *testing.T) {
	_, err := NewBounded(5, 1, 1, 3)
	require.ErrorIs(t, err, texture.ErrInvalidParameter)

	_, err = NewBounded(0, 10, 0, 3)
	require.ErrorIs(t, err, texture.ErrInvalidParameter)
}

func TestScaled_Derived(t *testing.T) {
	s, err := NewScaled(0, 100, 1, 50, 100.0)
	require.NoError(t, err)
	assert.Equal(t, 0.5, s.Derived())
	assert.Equal(t, 100.0, s.Scale())

	s.Set(s.Max())
	assert.Equal(t, float64(s.Max())/100.0, s.Derived())
	assert.Equal(t, 1.0, s.Derived())

	s.Set(1000)
	assert.Equal(t, 1.0, s.Derived())
}

func TestScaled_Invalid(t *testing.T) {
	for _, scale := range []float64{0, -1} {
		_, err := NewScaled(0, 10, 1, 5, scale)
		require.ErrorIs(t, err, texture.ErrInvalidParameter, "scale=%v", scale)
	}

	_, err := NewScaled(10, 0, 1, 5, 100)
	require.ErrorIs(t, err, texture.ErrInvalidParameter)
}

func TestValuer_Uniform(t *testing.T) {
	b, err := NewBounded(1, 10, 1, 3)
	require.NoError(t, err)
	s, err := NewScaled(0, 1000, 10, 250, 100)
	require.NoError(t, err)

	vals := []Valuer{b, s}
	assert.Equal(t, 3.0, vals[0].Derived())
	assert.Equal(t, 2.5, vals[1].Derived())
}

func TestModel_Defaults(t *testing.T) {
	m := NewModel()
	p := m.Snapshot()

	assert.Equal(t, 8, p.Octaves)
	assert.Equal(t, 6.0, p.Lacunarity)
	assert.Equal(t, 0.9, p.Persistence)
	assert.Equal(t, 1.0, p.Frequency)
	assert.Equal(t, 1.0, p.Amplitude)
	assert.Equal(t, 300, p.Width)
	assert.Equal(t, 300, p.Height)
	require.NoError(t, p.Validate(texture.DefaultMaxBytes))
}

func TestModel_SetAndSnapshot(t *testing.T) {
	m := NewModel()

	got, err := m.Set(Octaves, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, got)

	got, err = m.Set(Persistence, 250)
	require.NoError(t, err)
	assert.Equal(t, 100, got)

	_, err = m.Set(Width, 64)
	require.NoError(t, err)
	_, err = m.Set(Lacunarity, 200)
	require.NoError(t, err)

	p := m.Snapshot()
	assert.Equal(t, 3, p.Octaves)
	assert.Equal(t, 1.0, p.Persistence)
	assert.Equal(t, 64, p.Width)
	assert.Equal(t, 2.0, p.Lacunarity)

	// Snapshots are values; later edits do not leak into earlier snapshots.
	_, err = m.Set(Octaves, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Octaves)
	assert.Equal(t, 1, m.Snapshot().Octaves)
}

func TestModel_ValuesStayWithinBounds(t *testing.T) {
	m := NewModel()
	for _, name := range m.Names() {
		c, err := m.Param(name)
		require.NoError(t, err)
		require.LessOrEqual(t, c.Min(), c.Max(), name)
		require.GreaterOrEqual(t, c.Step(), 1, name)

		c.Set(c.Max() + 1000)
		assert.Equal(t, c.Max(), c.Value(), name)
		c.Set(c.Min() - 1000)
		assert.Equal(t, c.Min(), c.Value(), name)
	}
	// Lowest control values still validate.
	require.NoError(t, m.Snapshot().Validate(texture.DefaultMaxBytes))
}

func TestModel_UnknownName(t *testing.T) {
	m := NewModel()
	_, err := m.Param(Name("gain"))
	assert.Error(t, err)
	_, err = m.Set(Name("gain"), 1)
	assert.Error(t, err)
}

func TestParseName(t *testing.T) {
	n, err := ParseName(" Octaves ")
	require.NoError(t, err)
	assert.Equal(t, Octaves, n)

	_, err = ParseName("seed")
	assert.Error(t, err)
}
