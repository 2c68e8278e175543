package params

import (
	"fmt"
	"strings"

	"github.com/MeKo-Tech/noisetex/internal/noise"
	"github.com/MeKo-Tech/noisetex/internal/texture"
)

// Name identifies a knob of the Model.
type Name string

const (
	Octaves     Name = "octaves"
	Lacunarity  Name = "lacunarity"
	Persistence Name = "persistence"
	Frequency   Name = "frequency"
	Amplitude   Name = "amplitude"
	Width       Name = "width"
	Height      Name = "height"
)

var names = []Name{Octaves, Lacunarity, Persistence, Frequency, Amplitude, Width, Height}

// ParseName converts user input to a Name.
func ParseName(s string) (Name, error) {
	n := Name(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range names {
		if n == known {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown parameter %q", s)
}

// Control is the read/write surface shared by Bounded and Scaled.
type Control interface {
	Valuer
	Value() int
	Min() int
	Max() int
	Step() int
	Set(v int) int
	Increment() int
	Decrement() int
}

// Model holds every knob read by a generation run.
type Model struct {
	octaves     *Bounded
	lacunarity  *Scaled
	persistence *Scaled
	frequency   *Scaled
	amplitude   *Scaled
	width       *Bounded
	height      *Bounded
}

// NewModel returns a model with the default bounds and values:
// 8 octaves, lacunarity 6.0, persistence 0.9, frequency 1.0, amplitude 1.0, 300x300.
func NewModel() *Model {
	return &Model{
		octaves:     mustBounded(1, 16, 1, 8),
		lacunarity:  mustScaled(100, 800, 10, 600, 100),
		persistence: mustScaled(0, 100, 1, 90, 100),
		frequency:   mustScaled(10, 1000, 10, 100, 100),
		amplitude:   mustScaled(10, 200, 10, 100, 100),
		width:       mustBounded(1, 4096, 1, 300),
		height:      mustBounded(1, 4096, 1, 300),
	}
}

func mustBounded(min, max, step, val int) *Bounded {
	b, err := NewBounded(min, max, step, val)
	if err != nil {
		panic(err)
	}
	return b
}

func mustScaled(min, max, step, val int, scale float64) *Scaled {
	s, err := NewScaled(min, max, step, val, scale)
	if err != nil {
		panic(err)
	}
	return s
}

// Names lists the knobs in display order.
func (m *Model) Names() []Name {
	return append([]Name(nil), names...)
}

// Param returns the control for name.
func (m *Model) Param(name Name) (Control, error) {
	switch name {
	case Octaves:
		return m.octaves, nil
	case Lacunarity:
		return m.lacunarity, nil
	case Persistence:
		return m.persistence, nil
	case Frequency:
		return m.frequency, nil
	case Amplitude:
		return m.amplitude, nil
	case Width:
		return m.width, nil
	case Height:
		return m.height, nil
	default:
		return nil, fmt.Errorf("unknown parameter %q", name)
	}
}

// Set writes a raw control value, clamped to the knob's bounds.
func (m *Model) Set(name Name, v int) (int, error) {
	c, err := m.Param(name)
	if err != nil {
		return 0, err
	}
	return c.Set(v), nil
}

// Snapshot derives the generation parameters from the current control values.
func (m *Model) Snapshot() texture.GenerationParameters {
	return texture.GenerationParameters{
		FBM: noise.FBM{
			Octaves:     m.octaves.Value(),
			Lacunarity:  m.lacunarity.Derived(),
			Persistence: m.persistence.Derived(),
			Frequency:   m.frequency.Derived(),
			Amplitude:   m.amplitude.Derived(),
		},
		Width:  m.width.Value(),
		Height: m.height.Value(),
	}
}
