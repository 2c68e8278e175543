// Package params models the tunable knobs of the texture generator as
// bounded integer controls, some of which derive a real value through a scale.
package params

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/noisetex/internal/texture"
)

// Valuer is anything that yields the real value the generator consumes.
type Valuer interface {
	Derived() float64
}

// Bounded is an integer control value kept within [min, max].
type Bounded struct {
	min  int
	max  int
	step int
	val  int
}

// NewBounded creates a bounded parameter. val is clamped into range.
func NewBounded(min, max, step, val int) (*Bounded, error) {
	if min > max {
		return nil, fmt.Errorf("%w: min %d exceeds max %d", texture.ErrInvalidParameter, min, max)
	}
	if step < 1 {
		return nil, fmt.Errorf("%w: step must be at least 1, got %d", texture.ErrInvalidParameter, step)
	}
	b := &Bounded{min: min, max: max, step: step}
	b.Set(val)
	return b, nil
}

// Value returns the current control value.
func (b *Bounded) Value() int { return b.val }

// Min returns the lower bound.
func (b *Bounded) Min() int { return b.min }

// Max returns the upper bound.
func (b *Bounded) Max() int { return b.max }

// Step returns the increment used by Increment and Decrement.
func (b *Bounded) Step() int { return b.step }

// Set stores v clamped into [min, max] and returns the stored value.
func (b *Bounded) Set(v int) int {
	switch {
	case v < b.min:
		v = b.min
	case v > b.max:
		v = b.max
	}
	b.val = v
	return v
}

// Increment moves the value up by one step.
func (b *Bounded) Increment() int {
	if b.max-b.val < b.step {
		return b.Set(b.max)
	}
	return b.Set(b.val + b.step)
}

// Decrement moves the value down by one step.
func (b *Bounded) Decrement() int {
	if b.val-b.min < b.step {
		return b.Set(b.min)
	}
	return b.Set(b.val - b.step)
}

// Derived returns the raw value as a real.
func (b *Bounded) Derived() float64 { return float64(b.val) }

// Scaled is a Bounded control whose real value is val / scale.
type Scaled struct {
	Bounded
	scale float64
}

// NewScaled creates a scaled parameter. scale must be positive and finite.
func NewScaled(min, max, step, val int, scale float64) (*Scaled, error) {
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, fmt.Errorf("%w: scale must be positive, got %v", texture.ErrInvalidParameter, scale)
	}
	b, err := NewBounded(min, max, step, val)
	if err != nil {
		return nil, err
	}
	return &Scaled{Bounded: *b, scale: scale}, nil
}

// Scale returns the divisor applied by Derived.
func (s *Scaled) Scale() float64 { return s.scale }

// Derived returns val / scale.
func (s *Scaled) Derived() float64 { return float64(s.val) / s.scale }
