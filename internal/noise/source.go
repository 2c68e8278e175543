// Package noise provides seeded coherent-noise sources and the fractal
// summation used to build textures from them.
package noise

import (
	"fmt"
	"strings"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Source is a seeded 2D coherent-noise field.
// Eval is deterministic for a fixed seed and returns a value nominally in [-1, 1].
type Source interface {
	Eval(x, y float64) float64
}

// Factory builds a fresh Source for a seed.
type Factory func(seed int64) Source

// Kind names a noise algorithm.
type Kind string

const (
	KindPerlin  Kind = "perlin"
	KindSimplex Kind = "simplex"
)

// ParseKind converts a user supplied name to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindPerlin:
		return KindPerlin, nil
	case KindSimplex:
		return KindSimplex, nil
	default:
		return "", fmt.Errorf("unknown noise kind %q: must be 'perlin' or 'simplex'", s)
	}
}

// FactoryFor returns the constructor for kind. An empty kind means Perlin.
func FactoryFor(kind Kind) (Factory, error) {
	switch kind {
	case "", KindPerlin:
		return NewPerlin, nil
	case KindSimplex:
		return NewSimplex, nil
	default:
		return nil, fmt.Errorf("unknown noise kind %q", kind)
	}
}

type perlinSource struct {
	p *perlin.Perlin
}

// NewPerlin creates a single-octave Perlin source.
// go-perlin sums its own octaves; n=1 disables that so FBM stays in charge
// of frequency and amplitude.
func NewPerlin(seed int64) Source {
	return &perlinSource{p: perlin.NewPerlin(2.0, 2.0, 1, seed)}
}

func (s *perlinSource) Eval(x, y float64) float64 {
	return s.p.Noise2D(x, y)
}

type simplexSource struct {
	n opensimplex.Noise
}

// NewSimplex creates an OpenSimplex source with output in [-1, 1].
func NewSimplex(seed int64) Source {
	return &simplexSource{n: opensimplex.New(seed)}
}

func (s *simplexSource) Eval(x, y float64) float64 {
	return s.n.Eval2(x, y)
}
