// Package texture assembles grayscale RGBA pixel buffers from fractal noise.
package texture

import (
	"errors"
	"fmt"
	"math"

	"github.com/MeKo-Tech/noisetex/internal/noise"
)

var (
	// ErrInvalidParameter reports a parameter that cannot produce a texture.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrAllocationTooLarge reports a buffer exceeding the configured size limit.
	ErrAllocationTooLarge = errors.New("allocation too large")
)

// DefaultMaxBytes caps a single pixel buffer at 256 MiB.
const DefaultMaxBytes = 256 << 20

// GenerationParameters is a snapshot of everything a generation run reads.
type GenerationParameters struct {
	noise.FBM
	Width  int
	Height int
}

// BufferSize returns width*height*4, the byte length of the resulting buffer.
func (p GenerationParameters) BufferSize() int64 {
	return int64(p.Width) * int64(p.Height) * 4
}

// Validate checks p before any allocation.
// maxBytes <= 0 disables the size limit.
func (p GenerationParameters) Validate(maxBytes int64) error {
	if p.Octaves < 1 {
		return fmt.Errorf("%w: octaves must be at least 1, got %d", ErrInvalidParameter, p.Octaves)
	}
	if p.Width <= 0 || p.Height <= 0 {
		return fmt.Errorf("%w: width and height must be positive, got %dx%d", ErrInvalidParameter, p.Width, p.Height)
	}
	// PixelBuffer stores dimensions as uint32, even with the size limit disabled.
	if int64(p.Width) > math.MaxUint32 || int64(p.Height) > math.MaxUint32 {
		return fmt.Errorf("%w: width and height must not exceed %d, got %dx%d", ErrInvalidParameter, uint32(math.MaxUint32), p.Width, p.Height)
	}
	reals := []struct {
		name string
		v    float64
	}{
		{"lacunarity", p.Lacunarity},
		{"persistence", p.Persistence},
		{"frequency", p.Frequency},
		{"amplitude", p.Amplitude},
	}
	for _, r := range reals {
		if math.IsNaN(r.v) || math.IsInf(r.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidParameter, r.name, r.v)
		}
	}
	if sum := p.AmplitudeSum(); sum == 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		return fmt.Errorf("%w: summed octave amplitude must be finite and non-zero, got %v", ErrInvalidParameter, sum)
	}
	if maxBytes > 0 && p.BufferSize() > maxBytes {
		return fmt.Errorf("%w: %dx%d needs %d bytes, limit is %d", ErrAllocationTooLarge, p.Width, p.Height, p.BufferSize(), maxBytes)
	}
	return nil
}
