package texture

import (
	"fmt"
	"strings"
)

// ColorMapping converts a fractal noise value to a gray intensity.
type ColorMapping int

const (
	// SignedNormalize maps [-1, 1] onto [0, 255].
	SignedNormalize ColorMapping = iota
	// DirectScale maps [0, 1) onto [0, 255]; negative values clamp to 0.
	DirectScale
)

func (m ColorMapping) String() string {
	switch m {
	case SignedNormalize:
		return "signed"
	case DirectScale:
		return "direct"
	default:
		return fmt.Sprintf("ColorMapping(%d)", int(m))
	}
}

// ParseColorMapping accepts "signed" (default) or "direct".
func ParseColorMapping(s string) (ColorMapping, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "signed", "signed-normalize":
		return SignedNormalize, nil
	case "direct", "direct-scale":
		return DirectScale, nil
	default:
		return 0, fmt.Errorf("unknown color mapping %q: must be 'signed' or 'direct'", s)
	}
}

// Intensity maps v to a byte using m.
func (m ColorMapping) Intensity(v float64) uint8 {
	if m == DirectScale {
		return clampByte(v * 255.999)
	}
	return clampByte((v + 1.0) / 2.0 * 255.999)
}

func clampByte(x float64) uint8 {
	// NaN fails both comparisons and would convert unpredictably.
	if !(x > 0) {
		return 0
	}
	if x >= 255 {
		return 255
	}
	return uint8(x)
}
