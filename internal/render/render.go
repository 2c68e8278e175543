// Package render turns generated pixel buffers into export-ready images.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/disintegration/gift"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
)

// MaxScale bounds the nearest-neighbour blow-up factor.
const MaxScale = 64

// Options controls post-processing of a generated buffer.
type Options struct {
	// Scale repeats every pixel Scale x Scale times. 0 and 1 keep the size.
	Scale int
	// Blur is the Gaussian sigma in output pixels. 0 disables it.
	Blur float64
	// Low and High, when both set, map intensity 0..255 onto a Lab blend
	// between the two hex colors instead of gray.
	Low  string
	High string
}

// Process copies buf into a new image and applies opts. buf is not modified.
func Process(buf *texture.PixelBuffer, opts Options) (*image.RGBA, error) {
	if buf == nil {
		return nil, fmt.Errorf("no texture to render")
	}
	if opts.Scale < 0 || opts.Scale > MaxScale {
		return nil, fmt.Errorf("scale must be within [0,%d], got %d", MaxScale, opts.Scale)
	}
	if opts.Blur < 0 {
		return nil, fmt.Errorf("blur must not be negative")
	}
	if (opts.Low == "") != (opts.High == "") {
		return nil, fmt.Errorf("low and high colors must be given together")
	}

	src := buf.Image()
	img := Upscale(src, opts.Scale)
	if img == src {
		img = cloneRGBA(src)
	}

	if opts.Blur > 0 {
		img = GaussianBlur(img, float32(opts.Blur))
	}

	if opts.Low != "" {
		if err := applyRamp(img, opts.Low, opts.High); err != nil {
			return nil, err
		}
	}
	return img, nil
}

// Upscale enlarges img by an integer factor with nearest-neighbour sampling,
// so each source pixel becomes a solid block. factor <= 1 returns img itself.
func Upscale(img *image.RGBA, factor int) *image.RGBA {
	if factor <= 1 {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// GaussianBlur softens img with the given sigma.
func GaussianBlur(img *image.RGBA, sigma float32) *image.RGBA {
	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

// applyRamp recolors a grayscale image in place. The red channel is taken
// as the intensity; alpha is preserved.
func applyRamp(img *image.RGBA, low, high string) error {
	lo, err := colorful.Hex(low)
	if err != nil {
		return fmt.Errorf("invalid low color %q: %w", low, err)
	}
	hi, err := colorful.Hex(high)
	if err != nil {
		return fmt.Errorf("invalid high color %q: %w", high, err)
	}

	var lut [256]color.RGBA
	for i := range lut {
		r, g, b := lo.BlendLab(hi, float64(i)/255.0).Clamped().RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: b}
	}

	for i := 0; i+3 < len(img.Pix); i += 4 {
		c := lut[img.Pix[i]]
		img.Pix[i] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
	}
	return nil
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(img.Bounds())
	copy(dst.Pix, img.Pix)
	return dst
}

// ParseCompression maps a name to a PNG compression level.
func ParseCompression(s string) (png.CompressionLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "default":
		return png.DefaultCompression, nil
	case "speed":
		return png.BestSpeed, nil
	case "best":
		return png.BestCompression, nil
	case "none":
		return png.NoCompression, nil
	default:
		return 0, fmt.Errorf("invalid png compression %q: must be default, speed, best or none", s)
	}
}

// WritePNG encodes img to path, creating parent directories as needed.
func WritePNG(path string, img image.Image, level png.CompressionLevel) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output dir: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create texture %s: %w", path, err)
	}

	enc := png.Encoder{CompressionLevel: level}
	if err := enc.Encode(file, img); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode texture %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write texture %s: %w", path, err)
	}
	return nil
}
