package texture

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/noisetex/internal/noise"
)

// GeneratorOptions configures a Generator. The zero value is usable.
type GeneratorOptions struct {
	Mapping ColorMapping
	Noise   noise.Kind
	// Source, when set, builds the noise source instead of the Noise kind's factory.
	Source noise.Factory
	// MaxBytes limits the buffer size. 0 means DefaultMaxBytes, negative disables the limit.
	MaxBytes int64
	Logger   *slog.Logger
}

// Generator turns GenerationParameters and a seed into pixel buffers.
// A Generator holds no per-run state and may be shared between goroutines.
type Generator struct {
	mapping   ColorMapping
	kind      noise.Kind
	newSource noise.Factory
	maxBytes  int64
	logger    *slog.Logger
}

// NewGenerator creates a generator.
func NewGenerator(opts GeneratorOptions) (*Generator, error) {
	switch opts.Mapping {
	case SignedNormalize, DirectScale:
	default:
		return nil, fmt.Errorf("unsupported color mapping %v", opts.Mapping)
	}
	factory, err := noise.FactoryFor(opts.Noise)
	if err != nil {
		return nil, err
	}
	if opts.Source != nil {
		factory = opts.Source
	}
	kind := opts.Noise
	if kind == "" {
		kind = noise.KindPerlin
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Generator{
		mapping:   opts.Mapping,
		kind:      kind,
		newSource: factory,
		maxBytes:  maxBytes,
		logger:    opts.Logger,
	}, nil
}

// Mapping returns the configured color mapping.
func (g *Generator) Mapping() ColorMapping { return g.mapping }

// Noise returns the configured noise kind.
func (g *Generator) Noise() noise.Kind { return g.kind }

// Generate renders a fresh buffer for p using a new noise source seeded with seed.
// Parameters are validated before anything is allocated. The context is
// checked between rows; a cancelled run returns the context error and no buffer.
func (g *Generator) Generate(ctx context.Context, p GenerationParameters, seed int64) (*PixelBuffer, error) {
	if err := p.Validate(g.maxBytes); err != nil {
		return nil, err
	}

	start := time.Now()
	src := g.newSource(seed)
	buf := newPixelBuffer(p.Width, p.Height)

	for j := 0; j < p.Height; j++ {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("generation cancelled at row %d: %w", j, err)
		}
		g.renderRow(src, p, j, buf.row(j))
	}

	g.log().Debug("texture generated",
		"width", p.Width,
		"height", p.Height,
		"octaves", p.Octaves,
		"seed", seed,
		"noise", string(g.kind),
		"mapping", g.mapping.String(),
		"elapsed", time.Since(start),
	)
	return buf, nil
}

// renderRow fills one row. It reads only src and p, so rows are independent.
func (g *Generator) renderRow(src noise.Source, p GenerationParameters, j int, row []byte) {
	y := float64(j) / float64(p.Height)
	for i := 0; i < p.Width; i++ {
		x := float64(i) / float64(p.Width)
		v := g.mapping.Intensity(p.Sample(src, x, y))
		px := row[i*4 : i*4+4 : i*4+4]
		px[0] = v
		px[1] = v
		px[2] = v
		px[3] = 255
	}
}

func (g *Generator) log() *slog.Logger {
	if g.logger != nil {
		return g.logger
	}
	return slog.Default()
}

var defaultGenerator = &Generator{
	mapping:   SignedNormalize,
	kind:      noise.KindPerlin,
	newSource: noise.NewPerlin,
	maxBytes:  DefaultMaxBytes,
}

// Generate renders p with Perlin noise and the signed-normalize mapping.
func Generate(ctx context.Context, p GenerationParameters, seed int64) (*PixelBuffer, error) {
	return defaultGenerator.Generate(ctx, p, seed)
}
