package render

import (
	"context"
	"fmt"
	"image/png"

	"github.com/MeKo-Tech/noisetex/internal/texture"
)

// Exporter renders a fixed parameter set for many seeds and writes PNG files.
// It satisfies worker.Generator.
type Exporter struct {
	Generator   *texture.Generator
	Params      texture.GenerationParameters
	Options     Options
	Compression png.CompressionLevel
}

// Generate renders seed and writes it to path.
func (e *Exporter) Generate(ctx context.Context, seed int64, path string) (string, error) {
	if e.Generator == nil {
		return "", fmt.Errorf("exporter has no generator")
	}
	buf, err := e.Generator.Generate(ctx, e.Params, seed)
	if err != nil {
		return "", fmt.Errorf("seed %d: %w", seed, err)
	}
	img, err := Process(buf, e.Options)
	if err != nil {
		return "", err
	}
	if err := WritePNG(path, img, e.Compression); err != nil {
		return "", err
	}
	return path, nil
}
