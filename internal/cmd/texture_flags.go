package cmd

import (
	"fmt"
	"image/png"

	"github.com/MeKo-Tech/noisetex/internal/noise"
	"github.com/MeKo-Tech/noisetex/internal/params"
	"github.com/MeKo-Tech/noisetex/internal/render"
	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var knobUsage = map[params.Name]string{
	params.Octaves:     "Number of octaves",
	params.Lacunarity:  "Per-octave frequency multiplier x100",
	params.Persistence: "Per-octave amplitude multiplier x100",
	params.Frequency:   "Base frequency x100",
	params.Amplitude:   "Base amplitude x100",
	params.Width:       "Output width in pixels",
	params.Height:      "Output height in pixels",
}

// textureConfig is everything read from the shared texture flags.
type textureConfig struct {
	model       *params.Model
	generator   texture.GeneratorOptions
	render      render.Options
	compression png.CompressionLevel
}

// addTextureFlags registers the knob and export flags on c under the viper
// namespace prefix (for example "generate.octaves").
func addTextureFlags(c *cobra.Command, prefix string) {
	defaults := params.NewModel()
	for _, name := range defaults.Names() {
		p, _ := defaults.Param(name)
		c.Flags().Int(string(name), p.Value(), fmt.Sprintf("%s (%d..%d)", knobUsage[name], p.Min(), p.Max()))
	}
	c.Flags().String("mapping", "signed", "Color mapping: signed (maps [-1,1]) or direct (maps [0,1))")
	c.Flags().String("noise", "perlin", "Noise algorithm: perlin or simplex")
	c.Flags().Int("scale", 1, "Nearest-neighbour upscale factor for the exported image")
	c.Flags().Float64("blur", 0, "Gaussian blur sigma applied after upscaling (0 disables)")
	c.Flags().String("low", "", "Hex color for intensity 0, e.g. #1b2d4f (requires --high)")
	c.Flags().String("high", "", "Hex color for intensity 255 (requires --low)")
	c.Flags().String("png-compression", "default", "PNG compression (default, speed, best, none)")

	keys := make([]string, 0, len(knobUsage)+7)
	for _, name := range defaults.Names() {
		keys = append(keys, string(name))
	}
	keys = append(keys, "mapping", "noise", "scale", "blur", "low", "high", "png-compression")
	for _, flag := range keys {
		if err := viper.BindPFlag(prefix+"."+flagKey(flag), c.Flags().Lookup(flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", flag, err))
		}
	}
}

func flagKey(flag string) string {
	if flag == "png-compression" {
		return "png_compression"
	}
	return flag
}

// readTextureConfig builds the model and options from viper under prefix.
// Knob values outside their bounds are clamped and logged.
func readTextureConfig(prefix string) (textureConfig, error) {
	cfg := textureConfig{model: params.NewModel()}

	for _, name := range cfg.model.Names() {
		want := viper.GetInt(prefix + "." + string(name))
		got, err := cfg.model.Set(name, want)
		if err != nil {
			return cfg, err
		}
		if got != want {
			logger.Warn("Parameter clamped to bounds", "param", string(name), "requested", want, "used", got)
		}
	}

	mapping, err := texture.ParseColorMapping(viper.GetString(prefix + ".mapping"))
	if err != nil {
		return cfg, err
	}
	kind, err := noise.ParseKind(viper.GetString(prefix + ".noise"))
	if err != nil {
		return cfg, err
	}
	cfg.generator = texture.GeneratorOptions{Mapping: mapping, Noise: kind, Logger: logger}

	cfg.render = render.Options{
		Scale: viper.GetInt(prefix + ".scale"),
		Blur:  viper.GetFloat64(prefix + ".blur"),
		Low:   viper.GetString(prefix + ".low"),
		High:  viper.GetString(prefix + ".high"),
	}
	if cfg.render.Scale < 1 || cfg.render.Scale > render.MaxScale {
		return cfg, fmt.Errorf("scale must be within [1,%d]", render.MaxScale)
	}
	if cfg.render.Blur < 0 {
		return cfg, fmt.Errorf("blur must not be negative")
	}
	if (cfg.render.Low == "") != (cfg.render.High == "") {
		return cfg, fmt.Errorf("--low and --high must be given together")
	}

	cfg.compression, err = render.ParseCompression(viper.GetString(prefix + ".png_compression"))
	if err != nil {
		return cfg, err
	}
	return cfg, nil
}
