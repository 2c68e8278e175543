package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MeKo-Tech/noisetex/internal/render"
	"github.com/MeKo-Tech/noisetex/internal/session"
	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a single noise texture",
	Long:  `Generate one fractal noise texture from the given parameters and write it as PNG.`,
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	addTextureFlags(generateCmd, "generate")
	generateCmd.Flags().Int64("seed", 0, "Noise seed (0 draws a random seed)")
	generateCmd.Flags().StringP("output", "o", "noise.png", "Output PNG path")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"generate.seed", "seed"},
		{"generate.output", "output"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, generateCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg, err := readTextureConfig("generate")
	if err != nil {
		return err
	}
	output := viper.GetString("generate.output")
	if output == "" {
		return fmt.Errorf("--output is required")
	}

	seeds := session.RandomSeeds()
	if seed := viper.GetInt64("generate.seed"); seed != 0 {
		seeds = session.FixedSeed(seed)
	}

	gen, err := texture.NewGenerator(cfg.generator)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := session.New(cfg.model, gen, seeds, logger)
	p := s.Parameters()
	logger.Info("Starting texture generation",
		"width", p.Width,
		"height", p.Height,
		"octaves", p.Octaves,
		"lacunarity", p.Lacunarity,
		"persistence", p.Persistence,
		"frequency", p.Frequency,
		"amplitude", p.Amplitude,
		"noise", string(gen.Noise()),
		"mapping", gen.Mapping().String(),
	)

	buf, err := s.Generate(ctx)
	if err != nil {
		return err
	}

	img, err := render.Process(buf, cfg.render)
	if err != nil {
		return err
	}
	if err := render.WritePNG(output, img, cfg.compression); err != nil {
		return err
	}

	logger.Info("Texture written", "path", output, "seed", s.LastSeed(), "width", img.Bounds().Dx(), "height", img.Bounds().Dy())
	return nil
}
