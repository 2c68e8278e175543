package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/MeKo-Tech/noisetex/internal/render"
	"github.com/MeKo-Tech/noisetex/internal/texture"
	"github.com/MeKo-Tech/noisetex/internal/worker"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Generate a series of textures with consecutive seeds",
	Long: `Generate --count textures sharing one parameter set, seeded seed, seed+1, ...
Each texture is rendered by one worker; textures are written as noise_<seed>.png.`,
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	addTextureFlags(batchCmd, "batch")
	batchCmd.Flags().Int("count", 8, "Number of textures to generate")
	batchCmd.Flags().Int64("seed", 1337, "First seed of the series")
	batchCmd.Flags().String("dir", "./textures", "Output directory")
	batchCmd.Flags().IntP("workers", "w", 0, "Number of parallel workers (default: number of CPUs)")
	batchCmd.Flags().Bool("progress", true, "Show progress bar")
	batchCmd.Flags().Bool("allow-failures", false, "Exit successfully even if some textures fail")

	bindFlags := []struct {
		key  string
		flag string
	}{
		{"batch.count", "count"},
		{"batch.seed", "seed"},
		{"batch.dir", "dir"},
		{"batch.workers", "workers"},
		{"batch.progress", "progress"},
		{"batch.allow_failures", "allow-failures"},
	}

	for _, bf := range bindFlags {
		if err := viper.BindPFlag(bf.key, batchCmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

func runBatch(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	cfg, err := readTextureConfig("batch")
	if err != nil {
		return err
	}
	count := viper.GetInt("batch.count")
	seed := viper.GetInt64("batch.seed")
	dir := viper.GetString("batch.dir")
	workers := viper.GetInt("batch.workers")
	showProgress := viper.GetBool("batch.progress")
	allowFailures := viper.GetBool("batch.allow_failures")

	if count <= 0 {
		return fmt.Errorf("count must be positive")
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	p := cfg.model.Snapshot()
	gen, err := texture.NewGenerator(cfg.generator)
	if err != nil {
		return fmt.Errorf("failed to init generator: %w", err)
	}
	// Fail once up front instead of once per task.
	if err := p.Validate(texture.DefaultMaxBytes); err != nil {
		return err
	}

	tasks := batchTasks(dir, seed, count)

	logger.Info("Starting batch texture generation",
		"count", count,
		"first_seed", seed,
		"workers", workers,
		"dir", dir,
		"size", fmt.Sprintf("%dx%d", p.Width, p.Height),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := worker.NewProgress(len(tasks), showProgress)
	pool := worker.New(worker.Config{
		Workers: workers,
		Generator: &render.Exporter{
			Generator:   gen,
			Params:      p,
			Options:     cfg.render,
			Compression: cfg.compression,
		},
		OnProgress: progress.Callback(),
	})

	results := pool.Run(ctx, tasks)
	progress.Done()

	var failedCount int
	for _, r := range results {
		if r.Err != nil {
			failedCount++
			logger.Error("Texture generation failed", "seed", r.Task.Seed, "path", r.Task.Path, "error", r.Err)
		}
	}

	logger.Info(progress.Summary())

	if ctx.Err() != nil {
		return fmt.Errorf("batch interrupted: %w", ctx.Err())
	}
	if failedCount > 0 {
		if allowFailures {
			logger.Warn("Some textures failed to generate, but continuing due to --allow-failures flag", "failed_count", failedCount)
			return nil
		}
		return fmt.Errorf("%d textures failed to generate", failedCount)
	}
	return nil
}

func batchTasks(dir string, seed int64, count int) []worker.Task {
	tasks := make([]worker.Task, 0, count)
	for i := 0; i < count; i++ {
		s := seed + int64(i)
		tasks = append(tasks, worker.Task{
			Seed: s,
			Path: filepath.Join(dir, fmt.Sprintf("noise_%d.png", s)),
		})
	}
	return tasks
}
