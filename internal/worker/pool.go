// Package worker provides a parallel texture generation worker pool.
// Each task is a whole texture; a single buffer is never split across workers.
package worker

import (
	"context"
	"sync"
	"time"
)

// Generator renders the texture for seed and writes it to path, returning
// the path actually written. render.Exporter implements it.
type Generator interface {
	Generate(ctx context.Context, seed int64, path string) (string, error)
}

// Task represents a single texture generation task.
type Task struct {
	Seed int64
	Path string
}

// Result represents the outcome of a texture generation task.
type Result struct {
	Task    Task
	Path    string
	Err     error
	Elapsed time.Duration
}

// ProgressFunc is called after each task finishes. Calls are serialized.
type ProgressFunc func(completed, total, failed int)

// Config configures the worker pool.
type Config struct {
	Workers    int
	Generator  Generator
	OnProgress ProgressFunc
}

// Pool manages parallel texture generation.
type Pool struct {
	workers    int
	generator  Generator
	onProgress ProgressFunc
}

// New creates a new worker pool.
func New(cfg Config) *Pool {
	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}

	return &Pool{
		workers:    workers,
		generator:  cfg.Generator,
		onProgress: cfg.OnProgress,
	}
}

// Run executes all tasks and returns one result per task, in task order.
// At most Workers textures are generated at once. When ctx is cancelled no
// further tasks are started; every task that did not run reports ctx.Err().
func (p *Pool) Run(ctx context.Context, tasks []Task) []Result {
	if len(tasks) == 0 {
		return nil
	}

	results := make([]Result, len(tasks))
	var (
		mu        sync.Mutex
		completed int
		failed    int
	)
	record := func(i int, r Result) {
		mu.Lock()
		defer mu.Unlock()
		results[i] = r
		completed++
		if r.Err != nil {
			failed++
		}
		if p.onProgress != nil {
			p.onProgress(completed, len(tasks), failed)
		}
	}

	next := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(p.workers, len(tasks)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				record(i, p.run(ctx, tasks[i]))
			}
		}()
	}

feed:
	for i := range tasks {
		select {
		case next <- i:
		case <-ctx.Done():
			for j := i; j < len(tasks); j++ {
				record(j, Result{Task: tasks[j], Err: ctx.Err()})
			}
			break feed
		}
	}
	close(next)
	wg.Wait()

	return results
}

// run generates a single task.
func (p *Pool) run(ctx context.Context, task Task) Result {
	if err := ctx.Err(); err != nil {
		return Result{Task: task, Err: err}
	}
	start := time.Now()
	path, err := p.generator.Generate(ctx, task.Seed, task.Path)
	return Result{
		Task:    task,
		Path:    path,
		Err:     err,
		Elapsed: time.Since(start),
	}
}
