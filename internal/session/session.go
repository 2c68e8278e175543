// Package session holds the state an interactive front end keeps around the
// generator: the parameter model, the last generated buffer and the seed it
// was drawn with.
package session

import (
	"context"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/MeKo-Tech/noisetex/internal/params"
	"github.com/MeKo-Tech/noisetex/internal/texture"
)

// SeedSource draws the seed for the next generation.
type SeedSource func() int64

// RandomSeeds returns a SeedSource backed by a time-seeded RNG.
func RandomSeeds() SeedSource {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	var mu sync.Mutex
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		return rng.Int63()
	}
}

// FixedSeed always returns seed.
func FixedSeed(seed int64) SeedSource {
	return func() int64 { return seed }
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	model    *params.Model
	gen      *texture.Generator
	seeds    SeedSource
	buffer   *texture.PixelBuffer
	lastSeed int64
	logger   *slog.Logger
	// epoch advances on every Generate and Clear. A run stores its buffer
	// only if nothing newer happened while it was rendering.
	epoch uint64
}

// New creates a session. A nil seeds uses RandomSeeds.
func New(model *params.Model, gen *texture.Generator, seeds SeedSource, logger *slog.Logger) *Session {
	if seeds == nil {
		seeds = RandomSeeds()
	}
	return &Session{
		model:  model,
		gen:    gen,
		seeds:  seeds,
		logger: logger,
	}
}

// Set writes one knob and returns the value actually stored.
func (s *Session) Set(name params.Name, v int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Set(name, v)
}

// Nudge moves a knob by one step up (delta > 0) or down.
func (s *Session) Nudge(name params.Name, delta int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, err := s.model.Param(name)
	if err != nil {
		return 0, err
	}
	if delta > 0 {
		return c.Increment(), nil
	}
	return c.Decrement(), nil
}

// Parameters returns the current snapshot.
func (s *Session) Parameters() texture.GenerationParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.model.Snapshot()
}

// ViewModel calls fn with the parameter model while holding the session lock.
// fn must not retain the model or call back into the session.
func (s *Session) ViewModel(fn func(m *params.Model) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.model)
}

// Generate draws a new seed and renders the current parameters.
// The held buffer is replaced only on success; on error the previous
// buffer (or none) stays in place. If another Generate or a Clear happened
// while this run was rendering, the result is returned but not stored.
func (s *Session) Generate(ctx context.Context) (*texture.PixelBuffer, error) {
	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	p := s.model.Snapshot()
	seed := s.seeds()
	s.mu.Unlock()

	buf, err := s.gen.Generate(ctx, p, seed)
	if err != nil {
		s.log().Warn("generation failed, keeping previous texture", "seed", seed, "error", err)
		return nil, err
	}

	s.mu.Lock()
	current := s.epoch == epoch
	if current {
		s.buffer = buf
		s.lastSeed = seed
	}
	s.mu.Unlock()

	if !current {
		s.log().Debug("texture superseded, not stored", "seed", seed)
		return buf, nil
	}
	s.log().Info("texture ready", "seed", seed, "width", buf.Width, "height", buf.Height)
	return buf, nil
}

// Clear drops the current buffer. Parameters are untouched.
func (s *Session) Clear() {
	s.mu.Lock()
	s.epoch++
	s.buffer = nil
	s.mu.Unlock()
}

// Buffer returns the current buffer, or nil.
func (s *Session) Buffer() *texture.PixelBuffer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buffer
}

// LastSeed returns the seed of the current buffer.
func (s *Session) LastSeed() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeed
}

func (s *Session) log() *slog.Logger {
	if s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
