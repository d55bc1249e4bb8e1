// Package worksheet generates batches of problems concurrently. Every item
// draws from its own source seeded with seed+index, so a worksheet is
// reproducible from its seed no matter how the work is scheduled.
package worksheet

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mathgen/internal/logger"
	"github.com/abhisek/mathgen/internal/problemgen"
	"github.com/abhisek/mathgen/internal/registry"
	"github.com/abhisek/mathgen/internal/rng"
	"github.com/abhisek/mathgen/internal/schema"
	"github.com/abhisek/mathgen/internal/store"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	// MaxCount bounds the number of problems in one worksheet.
	MaxCount = 1000

	// MaxRedraws bounds how often one item is drawn again, either because
	// an output check marked its failure retryable or because its question
	// repeats an earlier item's.
	MaxRedraws = 10
)

// Request describes a worksheet to generate.
type Request struct {
	GeneratorID string

	// Preset is applied over the generator defaults before Params.
	Preset string
	Params schema.Values

	// Count defaults to 1.
	Count int

	// Seed makes the worksheet reproducible. Zero picks a random seed.
	Seed uint64

	// Workers overrides the service's concurrency limit when positive.
	Workers int

	// Unique redraws items whose question repeats an earlier item. When the
	// parameters allow too few distinct questions, duplicates remain after
	// MaxRedraws attempts.
	Unique bool

	// Save stores the problems when the service has a store.
	Save bool
}

// Item is one problem of a worksheet.
type Item struct {
	ID    string `json:"id" yaml:"id"`
	Index int    `json:"index" yaml:"index"`

	// Seed regenerates this item's problem on its own.
	Seed    uint64              `json:"seed" yaml:"seed"`
	Problem *problemgen.Problem `json:"problem" yaml:"problem"`

	attempt int
}

// Worksheet is a generated batch of problems. Params is the resolved
// parameter set every item was generated from, defaults included.
type Worksheet struct {
	ID          string        `json:"id" yaml:"id"`
	GeneratorID string        `json:"generator" yaml:"generator"`
	Seed        uint64        `json:"seed" yaml:"seed"`
	Params      schema.Values `json:"params" yaml:"params"`
	Items       []Item        `json:"items" yaml:"items"`
	CreatedAt   time.Time     `json:"createdAt" yaml:"createdAt"`
}

// Service generates worksheets from the generators of a registry.
type Service struct {
	registry *registry.Registry
	repo     store.ProblemRepo
	metrics  *Metrics
	log      logger.Logger
	workers  int
}

// Option configures a Service.
type Option func(*Service)

// WithStore saves requested worksheets to repo.
func WithStore(repo store.ProblemRepo) Option {
	return func(s *Service) { s.repo = repo }
}

// WithMetrics records generation metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger sets the service logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) { s.log = l }
}

// WithWorkers sets the default concurrency limit.
func WithWorkers(n int) Option {
	return func(s *Service) { s.workers = n }
}

// NewService returns a Service over reg.
func NewService(reg *registry.Registry, opts ...Option) *Service {
	s := &Service{registry: reg, log: logger.Nop(), workers: 4}
	for _, opt := range opts {
		opt(s)
	}
	if s.workers < 1 {
		s.workers = 1
	}
	return s
}

// Overrides returns the partial parameter set for req: the preset values
// (if any) with req.Params on top.
func Overrides(g problemgen.Generator, presetID string, params schema.Values) (schema.Values, error) {
	if presetID == "" {
		return params.Clone(), nil
	}
	preset, ok := g.ParameterSchema().Preset(presetID)
	if !ok {
		return nil, problemgen.Reject(fmt.Sprintf("unknown preset %q", presetID))
	}
	return schema.Overlay(preset.Values, params)
}

// resolve expands the request's overrides into the full parameter set the
// generator will run with, so a worksheet records every value it used.
func resolve(g problemgen.Generator, presetID string, params schema.Values) (schema.Values, error) {
	overrides, err := Overrides(g, presetID, params)
	if err != nil {
		return nil, err
	}
	r, ok := g.(problemgen.Resolver)
	if !ok {
		return overrides, nil
	}
	return r.Resolve(overrides)
}

// Generate builds the worksheet described by req. Any configuration error
// fails the whole worksheet.
func (s *Service) Generate(ctx context.Context, req Request) (*Worksheet, error) {
	start := time.Now()

	entry, err := s.registry.Get(req.GeneratorID)
	if err != nil {
		return nil, err
	}
	count := req.Count
	if count == 0 {
		count = 1
	}
	if count < 0 || count > MaxCount {
		return nil, fmt.Errorf("count must be between 1 and %d, got %d", MaxCount, count)
	}
	seed := req.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	workers := s.workers
	if req.Workers > 0 {
		workers = req.Workers
	}

	params, err := resolve(entry.New(rng.New(seed)), req.Preset, req.Params)
	if err != nil {
		s.countConfigError(entry.ID)
		return nil, err
	}

	log := s.log.With("generator", entry.ID, "seed", seed)
	log.Debug("Generating worksheet", "count", count, "workers", workers)

	ws := &Worksheet{
		ID:          uuid.NewString(),
		GeneratorID: entry.ID,
		Seed:        seed,
		Params:      params,
		Items:       make([]Item, count),
		CreatedAt:   time.Now(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := 0; i < count; i++ {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			item, err := draw(entry, params, seed, i, count, 0)
			if err != nil {
				return err
			}
			ws.Items[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, s.failed(log, entry.ID, err)
	}

	if req.Unique {
		dups, err := dedupe(ctx, ws, entry, params, count)
		if err != nil {
			return nil, s.failed(log, entry.ID, err)
		}
		if dups > 0 {
			log.Warn("Parameters allow too few distinct questions", "duplicates", dups)
		}
	}

	fallbacks := 0
	for _, item := range ws.Items {
		if item.Problem.Metadata.Bool(problemgen.MetaSamplingFallback) {
			fallbacks++
		}
	}
	if fallbacks > 0 {
		log.Warn("Constrained sampling fell back to default values", "problems", fallbacks)
	}
	if s.metrics != nil {
		s.metrics.problemsGenerated.WithLabelValues(entry.ID).Add(float64(count))
		s.metrics.samplingFallbacks.WithLabelValues(entry.ID).Add(float64(fallbacks))
		s.metrics.duration.WithLabelValues(entry.ID).Observe(time.Since(start).Seconds())
	}

	if req.Save && s.repo != nil {
		if err := s.repo.Save(ctx, records(ws)...); err != nil {
			return nil, fmt.Errorf("save worksheet: %w", err)
		}
		log.Info("Saved worksheet", "worksheet", ws.ID, "count", count)
	}
	return ws, nil
}

// itemSeed spaces redraws count apart so no two (index, attempt) pairs of
// one worksheet share a seed.
func itemSeed(seed uint64, index, count, attempt int) uint64 {
	return seed + uint64(index) + uint64(attempt)*uint64(count)
}

// draw generates item index starting at attempt from, drawing again while
// the output checks fail with a retryable error.
func draw(entry registry.Entry, params schema.Values, seed uint64, index, count, from int) (Item, error) {
	var lastErr error
	for attempt := from; attempt < from+MaxRedraws; attempt++ {
		sd := itemSeed(seed, index, count, attempt)
		p, err := entry.New(rng.New(sd)).GenerateProblem(params)
		var verr *problemgen.ValidationError
		if errors.As(err, &verr) && verr.Retryable {
			lastErr = err
			continue
		}
		if err != nil {
			return Item{}, fmt.Errorf("item %d: %w", index, err)
		}
		return Item{ID: uuid.NewString(), Index: index, Seed: sd, Problem: p, attempt: attempt}, nil
	}
	return Item{}, fmt.Errorf("item %d: gave up after %d attempts: %w", index, MaxRedraws, lastErr)
}

// dedupe redraws, in index order, items whose question was already seen.
// It returns how many duplicates are left.
func dedupe(ctx context.Context, ws *Worksheet, entry registry.Entry, params schema.Values, count int) (int, error) {
	seen := make(map[string]bool, len(ws.Items))
	dups := 0
	for i := range ws.Items {
		for redraws := 0; seen[ws.Items[i].Problem.Question]; redraws++ {
			if redraws == MaxRedraws {
				dups++
				break
			}
			if err := ctx.Err(); err != nil {
				return 0, err
			}
			item, err := draw(entry, params, ws.Seed, i, count, ws.Items[i].attempt+1)
			if err != nil {
				return 0, err
			}
			ws.Items[i] = item
		}
		seen[ws.Items[i].Problem.Question] = true
	}
	return dups, nil
}

// failed records and logs a generation failure and returns the error the
// caller should see.
func (s *Service) failed(log logger.Logger, generatorID string, err error) error {
	if problemgen.IsConfigurationError(err) {
		s.countConfigError(generatorID)
		log.Debug("Rejected worksheet parameters", "error", err)
		return unwrapConfigurationError(err)
	}
	if !errors.Is(err, context.Canceled) {
		log.Error("Worksheet generation failed", "error", err)
	}
	return err
}

func (s *Service) countConfigError(generatorID string) {
	if s.metrics != nil {
		s.metrics.configErrors.WithLabelValues(generatorID).Inc()
	}
}

// unwrapConfigurationError drops the item prefix: a configuration error is
// the same for every item.
func unwrapConfigurationError(err error) error {
	var cerr *problemgen.ConfigurationError
	if errors.As(err, &cerr) {
		return cerr
	}
	return err
}

func records(ws *Worksheet) []store.ProblemRecord {
	recs := make([]store.ProblemRecord, len(ws.Items))
	for i, item := range ws.Items {
		recs[i] = store.ProblemRecord{
			ID:          item.ID,
			WorksheetID: ws.ID,
			GeneratorID: ws.GeneratorID,
			Seed:        item.Seed,
			Index:       item.Index,
			Params:      ws.Params,
			Problem:     *item.Problem,
			CreatedAt:   ws.CreatedAt,
		}
	}
	return recs
}
