// Package pipeline wires the stages together: seed load, parallel log
// parsing, aggregation, per-callsign resolution, prefill emission.
package pipeline

import (
	"context"
	"fmt"
	"os"

	"github.com/km6i/prefill/internal/cabrillo"
	"github.com/km6i/prefill/internal/cache"
	"github.com/km6i/prefill/internal/emit"
	"github.com/km6i/prefill/internal/model"
	"github.com/km6i/prefill/internal/resolve"
	"github.com/km6i/prefill/internal/worker"
)

// Pipeline runs the complete prefill generation
type Pipeline struct {
	cfg     *model.Config
	loader  *worker.LogLoader
	emitter emit.Emitter
}

// Result is the outcome of one run
type Result struct {
	Entries     map[string]model.ResolvedEntry
	Ambiguities []resolve.Ambiguity

	Files       int // Log files parsed
	CachedFiles int // Of those, served from the parse cache
	Lines       int // Total log lines read
	QSOs        int // QSO lines successfully parsed
	SeedStats   cabrillo.SeedStats
}

// NewPipeline creates a pipeline from the configuration
func NewPipeline(cfg *model.Config) (*Pipeline, error) {
	var parser *cabrillo.Parser
	if cfg.Logs.Dialect != "" {
		p, err := cabrillo.NewParserForDialect(cfg.Logs.Dialect)
		if err != nil {
			return nil, err
		}
		parser = p
	} else {
		parser = cabrillo.NewParser()
	}

	emitter, err := emit.ForFormat(cfg.Output.Format)
	if err != nil {
		return nil, err
	}

	var c cache.Cache
	if cfg.Cache.Enabled {
		c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
	}

	return &Pipeline{
		cfg:     cfg,
		loader:  worker.NewLogLoader(parser, c, cfg.Cache.TTL, cfg.Concurrency.Workers),
		emitter: emitter,
	}, nil
}

// Run ingests the seed file and log directories, then resolves every
// callsign. Any unreadable log or invalid record aborts the whole run;
// there are no partial results.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	result := &Result{}
	agg := resolve.NewAggregator()

	if p.cfg.Logs.Seed != "" {
		records, stats, err := cabrillo.LoadSeedFile(p.cfg.Logs.Seed)
		if err != nil {
			return nil, fmt.Errorf("seed: %w", err)
		}
		result.SeedStats = stats
		if err := agg.IngestAll(records); err != nil {
			return nil, fmt.Errorf("aggregate seed: %w", err)
		}
	}

	if len(p.cfg.Logs.Dirs) > 0 {
		parsed, err := p.loader.LoadDirs(ctx, p.cfg.Logs.Dirs)
		if err != nil {
			return nil, fmt.Errorf("load logs: %w", err)
		}
		for _, pr := range parsed {
			if pr.Error != nil {
				return nil, fmt.Errorf("load logs: %w", pr.Error)
			}
			result.Files++
			if pr.Cached {
				result.CachedFiles++
			}
			result.Lines += pr.Stats.Lines
			result.QSOs += pr.Stats.QSOs
			if err := agg.IngestAll(pr.Records); err != nil {
				return nil, fmt.Errorf("aggregate %s: %w", pr.Path, err)
			}
		}
	}

	result.Entries, result.Ambiguities = worker.ResolveAll(agg, p.cfg.Concurrency.Workers)
	return result, nil
}

// WriteOutput emits the resolved entries to the configured path, or stdout
// when no path is set
func (p *Pipeline) WriteOutput(result *Result) error {
	if p.cfg.Output.Path == "" {
		return p.emitter.Emit(os.Stdout, result.Entries)
	}

	f, err := os.Create(p.cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := p.emitter.Emit(f, result.Entries); err != nil {
		return fmt.Errorf("emit %s: %w", p.emitter.Name(), err)
	}
	return nil
}
