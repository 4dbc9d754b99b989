package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/km6i/prefill/internal/cabrillo"
	"github.com/km6i/prefill/internal/cache"
	"github.com/km6i/prefill/internal/model"
)

// FileParser parses one log file into contact records
type FileParser interface {
	ParseFile(path string) ([]model.ContactRecord, cabrillo.Stats, error)
}

// ParseJob parses one log file, going through the cache when one is set
type ParseJob struct {
	Path   string
	Parser FileParser
	Cache  cache.Cache
	TTL    time.Duration
}

// ParseResult is the outcome of parsing one log file
type ParseResult struct {
	Path    string
	Records []model.ContactRecord
	Stats   cabrillo.Stats
	Cached  bool
	Error   error
}

// GetError returns the error from the parse result
func (r *ParseResult) GetError() error {
	return r.Error
}

// cachedParse is the cache payload for one parsed file
type cachedParse struct {
	Records []model.ContactRecord `json:"records"`
	Stats   cabrillo.Stats        `json:"stats"`
}

// Execute parses the file, serving from cache when the file is unchanged
func (j *ParseJob) Execute(ctx context.Context) Result {
	if err := ctx.Err(); err != nil {
		return &ParseResult{Path: j.Path, Error: err}
	}

	var key string
	if j.Cache != nil {
		info, err := os.Stat(j.Path)
		if err != nil {
			return &ParseResult{Path: j.Path, Error: fmt.Errorf("stat log: %w", err)}
		}
		key = cache.FileKey(j.Path, info)

		if data, found := j.Cache.Get(key); found {
			var cached cachedParse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &ParseResult{
					Path:    j.Path,
					Records: cached.Records,
					Stats:   cached.Stats,
					Cached:  true,
				}
			}
			// Corrupt entry: fall through and re-parse.
			_ = j.Cache.Delete(key)
		}
	}

	records, stats, err := j.Parser.ParseFile(j.Path)
	if err != nil {
		return &ParseResult{Path: j.Path, Error: err}
	}

	if j.Cache != nil {
		if data, err := json.Marshal(cachedParse{Records: records, Stats: stats}); err == nil {
			_ = j.Cache.Set(key, data, j.TTL)
		}
	}

	return &ParseResult{Path: j.Path, Records: records, Stats: stats}
}

// LogLoader parses the log files of one or more directories in parallel
type LogLoader struct {
	parser  FileParser
	cache   cache.Cache // Nil disables caching
	ttl     time.Duration
	workers int
}

// NewLogLoader creates a log loader
func NewLogLoader(parser FileParser, c cache.Cache, ttl time.Duration, workers int) *LogLoader {
	return &LogLoader{
		parser:  parser,
		cache:   c,
		ttl:     ttl,
		workers: workers,
	}
}

// LoadDirs parses every file in the given directories concurrently. Results
// come back sorted by path; duplicate paths across overlapping directories
// are parsed once.
func (l *LogLoader) LoadDirs(ctx context.Context, dirs []string) ([]*ParseResult, error) {
	paths, err := listLogFiles(dirs)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, nil
	}

	pool := NewPool(l.workers)
	pool.Start()

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			pool.Shutdown()
			return nil, err
		}
		pool.Submit(&ParseJob{Path: path, Parser: l.parser, Cache: l.cache, TTL: l.ttl})
	}

	results := pool.Wait()

	parsed := make([]*ParseResult, 0, len(results))
	for _, result := range results {
		parsed = append(parsed, result.(*ParseResult))
	}
	sort.Slice(parsed, func(i, j int) bool { return parsed[i].Path < parsed[j].Path })
	return parsed, nil
}

// listLogFiles collects regular, non-hidden files from the directories,
// deduplicated by absolute path
func listLogFiles(dirs []string) ([]string, error) {
	var paths []string
	seen := make(map[string]bool)

	for _, dir := range dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, fmt.Errorf("read log dir: %w", err)
		}
		for _, entry := range entries {
			if entry.IsDir() || entry.Name()[0] == '.' {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if abs, err := filepath.Abs(path); err == nil {
				path = abs
			}
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}

	sort.Strings(paths)
	return paths, nil
}
