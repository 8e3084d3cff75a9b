package nyfed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/meenmo/stirfutures/rates"
)

// DataDir resolves the rate cache directory: $STIR_DATA_DIR when set,
// otherwise ./data relative to the working directory.
func DataDir() string {
	if dir := os.Getenv("STIR_DATA_DIR"); dir != "" {
		return dir
	}
	return "data"
}

// Store is a disk-backed cache in front of a Client. Each rate is one JSON
// file of observations; fresh fetches are merged into the cached rows with
// the fetched values winning on date collisions.
type Store struct {
	mu     sync.Mutex
	dir    string
	client *Client
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, client *Client) *Store {
	return &Store{dir: dir, client: client}
}

// Get returns the named rate series ("sofr" or "effr") over [start, end],
// serving from the cache when it covers the window and fetching+merging
// otherwise. refresh forces a fetch regardless of coverage.
func (s *Store) Get(ctx context.Context, name string, start, end time.Time, refresh bool) (*rates.Series, error) {
	fetch, err := s.fetcher(name)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cached, err := s.load(name)
	if err != nil {
		return nil, err
	}

	if refresh || !coversRange(cached, start, end) {
		fetched, err := fetch(ctx, start, end)
		if err != nil {
			return nil, err
		}
		cached = cached.Merge(fetched)
		if err := s.save(name, cached); err != nil {
			return nil, err
		}
		log.Debug().Str("rate", name).Int("rows", cached.Len()).Msg("rate cache updated")
	} else {
		log.Debug().Str("rate", name).Msg("rate cache hit")
	}

	return cached.Between(start, end), nil
}

func (s *Store) fetcher(name string) (func(context.Context, time.Time, time.Time) (*rates.Series, error), error) {
	switch strings.ToLower(name) {
	case "sofr":
		return s.client.FetchSOFR, nil
	case "effr":
		return s.client.FetchEFFR, nil
	}
	return nil, fmt.Errorf("nyfed: unknown rate %q", name)
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, strings.ToLower(name)+".json")
}

func (s *Store) load(name string) (*rates.Series, error) {
	raw, err := os.ReadFile(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		return rates.New(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("nyfed: read cache: %w", err)
	}

	var obs []rates.Observation
	if err := json.Unmarshal(raw, &obs); err != nil {
		return nil, fmt.Errorf("nyfed: parse cache %s: %w", s.path(name), err)
	}
	return rates.New(obs), nil
}

func (s *Store) save(name string, series *rates.Series) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("nyfed: create cache dir: %w", err)
	}
	raw, err := json.MarshalIndent(series.Observations(), "", "  ")
	if err != nil {
		return fmt.Errorf("nyfed: encode cache: %w", err)
	}
	if err := os.WriteFile(s.path(name), raw, 0o644); err != nil {
		return fmt.Errorf("nyfed: write cache: %w", err)
	}
	return nil
}

// coversRange reports whether the cached series already spans the
// requested window. An empty cache covers nothing; a fully unbounded
// request is covered by any non-empty cache.
func coversRange(s *rates.Series, start, end time.Time) bool {
	first, ok := s.First()
	if !ok {
		return false
	}
	last, _ := s.Last()

	if !start.IsZero() && start.Before(first.Date) {
		return false
	}
	if !end.IsZero() && end.After(last.Date) {
		return false
	}
	return true
}
