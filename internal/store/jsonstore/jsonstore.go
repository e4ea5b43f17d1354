// Package jsonstore is a JSON-backed cache of processed snapshots, one
// file per format/rating/month: <dir>/<month>/<format>-<rating>.json.
// There is no locking; writers go through a temp file and rename.
package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/idilsaglam/pokestats/internal/api"
	"github.com/idilsaglam/pokestats/internal/model"
)

// ErrNotCached is returned when a snapshot has not been downloaded.
var ErrNotCached = errors.New("snapshot not cached")

var (
	fileRe  = regexp.MustCompile(`^([a-z0-9]+)-(\d+)\.json$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

type Store struct {
	Dir string
}

func New(dir string) *Store {
	return &Store{Dir: dir}
}

func (s *Store) path(format string, rating int, month string) string {
	return filepath.Join(s.Dir, month, fmt.Sprintf("%s-%d.json", format, rating))
}

// Load reads one snapshot. An empty month means the newest cached month.
func (s *Store) Load(q model.StatsQuery) (*model.Stats, error) {
	month := q.Month
	if month == "" {
		months, err := s.Months(context.Background())
		if err != nil {
			return nil, err
		}
		if len(months) == 0 {
			return nil, fmt.Errorf("%s: %w", q, ErrNotCached)
		}
		month = months[0]
	}
	b, err := os.ReadFile(s.path(q.Format, q.Rating, month))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", q, ErrNotCached)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var st model.Stats
	if err := json.Unmarshal(b, &st); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return &st, nil
}

// Save writes st under the format/rating/month in its Meta.
func (s *Store) Save(st *model.Stats) error {
	m := st.Meta
	if m.Format == "" || m.Month == "" {
		return fmt.Errorf("save: snapshot meta needs format and month, got %+v", m)
	}
	p := s.path(m.Format, int(m.Rating), m.Month)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, p); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// Months lists cached months, newest first. Directories not named
// YYYY-MM are ignored.
func (s *Store) Months(context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var months []string
	for _, e := range entries {
		if e.IsDir() && monthRe.MatchString(e.Name()) {
			months = append(months, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// Formats lists the format codes cached for month.
func (s *Store) Formats(_ context.Context, month string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(s.Dir, month))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("read dir: %w", err)
	}
	seen := map[string]bool{}
	formats := []string{}
	for _, e := range entries {
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		formats = append(formats, m[1])
	}
	sort.Strings(formats)
	return formats, nil
}

// Ratings lists the cached ratings of format in month, ascending.
func (s *Store) Ratings(month, format string) ([]int, error) {
	entries, err := os.ReadDir(filepath.Join(s.Dir, month))
	if err != nil {
		return nil, fmt.Errorf("read dir: %w", err)
	}
	var out []int
	for _, e := range entries {
		m := fileRe.FindStringSubmatch(e.Name())
		if m == nil || !strings.EqualFold(m[1], format) {
			continue
		}
		n, _ := strconv.Atoi(m[2])
		out = append(out, n)
	}
	sort.Ints(out)
	return out, nil
}

// Stats satisfies api.Client from the cache.
func (s *Store) Stats(_ context.Context, q model.StatsQuery) (*model.Stats, error) {
	return s.Load(q)
}

// Pokemon satisfies api.Client from the cache.
func (s *Store) Pokemon(_ context.Context, q model.StatsQuery, name string) (*model.Pokemon, error) {
	st, err := s.Load(q)
	if err != nil {
		return nil, err
	}
	return api.PokemonFrom(st, name)
}

var _ api.Client = (*Store)(nil)
