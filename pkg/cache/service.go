package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultMaxEntries bounds the report cache.
const DefaultMaxEntries = 200

// Entry is a cached aapt report.
type Entry struct {
	Report   string `json:"report"`
	CachedAt int64  `json:"cachedAt"`
}

// Service keeps aapt badging reports so that analyzing an unchanged APK
// again does not spawn aapt.
type Service struct {
	path       string
	maxEntries int
	logger     zerolog.Logger

	mu      sync.RWMutex
	reports map[string]Entry
	dirty   bool
}

// Config for creating a new Service
type Config struct {
	Dir        string
	MaxEntries int
	Logger     zerolog.Logger
}

// New creates the cache directory and loads any persisted reports.
func New(cfg Config) (*Service, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0755); err != nil {
		return nil, err
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}

	s := &Service{
		path:       filepath.Join(cfg.Dir, "aapt_cache.json"),
		maxEntries: cfg.MaxEntries,
		logger:     cfg.Logger,
		reports:    make(map[string]Entry),
	}
	s.load()
	return s, nil
}

// Key identifies an APK by absolute path, size and modification time, so a
// rebuilt file at the same path misses.
func Key(apk string) (string, error) {
	abs, err := filepath.Abs(apk)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s|%d|%d", abs, info.Size(), info.ModTime().UnixNano()), nil
}

// Get returns the cached report for key.
func (s *Service) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.reports[key]
	return e.Report, ok
}

// Put caches report under key, evicting the oldest entries past the limit.
func (s *Service) Put(key, report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[key] = Entry{Report: report, CachedAt: time.Now().UnixNano()}
	s.dirty = true
	s.evict()
}

func (s *Service) evict() {
	over := len(s.reports) - s.maxEntries
	if over <= 0 {
		return
	}
	keys := make([]string, 0, len(s.reports))
	for k := range s.reports {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return s.reports[keys[i]].CachedAt < s.reports[keys[j]].CachedAt
	})
	for _, k := range keys[:over] {
		delete(s.reports, k)
	}
}

// Clear drops every cached report.
func (s *Service) Clear() {
	s.mu.Lock()
	s.reports = make(map[string]Entry)
	s.dirty = true
	s.mu.Unlock()
}

// Len returns the number of cached reports.
func (s *Service) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reports)
}

// Path returns the cache file path
func (s *Service) Path() string {
	return s.path
}

// Save persists the cache when it changed since the last save.
func (s *Service) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty {
		return nil
	}

	data, err := json.Marshal(s.reports)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		s.logger.Error().Err(err).Str("path", s.path).Msg("Error saving aapt cache")
		return err
	}
	s.dirty = false
	return nil
}

func (s *Service) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	if err := json.Unmarshal(data, &s.reports); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("Ignoring unreadable aapt cache")
		s.reports = make(map[string]Entry)
		return
	}
	if s.reports == nil {
		s.reports = make(map[string]Entry)
	}
	s.evict()
}

// Close saves the cache before shutdown.
func (s *Service) Close() error {
	return s.Save()
}
