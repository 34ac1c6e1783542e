// Package service builds weekly reports from the stored workbook snapshot and
// implements the dependencies required by the HTTP API.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/coocood/freecache"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/adapters/repository"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/metric"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/quantity"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/report"
	"github.com/dagoperezh-lgtm/athlos-360-app/internal/domain/workbook"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/logger"
	"github.com/dagoperezh-lgtm/athlos-360-app/pkg/metrics"
)

// Default service configuration constants.
const (
	megabyte         = 1024 * 1024
	defaultCacheSize = 32 * megabyte
	defaultCacheTTL  = 10 * time.Minute
)

// Team is the team-level part of a report.
type Team struct {
	SnapshotID  string             `json:"snapshot_id"`
	GeneratedAt time.Time          `json:"generated_at"`
	Metrics     []report.TeamLine  `json:"metrics"`
	Diagnostics report.Diagnostics `json:"diagnostics"`
	Athletes    []string           `json:"athletes"`
}

// Service implements the API dependencies for the report system.
type Service struct {
	mu sync.RWMutex

	// Core components
	store    repository.Store
	loader   *repository.FileLoader
	table    *metric.Table
	resolver *workbook.Resolver
	builder  *report.Builder
	cache    *freecache.Cache

	// Configuration
	cacheSize int
	cacheTTL  time.Duration
	now       func() time.Time

	// Serializes builds so concurrent misses build once.
	buildMu sync.Mutex

	// Counters
	builds atomic.Int64
	hits   atomic.Int64
	misses atomic.Int64

	started bool
	logger  logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		cacheSize: defaultCacheSize,
		cacheTTL:  defaultCacheTTL,
		now:       time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components and performs the first file load
// when a loader is configured. A failed load is logged, not returned: the
// service stays up and answers ErrNoSnapshot until workbooks arrive.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	s.logger.Info(ctx, "starting report service...")

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.table == nil {
		s.table = metric.Defaults()
	}
	if s.resolver == nil {
		s.resolver = workbook.NewResolver()
	}
	s.builder = report.NewBuilder(report.WithTable(s.table), report.WithResolver(s.resolver))
	s.cache = freecache.NewCache(s.cacheSize)

	if s.loader != nil {
		s.refresh(ctx)
	}

	s.started = true
	s.logger.Info(ctx, "report service started",
		logger.Int("metrics", s.table.Len()),
		logger.Int("cacheSizeBytes", s.cacheSize),
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Bool("fileLoader", s.loader != nil),
	)

	return nil
}

// Stop shuts down the service and drops cached reports.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping report service...")
	s.cache.Clear()
	s.started = false
	s.logger.Info(context.Background(), "report service stopped")
}

func (s *Service) ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// refresh reloads workbook files when the loader says they are stale.
func (s *Service) refresh(ctx context.Context) {
	if s.loader == nil || !s.loader.Stale() {
		return
	}
	changed, err := s.loader.Load(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "workbook_load")
		s.logger.Warn(ctx, "failed to load workbook files", logger.Error(err))
	}
	if changed {
		s.logger.Info(ctx, "workbook files reloaded")
	}
}

// snapshot returns the latest complete snapshot, refreshing files first.
func (s *Service) snapshot(ctx context.Context) (repository.Snapshot, error) {
	if err := s.ready(); err != nil {
		return repository.Snapshot{}, err
	}
	s.refresh(ctx)
	snap, err := s.store.Snapshot(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		return repository.Snapshot{}, ErrNoSnapshot
	}
	if err != nil {
		return repository.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return snap, nil
}

// Report returns the full report for the latest snapshot, built at most once
// per snapshot while it stays cached.
func (s *Service) Report(ctx context.Context) (report.Report, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.Report{}, err
	}
	if rep, ok := s.cachedReport(ctx, snap.ID); ok {
		return rep, nil
	}
	return s.build(ctx, snap)
}

// Team returns the team averages and the athlete roster.
func (s *Service) Team(ctx context.Context) (Team, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return Team{}, err
	}
	var team Team
	if s.cacheGet(ctx, teamKey(snap.ID), &team) {
		s.hit()
		return team, nil
	}
	rep, err := s.build(ctx, snap)
	if err != nil {
		return Team{}, err
	}
	return teamOf(rep), nil
}

// Athletes returns every athlete card of the latest report.
func (s *Service) Athletes(ctx context.Context) ([]report.Athlete, error) {
	rep, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}
	return rep.Athletes, nil
}

// Athlete returns one athlete card. Names match by name key, so case,
// spacing and accents are ignored.
func (s *Service) Athlete(ctx context.Context, name string) (report.Athlete, error) {
	key := workbook.NameKey(name)
	if key == "" {
		return report.Athlete{}, ErrAthleteNotFound
	}
	snap, err := s.snapshot(ctx)
	if err != nil {
		return report.Athlete{}, err
	}

	var a report.Athlete
	if s.cacheGet(ctx, athleteKey(snap.ID, key), &a) {
		s.hit()
		return a, nil
	}

	rep, ok := s.cachedReport(ctx, snap.ID)
	if !ok {
		if rep, err = s.build(ctx, snap); err != nil {
			return report.Athlete{}, err
		}
	}
	if a, ok := rep.FindAthlete(name); ok {
		return a, nil
	}
	return report.Athlete{}, fmt.Errorf("%w: %s", ErrAthleteNotFound, name)
}

// PutWorkbook stores a workbook snapshot. Cached reports of the previous
// snapshot stop being served because the snapshot id changes.
func (s *Service) PutWorkbook(ctx context.Context, kind repository.Kind, wb *workbook.Workbook) error {
	if err := s.ready(); err != nil {
		return err
	}
	snap, err := s.store.Put(ctx, kind, wb)
	if err != nil {
		metrics.RecordErrorByComponent("service", "workbook_put")
		return fmt.Errorf("put %s workbook: %w", kind, err)
	}
	s.logger.Info(ctx, "workbook stored",
		logger.String("kind", string(kind)),
		logger.Int("sheets", len(wb.Sheets)),
		logger.String("snapshot", snap.ID),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"cacheSizeBytes": s.cacheSize,
		"cacheTTLSec":    int(s.cacheTTL / time.Second),
		"builds":         s.builds.Load(),
		"cacheHits":      s.hits.Load(),
		"cacheMisses":    s.misses.Load(),
	}

	if s.started {
		stats["cacheEntries"] = s.cache.EntryCount()
		stats["metrics"] = s.table.Len()
		if h, ok := s.store.(interface{ Has() (bool, bool) }); ok {
			cur, hist := h.Has()
			stats["hasCurrent"] = cur
			stats["hasHistory"] = hist
		}
	}

	return stats
}

// build computes the report for snap and caches its parts.
func (s *Service) build(ctx context.Context, snap repository.Snapshot) (report.Report, error) {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	// Another caller may have built this snapshot while we waited.
	if rep, ok := s.cachedReport(ctx, snap.ID); ok {
		return rep, nil
	}
	s.misses.Add(1)
	metrics.RecordReportCacheMiss()

	start := time.Now()
	rep := s.builder.Build(snap.Current, snap.History)
	rep.SnapshotID = snap.ID
	rep.GeneratedAt = s.now().Round(0)
	took := time.Since(start)

	s.builds.Add(1)
	d := rep.Diagnostics
	metrics.RecordReportBuild(float64(took.Microseconds()) / 1000)
	metrics.UpdateAthletesReported(len(rep.Athletes))
	metrics.RecordCellsParsed(quantity.StatusValue.String(), d.Values)
	metrics.RecordCellsParsed(quantity.StatusAbsent.String(), d.Absent)
	metrics.RecordCellsParsed(quantity.StatusRejected.String(), d.Rejected)
	metrics.UpdateMissingMetrics(len(d.MissingColumns), len(d.MissingSheets))

	s.logger.Info(ctx, "report built",
		logger.String("snapshot", snap.ID),
		logger.Int("athletes", len(rep.Athletes)),
		logger.Int("rejectedCells", d.Rejected),
		logger.Duration("took", took),
	)
	if d.Rejected > 0 {
		s.logger.Warn(ctx, "cells rejected as corrupt", logger.Int("count", d.Rejected))
	}
	if d.NameColumnMissing {
		s.logger.Warn(ctx, "current-week sheet has no athlete name column")
	}

	for _, a := range rep.Athletes {
		s.cacheSet(ctx, athleteKey(snap.ID, a.Key), a)
	}
	s.cacheSet(ctx, teamKey(snap.ID), teamOf(rep))

	return rep, nil
}

// cachedReport reassembles a report from its cached parts.
func (s *Service) cachedReport(ctx context.Context, id string) (report.Report, bool) {
	var team Team
	if !s.cacheGet(ctx, teamKey(id), &team) {
		return report.Report{}, false
	}
	rep := report.Report{
		SnapshotID:  team.SnapshotID,
		GeneratedAt: team.GeneratedAt,
		Team:        team.Metrics,
		Diagnostics: team.Diagnostics,
	}
	seen := make(map[string]bool, len(team.Athletes))
	for _, name := range team.Athletes {
		key := workbook.NameKey(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		var a report.Athlete
		if !s.cacheGet(ctx, athleteKey(id, key), &a) {
			return report.Report{}, false
		}
		rep.Athletes = append(rep.Athletes, a)
	}
	s.hit()
	return rep, true
}

func (s *Service) hit() {
	s.hits.Add(1)
	metrics.RecordReportCacheHit()
}

func (s *Service) cacheGet(ctx context.Context, key string, v any) bool {
	b, err := s.cache.Get([]byte(key))
	if err != nil {
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		s.logger.Error(ctx, "failed to decode cached report part", logger.String("key", key), logger.Error(err))
		s.cache.Del([]byte(key))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		s.logger.Error(ctx, "failed to encode report part", logger.String("key", key), logger.Error(err))
		return
	}
	if err := s.cache.Set([]byte(key), b, int(s.cacheTTL/time.Second)); err != nil {
		s.logger.Warn(ctx, "failed to cache report part",
			logger.String("key", key), logger.Int("bytes", len(b)), logger.Error(err))
	}
}

func teamOf(rep report.Report) Team {
	names := make([]string, len(rep.Athletes))
	for i, a := range rep.Athletes {
		names[i] = a.Name
	}
	return Team{
		SnapshotID:  rep.SnapshotID,
		GeneratedAt: rep.GeneratedAt,
		Metrics:     rep.Team,
		Diagnostics: rep.Diagnostics,
		Athletes:    names,
	}
}

func teamKey(id string) string { return "team::" + id }

func athleteKey(id, key string) string { return "athlete::" + id + "::" + key }
