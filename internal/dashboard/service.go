// Package dashboard computes dashboard views from the record store.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"vehicle-market-lab/internal/aggregation"
	"vehicle-market-lab/internal/domain"
	"vehicle-market-lab/internal/filter"
	"vehicle-market-lab/internal/idhash"
	"vehicle-market-lab/internal/metrics"
	"vehicle-market-lab/internal/observability"
	"vehicle-market-lab/internal/recordstore"
)

// ErrInvalidParams wraps every filter parameter rejection.
var ErrInvalidParams = errors.New("invalid filter params")

// Options controls what a computed view carries besides the summary tables.
type Options struct {
	// IncludeRows attaches the filtered and trimmed subsets.
	// Views with rows bypass the view cache.
	IncludeRows bool

	// RowsLimit caps each attached subset. Zero means no limit.
	RowsLimit int
}

// Service recomputes dashboards on filter changes.
// It is safe for concurrent use.
type Service struct {
	cache   *recordstore.Cache
	views   ViewCache
	palette Palette
	logger  *zap.Logger
	now     func() time.Time

	group singleflight.Group

	overallMu sync.Mutex
	overallID domain.SourceIdentity
	overall   *domain.KPISummary
}

// NewService creates a dashboard service. views may be nil to disable view caching.
func NewService(cache *recordstore.Cache, views ViewCache, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:   cache,
		views:   views,
		palette: ConditionPalette(),
		logger:  logger.With(zap.String("component", "dashboard")),
		now:     time.Now,
	}
}

// Filters returns the filter controls for the current dataset.
func (s *Service) Filters(ctx context.Context) (*domain.FilterOptions, error) {
	store, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	conditions := make([]string, 0, len(store.Conditions())+1)
	conditions = append(conditions, domain.ConditionAll)
	conditions = append(conditions, store.Conditions()...)

	return &domain.FilterOptions{
		Source:     store.Source(),
		Bounds:     store.Bounds(),
		Conditions: conditions,
		Types:      store.Types(),
		Defaults:   filter.DefaultParams(store.Bounds()),
		TotalCount: store.Len(),
		Palette:    s.palette.For(store.Conditions()),
	}, nil
}

// Compute builds the dashboard for params.
//
// Params are clamped to the dataset extremes before validation. Errors wrap
// ErrInvalidParams for rejected params and *recordstore.LoadError when the
// dataset cannot be loaded.
func (s *Service) Compute(ctx context.Context, params domain.FilterParams, opts Options) (*domain.Dashboard, error) {
	start := time.Now()

	store, err := s.cache.Get(ctx)
	if err != nil {
		observability.RecordDashboard("load_error", time.Since(start).Seconds(), 0, 0)
		return nil, err
	}

	params = filter.Clamp(params, store.Bounds())
	if err := filter.Validate(params, store.Conditions()); err != nil {
		observability.RecordDashboard("invalid", time.Since(start).Seconds(), 0, 0)
		return nil, fmt.Errorf("%w: %w", ErrInvalidParams, err)
	}

	viewID := idhash.ViewID(store.Source(), params)
	useCache := s.views != nil && !opts.IncludeRows

	if useCache {
		if d, ok := s.lookup(ctx, viewID); ok {
			observability.RecordDashboard("cached", time.Since(start).Seconds(), d.FilteredCount, d.Summary.TrimmedCount)
			return d, nil
		}
	}

	key := viewID
	if opts.IncludeRows {
		key = fmt.Sprintf("%s+rows:%d", viewID, opts.RowsLimit)
	}
	v, _, _ := s.group.Do(key, func() (any, error) {
		return s.compute(store, params, viewID, opts), nil
	})
	d := v.(*domain.Dashboard)

	if useCache {
		if err := s.views.Set(ctx, d); err != nil {
			s.logger.Warn("store view failed", zap.String("view_id", viewID), zap.Error(err))
		}
	}

	observability.RecordDashboard("ok", time.Since(start).Seconds(), d.FilteredCount, d.Summary.TrimmedCount)
	s.logger.Debug("dashboard computed",
		zap.String("view_id", viewID),
		zap.Int("filtered", d.FilteredCount),
		zap.Int("trimmed", d.Summary.TrimmedCount),
		zap.Duration("elapsed", time.Since(start)),
	)
	return d, nil
}

// lookup reads the view cache. Cache errors count as misses.
func (s *Service) lookup(ctx context.Context, viewID string) (*domain.Dashboard, bool) {
	d, ok, err := s.views.Get(ctx, viewID)
	if err != nil {
		s.logger.Warn("view cache lookup failed", zap.String("view_id", viewID), zap.Error(err))
		ok = false
	}
	observability.RecordViewCache(s.views.Backend(), ok)
	return d, ok
}

func (s *Service) compute(store *recordstore.Store, params domain.FilterParams, viewID string, opts Options) *domain.Dashboard {
	filtered := filter.Apply(store.Listings(), params)
	result := aggregation.Run(filtered)

	d := &domain.Dashboard{
		ViewID:        viewID,
		Source:        store.Source(),
		Params:        params,
		TotalCount:    store.Len(),
		FilteredCount: len(filtered),
		KPI:           metrics.ComputeKPI(filtered),
		OverallKPI:    s.overallKPI(store),
		Summary:       result.Summary,
		ComputedAt:    s.now().UTC(),
	}

	if opts.IncludeRows {
		d.Filtered, d.RowsTruncated = limitRows(filtered, opts.RowsLimit)
		var truncated bool
		d.Trimmed, truncated = limitRows(result.Trimmed, opts.RowsLimit)
		d.RowsTruncated = d.RowsTruncated || truncated
	}
	return d
}

// overallKPI returns the KPI of the whole table, computed once per source identity.
func (s *Service) overallKPI(store *recordstore.Store) domain.KPISummary {
	s.overallMu.Lock()
	defer s.overallMu.Unlock()

	if s.overall == nil || s.overallID != store.Source() {
		kpi := metrics.ComputeKPI(store.Listings())
		s.overall = &kpi
		s.overallID = store.Source()
	}
	return *s.overall
}

func limitRows(rows []*domain.Listing, limit int) ([]*domain.Listing, bool) {
	if limit > 0 && len(rows) > limit {
		return rows[:limit], true
	}
	return rows, false
}
