package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"kittystore/internal/models"
	"kittystore/internal/util"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrUnavailable is returned when the data store cannot serve the aggregation.
// Dashboard reads are idempotent, so the caller simply reissues the request;
// the service does not retry.
var ErrUnavailable = errors.New("dashboard aggregation unavailable")

// Repository is the read-only capability the aggregation needs from the data
// store. *store.Store implements it against Postgres; *store.MemoryStore is
// the test double.
type Repository interface {
	DashboardStats(ctx context.Context, lowStockThreshold int) (*models.DashboardStats, error)
	RecentOrders(ctx context.Context, limit int) ([]models.RecentOrder, error)
	TopProducts(ctx context.Context, limit int) ([]models.TopProduct, error)
	DailyRevenue(ctx context.Context, since time.Time) ([]models.RevenuePoint, error)
}

// SnapshotCache caches assembled snapshots between requests. A nil cache is
// valid and means every request recomputes.
type SnapshotCache interface {
	GetSnapshot(ctx context.Context) (*models.DashboardSnapshot, error)
	SetSnapshot(ctx context.Context, snapshot *models.DashboardSnapshot) error
}

// DashboardOptions tune the aggregation limits.
type DashboardOptions struct {
	RecentOrdersLimit int
	TopProductsLimit  int
	RevenueDays       int
	LowStockThreshold int
}

// DefaultDashboardOptions match what the storefront dashboard renders.
func DefaultDashboardOptions() DashboardOptions {
	return DashboardOptions{
		RecentOrdersLimit: 5,
		TopProductsLimit:  5,
		RevenueDays:       7,
		LowStockThreshold: 5,
	}
}

// DashboardService computes the admin dashboard snapshot. It is stateless:
// each call is an independent read against current data-store state.
type DashboardService struct {
	repo   Repository
	cache  SnapshotCache
	opts   DashboardOptions
	logger *zap.Logger
	now    func() time.Time
}

// NewDashboardService creates a dashboard service. cache may be nil.
func NewDashboardService(repo Repository, cache SnapshotCache, opts DashboardOptions) *DashboardService {
	if opts.RecentOrdersLimit <= 0 {
		opts.RecentOrdersLimit = 5
	}
	if opts.TopProductsLimit <= 0 {
		opts.TopProductsLimit = 5
	}
	if opts.RevenueDays <= 0 {
		opts.RevenueDays = 7
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = 5
	}
	return &DashboardService{
		repo:   repo,
		cache:  cache,
		opts:   opts,
		logger: util.GetLogger(),
		now:    time.Now,
	}
}

// WithClock replaces the service clock. Tests use it to pin the revenue window.
func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Snapshot assembles the dashboard payload. The four reads have no data
// dependency on each other and run concurrently; the snapshot is not
// transactionally consistent across them, which is acceptable for a
// reporting view.
func (s *DashboardService) Snapshot(ctx context.Context) (*models.DashboardSnapshot, error) {
	ctx, span := util.StartSpan(ctx, "DashboardService.Snapshot")
	defer span.End()

	if s.cache != nil {
		if cached, err := s.cache.GetSnapshot(ctx); err == nil && cached != nil {
			util.SnapshotCacheHits.Inc()
			util.DashboardSnapshotsTotal.Inc()
			return cached, nil
		}
		util.SnapshotCacheMisses.Inc()
	}

	start := time.Now()
	defer func() {
		util.AggregationLatency.Observe(time.Since(start).Seconds())
	}()

	snapshot := &models.DashboardSnapshot{GeneratedAt: s.now()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		stats, err := s.repo.DashboardStats(ctx, s.opts.LowStockThreshold)
		if err != nil {
			return fmt.Errorf("stats: %w", err)
		}
		snapshot.Stats = *stats
		return nil
	})
	g.Go(func() error {
		orders, err := s.repo.RecentOrders(ctx, s.opts.RecentOrdersLimit)
		if err != nil {
			return fmt.Errorf("recent orders: %w", err)
		}
		snapshot.RecentOrders = orders
		return nil
	})
	g.Go(func() error {
		products, err := s.repo.TopProducts(ctx, s.opts.TopProductsLimit)
		if err != nil {
			return fmt.Errorf("top products: %w", err)
		}
		snapshot.TopProducts = products
		return nil
	})
	g.Go(func() error {
		series, err := s.repo.DailyRevenue(ctx, s.revenueWindowStart())
		if err != nil {
			return fmt.Errorf("revenue series: %w", err)
		}
		snapshot.RevenueChart = series
		return nil
	})

	if err := g.Wait(); err != nil {
		util.DashboardSnapshotErrors.Inc()
		s.logger.Error("Dashboard aggregation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if s.cache != nil {
		if err := s.cache.SetSnapshot(ctx, snapshot); err != nil {
			s.logger.Warn("Failed to cache dashboard snapshot", zap.Error(err))
		}
	}

	util.DashboardSnapshotsTotal.Inc()
	return snapshot, nil
}

// revenueWindowStart returns local midnight RevenueDays-1 days ago, so the
// chart covers the full current day and the preceding days of the window.
func (s *DashboardService) revenueWindowStart() time.Time {
	now := s.now()
	start := now.AddDate(0, 0, -(s.opts.RevenueDays - 1))
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
}
