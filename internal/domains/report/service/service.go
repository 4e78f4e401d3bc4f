package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"baize/config"
	"baize/infras/otel"
	"baize/internal/domains/report/model/dto"
	"baize/internal/domains/report/repository"
	"baize/shared"
	"baize/shared/billing"
	"baize/shared/cache"
	"baize/shared/constant"
	"baize/shared/failure"
	"baize/shared/timezone"
)

const (
	cacheReportDaily       = "report:daily"
	cacheReportRange       = "report:range"
	cacheReportTopProducts = "report:top-products"

	// Reports over past days do not change, but today's numbers do.
	// Keep the TTL short instead of invalidating from every write path.
	reportCacheTTL = 60

	defaultTopProductsLimit = 10
	maxRangeDays            = 366
)

type Report interface {
	Daily(ctx context.Context, date time.Time) (dto.DailyReportResponse, error)
	Range(ctx context.Context, from, to time.Time) (dto.RangeReportResponse, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) (dto.TopProductsResponse, error)
	Dashboard(ctx context.Context) (dto.DashboardResponse, error)
}

type serviceImpl struct {
	repo  repository.Report
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Report, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Report {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Daily(ctx context.Context, date time.Time) (res dto.DailyReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Daily")
	defer scope.End()
	defer scope.TraceIfError(err)

	day := truncateToDay(date)

	cacheKey := shared.BuildCacheKey(cacheReportDaily, day.Format(time.DateOnly))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for daily report")

		return res, nil
	}

	totals, err := s.repo.Totals(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to get daily totals")

		return res, fmt.Errorf("failed to get daily totals: %w", err)
	}

	res.FromModel(day, totals)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Range(ctx context.Context, from, to time.Time) (res dto.RangeReportResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Range")
	defer scope.End()
	defer scope.TraceIfError(err)

	from = truncateToDay(from)
	to = truncateToDay(to)

	if to.Before(from) {
		return res, failure.BadRequestFromString("to must not be before from") // nolint:wrapcheck
	}

	if to.Sub(from) > maxRangeDays*24*time.Hour {
		return res, failure.BadRequestFromString("date range is too wide") // nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(cacheReportRange, from.Format(time.DateOnly), to.Format(time.DateOnly))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for range report")

		return res, nil
	}

	days, err := s.repo.RevenueByDay(ctx, from, to.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to get revenue by day")

		return res, fmt.Errorf("failed to get revenue by day: %w", err)
	}

	res.FromModels(from, to, days)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) TopProducts(ctx context.Context, from, to time.Time, limit int) (res dto.TopProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".TopProducts")
	defer scope.End()
	defer scope.TraceIfError(err)

	from = truncateToDay(from)
	to = truncateToDay(to)

	if to.Before(from) {
		return res, failure.BadRequestFromString("to must not be before from") // nolint:wrapcheck
	}

	if limit <= 0 {
		limit = defaultTopProductsLimit
	}

	cacheKey := shared.BuildCacheKey(cacheReportTopProducts, from.Format(time.DateOnly), to.Format(time.DateOnly), fmt.Sprint(limit))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for top products")

		return res, nil
	}

	products, err := s.repo.TopProducts(ctx, from, to.AddDate(0, 0, 1), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get top products")

		return res, fmt.Errorf("failed to get top products: %w", err)
	}

	res.FromModels(from, to, products)

	s.save(ctx, cacheKey, res)

	return res, nil
}

// Dashboard is never cached. The accrued estimate moves with the clock and
// the table board has to reflect the floor as it is.
func (s *serviceImpl) Dashboard(ctx context.Context) (res dto.DashboardResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Dashboard")
	defer scope.End()
	defer scope.TraceIfError(err)

	statuses, err := s.repo.TablesByStatus(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables by status")

		return res, fmt.Errorf("failed to get tables by status: %w", err)
	}

	res.TablesByStatus = make(map[string]int, len(statuses))
	for _, status := range statuses {
		res.TablesByStatus[status.Status] = status.Count

		if status.Status == constant.TableStatusOccupied {
			res.OpenTables = status.Count
		}
	}

	sessions, err := s.repo.ActiveSessions(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get active sessions")

		return res, fmt.Errorf("failed to get active sessions: %w", err)
	}

	now := timezone.Now()

	res.ActiveSessions = len(sessions)
	for _, session := range sessions {
		res.AccruedEstimate += billing.Cost(session.StartTime, now, session.HourlyRate)
	}

	res.AccruedEstimate = billing.RoundCurrency(res.AccruedEstimate)

	lowStock, err := s.repo.LowStockCount(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count low stock products")

		return res, fmt.Errorf("failed to count low stock products: %w", err)
	}

	res.LowStockCount = lowStock

	today := truncateToDay(now)

	totals, err := s.repo.Totals(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		log.Error().Err(err).Msg("failed to get daily totals")

		return res, fmt.Errorf("failed to get daily totals: %w", err)
	}

	res.Today.FromModel(today, totals)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, value, reportCacheTTL); err != nil {
			log.Error().Err(err).Msg("failed to save report to cache")
		}
	}()
}

func truncateToDay(t time.Time) time.Time {
	t = timezone.ToAppTime(t)

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
