package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"baize/infras/otel"
	"baize/infras/postgres"
	"baize/internal/domains/report/model"
	"baize/shared/constant"
	"baize/shared/logger"
)

const queryTotals = `
SELECT
	(SELECT COALESCE(SUM(total_amount), 0) FROM table_sessions WHERE end_time >= :from AND end_time < :to) AS session_revenue,
	(SELECT COUNT(*) FROM table_sessions WHERE end_time >= :from AND end_time < :to) AS session_count,
	(SELECT COALESCE(SUM(total_amount), 0) FROM sales WHERE created_at >= :from AND created_at < :to) AS sale_revenue,
	(SELECT COUNT(*) FROM sales WHERE created_at >= :from AND created_at < :to) AS sale_count`

const queryRevenueByDay = `
SELECT day, SUM(session_revenue) AS session_revenue, SUM(sale_revenue) AS sale_revenue
FROM (
	SELECT DATE(end_time) AS day, total_amount AS session_revenue, 0 AS sale_revenue
	FROM table_sessions
	WHERE end_time >= :from AND end_time < :to
	UNION ALL
	SELECT DATE(created_at) AS day, 0 AS session_revenue, total_amount AS sale_revenue
	FROM sales
	WHERE created_at >= :from AND created_at < :to
) revenue
GROUP BY day
ORDER BY day`

const queryTopProducts = `
SELECT products.id AS product_id, products.name AS name,
	SUM(sale_items.quantity) AS quantity, SUM(sale_items.subtotal) AS revenue
FROM sale_items
JOIN sales ON sales.id = sale_items.sale_id
JOIN products ON products.id = sale_items.product_id
WHERE sales.created_at >= :from AND sales.created_at < :to
GROUP BY products.id, products.name
ORDER BY revenue DESC, quantity DESC
LIMIT :limit`

const queryTablesByStatus = `
SELECT status, COUNT(*) AS count
FROM billiard_tables
WHERE active = true
GROUP BY status`

const queryActiveSessions = `
SELECT table_sessions.id AS id, table_sessions.table_id AS table_id,
	table_sessions.start_time AS start_time, billiard_tables.hourly_rate AS hourly_rate
FROM table_sessions
JOIN billiard_tables ON billiard_tables.id = table_sessions.table_id
WHERE table_sessions.end_time IS NULL`

const queryLowStockCount = `
SELECT COUNT(*) AS count
FROM products
WHERE active = true AND stock <= min_stock`

type Report interface {
	Totals(ctx context.Context, from, to time.Time) (model.Totals, error)
	RevenueByDay(ctx context.Context, from, to time.Time) ([]model.DayRevenue, error)
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]model.TopProduct, error)
	TablesByStatus(ctx context.Context) ([]model.StatusCount, error)
	ActiveSessions(ctx context.Context) ([]model.ActiveSession, error)
	LowStockCount(ctx context.Context) (int, error)
}

type repositoryImpl struct {
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Report {
	return &repositoryImpl{
		db:   db,
		otel: otel,
	}
}

func (repo *repositoryImpl) Totals(ctx context.Context, from, to time.Time) (res model.Totals, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.Totals")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTotals)

	err = repo.getNamed(ctx, &res, queryTotals, map[string]any{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return res, fmt.Errorf("failed to get revenue totals: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) RevenueByDay(ctx context.Context, from, to time.Time) (res []model.DayRevenue, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.RevenueByDay")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryRevenueByDay)

	err = repo.selectNamed(ctx, &res, queryRevenueByDay, map[string]any{
		"from": from,
		"to":   to,
	})
	if err != nil {
		return res, fmt.Errorf("failed to get revenue by day: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) TopProducts(ctx context.Context, from, to time.Time, limit int) (res []model.TopProduct, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.TopProducts")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTopProducts)

	err = repo.selectNamed(ctx, &res, queryTopProducts, map[string]any{
		"from":  from,
		"to":    to,
		"limit": limit,
	})
	if err != nil {
		return res, fmt.Errorf("failed to get top products: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) TablesByStatus(ctx context.Context) (res []model.StatusCount, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.TablesByStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryTablesByStatus)

	err = repo.db.Read.SelectContext(ctx, &res, queryTablesByStatus)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get tables by status: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) ActiveSessions(ctx context.Context) (res []model.ActiveSession, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.ActiveSessions")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryActiveSessions)

	err = repo.db.Read.SelectContext(ctx, &res, queryActiveSessions)
	if err != nil {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to get active sessions: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) LowStockCount(ctx context.Context) (res int, err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".report.LowStockCount")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryLowStockCount)

	err = repo.db.Read.GetContext(ctx, &res, queryLowStockCount)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)

		return res, fmt.Errorf("failed to count low stock products: %w", err)
	}

	return res, nil
}

func (repo *repositoryImpl) getNamed(ctx context.Context, dest any, query string, args map[string]any) error {
	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer prepare.Close()

	err = prepare.GetContext(ctx, dest, args)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to get data: %w", err)
	}

	return nil
}

func (repo *repositoryImpl) selectNamed(ctx context.Context, dest any, query string, args map[string]any) error {
	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, dest, args)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to select data: %w", err)
	}

	return nil
}
