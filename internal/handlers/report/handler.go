package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"baize/infras/otel"
	"baize/internal/domains/report/service"
	"baize/shared"
	"baize/shared/constant"
	"baize/shared/failure"
	"baize/shared/timezone"
	"baize/transport/http/response"
)

type Handler struct {
	service service.Report
	otel    otel.Otel
}

func New(service service.Report, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/reports", func(routerGroup chi.Router) {
		routerGroup.Get("/daily", handler.GetDailyReport)
		routerGroup.Get("/range", handler.GetRangeReport)
		routerGroup.Get("/top-products", handler.GetTopProducts)
	})

	router.Get("/dashboard", handler.GetDashboard)
}

// GetDailyReport returns revenue totals for one day.
// @Summary Get the daily report
// @Description Revenue and transaction counts for a single day. Defaults to today.
// @Tags Report
// @Accept json
// @Produce json
// @Param date query string false "Report date (YYYY-MM-DD), defaults to today"
// @Success 200 {object} response.Envelope[dto.DailyReportResponse] "Daily report"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/reports/daily [get]
// @Security BearerAuth
func (handler *Handler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDailyReport")
	defer scope.End()

	date := timezone.Now()

	if raw := r.URL.Query().Get("date"); raw != constant.Empty {
		parsed, err := timezone.Parse(constant.DateOnlyFormat, raw)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("invalid date, expected YYYY-MM-DD"))

			return
		}

		date = parsed
	}

	report, err := handler.service.Daily(ctx, date)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get daily report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Daily report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// GetRangeReport returns per-day revenue over a date range.
// @Summary Get the range report
// @Description Per-day revenue breakdown between two dates, both inclusive.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope[dto.RangeReportResponse] "Range report"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/reports/range [get]
// @Security BearerAuth
func (handler *Handler) GetRangeReport(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRangeReport")
	defer scope.End()

	from, to, err := parseRange(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	report, err := handler.service.Range(ctx, from, to)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get range report")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Range report retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// GetTopProducts returns the best-selling products over a date range.
// @Summary Get top products
// @Description Quantity sold and revenue per product between two dates, both inclusive.
// @Tags Report
// @Accept json
// @Produce json
// @Param from query string true "Start date (YYYY-MM-DD)"
// @Param to query string true "End date (YYYY-MM-DD)"
// @Param limit query int false "Number of products to return, defaults to 10"
// @Success 200 {object} response.Envelope[dto.TopProductsResponse] "Top products"
// @Failure 400 {object} response.Envelope[any]
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/reports/top-products [get]
// @Security BearerAuth
func (handler *Handler) GetTopProducts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTopProducts")
	defer scope.End()

	from, to, err := parseRange(r)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	limit := 0

	if raw := r.URL.Query().Get("limit"); raw != constant.Empty {
		limit, err = shared.ConvertStringToInt(raw)
		if err != nil {
			scope.TraceError(err)

			response.WithError(w, failure.BadRequestFromString("invalid limit"))

			return
		}
	}

	report, err := handler.service.TopProducts(ctx, from, to, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get top products")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Top products retrieved successfully")

	response.WithJSON(w, http.StatusOK, report)
}

// GetDashboard returns the live floor overview.
// @Summary Get the dashboard
// @Description Table board, active session count, accrued estimate, today's revenue and low stock count.
// @Tags Report
// @Accept json
// @Produce json
// @Success 200 {object} response.Envelope[dto.DashboardResponse] "Dashboard"
// @Failure 500 {object} response.Envelope[any]
// @Router /v1/dashboard [get]
// @Security BearerAuth
func (handler *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDashboard")
	defer scope.End()

	dashboard, err := handler.service.Dashboard(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard retrieved successfully")

	response.WithJSON(w, http.StatusOK, dashboard)
}

func parseRange(r *http.Request) (from, to time.Time, err error) {
	from, err = timezone.Parse(constant.DateOnlyFormat, r.URL.Query().Get("from"))
	if err != nil {
		return from, to, failure.BadRequestFromString("invalid from date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	to, err = timezone.Parse(constant.DateOnlyFormat, r.URL.Query().Get("to"))
	if err != nil {
		return from, to, failure.BadRequestFromString("invalid to date, expected YYYY-MM-DD") // nolint:wrapcheck
	}

	return from, to, nil
}
