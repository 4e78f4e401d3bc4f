package dto

import (
	"time"

	"baize/internal/domains/report/model"
	"baize/shared/billing"
)

type DailyReportResponse struct {
	Date           string  `json:"date"`
	SessionRevenue float64 `json:"session_revenue"`
	SessionCount   int     `json:"session_count"`
	SaleRevenue    float64 `json:"sale_revenue"`
	SaleCount      int     `json:"sale_count"`
	TotalRevenue   float64 `json:"total_revenue"`
}

func (r *DailyReportResponse) FromModel(date time.Time, totals model.Totals) {
	r.Date = date.Format(time.DateOnly)
	r.SessionRevenue = totals.SessionRevenue
	r.SessionCount = totals.SessionCount
	r.SaleRevenue = totals.SaleRevenue
	r.SaleCount = totals.SaleCount
	r.TotalRevenue = billing.RoundCurrency(totals.SessionRevenue + totals.SaleRevenue)
}

type DayRevenueResponse struct {
	Date           string  `json:"date"`
	SessionRevenue float64 `json:"session_revenue"`
	SaleRevenue    float64 `json:"sale_revenue"`
	TotalRevenue   float64 `json:"total_revenue"`
}

type RangeReportResponse struct {
	From string               `json:"from"`
	To   string               `json:"to"`
	Days []DayRevenueResponse `json:"days"`
}

func (r *RangeReportResponse) FromModels(from, to time.Time, models []model.DayRevenue) {
	r.From = from.Format(time.DateOnly)
	r.To = to.Format(time.DateOnly)

	r.Days = make([]DayRevenueResponse, len(models))
	for i, mod := range models {
		r.Days[i] = DayRevenueResponse{
			Date:           mod.Day.Format(time.DateOnly),
			SessionRevenue: mod.SessionRevenue,
			SaleRevenue:    mod.SaleRevenue,
			TotalRevenue:   billing.RoundCurrency(mod.SessionRevenue + mod.SaleRevenue),
		}
	}
}

type TopProductResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Revenue   float64 `json:"revenue"`
}

type TopProductsResponse struct {
	From     string               `json:"from"`
	To       string               `json:"to"`
	Products []TopProductResponse `json:"products"`
}

func (r *TopProductsResponse) FromModels(from, to time.Time, models []model.TopProduct) {
	r.From = from.Format(time.DateOnly)
	r.To = to.Format(time.DateOnly)

	r.Products = make([]TopProductResponse, len(models))
	for i, mod := range models {
		r.Products[i] = TopProductResponse{
			ProductID: mod.ProductID,
			Name:      mod.Name,
			Quantity:  mod.Quantity,
			Revenue:   mod.Revenue,
		}
	}
}

type DashboardResponse struct {
	TablesByStatus  map[string]int      `json:"tables_by_status"`
	OpenTables      int                 `json:"open_tables"`
	ActiveSessions  int                 `json:"active_sessions"`
	AccruedEstimate float64             `json:"accrued_estimate"`
	LowStockCount   int                 `json:"low_stock_count"`
	Today           DailyReportResponse `json:"today"`
}
