package model

import "time"

// Totals aggregates session and sale revenue over a time window.
type Totals struct {
	SessionRevenue float64 `db:"session_revenue"`
	SessionCount   int     `db:"session_count"`
	SaleRevenue    float64 `db:"sale_revenue"`
	SaleCount      int     `db:"sale_count"`
}

// DayRevenue is one row of the per-day revenue breakdown.
type DayRevenue struct {
	Day            time.Time `db:"day"`
	SessionRevenue float64   `db:"session_revenue"`
	SaleRevenue    float64   `db:"sale_revenue"`
}

// TopProduct is one row of the best-seller ranking.
type TopProduct struct {
	ProductID string  `db:"product_id"`
	Name      string  `db:"name"`
	Quantity  int     `db:"quantity"`
	Revenue   float64 `db:"revenue"`
}

// StatusCount groups tables by their current status.
type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

// ActiveSession carries what the dashboard needs to estimate the cost
// accrued on a still-running session.
type ActiveSession struct {
	ID         string    `db:"id"`
	TableID    string    `db:"table_id"`
	StartTime  time.Time `db:"start_time"`
	HourlyRate float64   `db:"hourly_rate"`
}
