package model

import "baize/shared/model"

const (
	TableName  = "billiard_tables"
	EntityName = "table"

	FieldID               = "id"
	FieldTableNumber      = "table_number"
	FieldTableType        = "table_type"
	FieldHourlyRate       = "hourly_rate"
	FieldStatus           = "status"
	FieldCurrentSessionID = "current_session_id"
	FieldActive           = "active"
)

type Table struct {
	ID               string  `db:"id"`
	TableNumber      int     `db:"table_number"`
	TableType        string  `db:"table_type"`
	HourlyRate       float64 `db:"hourly_rate"`
	Status           string  `db:"status"`
	CurrentSessionID *string `db:"current_session_id"`
	Active           bool    `db:"active"`
	model.Metadata
}
