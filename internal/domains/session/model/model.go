package model

import (
	"time"

	"baize/shared/model"
)

const (
	TableName  = "table_sessions"
	EntityName = "session"

	FieldID          = "id"
	FieldTableID     = "table_id"
	FieldUserID      = "user_id"
	FieldStartTime   = "start_time"
	FieldEndTime     = "end_time"
	FieldTotalAmount = "total_amount"
	FieldStatus      = "status"
)

type Session struct {
	ID          string     `db:"id"`
	TableID     string     `db:"table_id"`
	UserID      string     `db:"user_id"`
	StartTime   time.Time  `db:"start_time"`
	EndTime     *time.Time `db:"end_time"`
	TotalAmount *float64   `db:"total_amount"`
	Status      string     `db:"status"`
	model.Metadata
}
