package model

import (
	"time"

	"baize/shared/model"
)

const (
	TableName  = "license_registrations"
	EntityName = "license"

	FieldID            = "id"
	FieldBusinessName  = "business_name"
	FieldOwnerName     = "owner_name"
	FieldEmail         = "email"
	FieldPhone         = "phone"
	FieldAddress       = "address"
	FieldTableCount    = "table_count"
	FieldStatus        = "status"
	FieldAccessGranted = "access_granted"
	FieldNotes         = "notes"
	FieldProcessedBy   = "processed_by"
	FieldProcessedAt   = "processed_at"
)

type License struct {
	ID            string     `db:"id"`
	BusinessName  string     `db:"business_name"`
	OwnerName     string     `db:"owner_name"`
	Email         string     `db:"email"`
	Phone         string     `db:"phone"`
	Address       string     `db:"address"`
	TableCount    int        `db:"table_count"`
	Status        string     `db:"status"`
	AccessGranted string     `db:"access_granted"`
	Notes         *string    `db:"notes"`
	ProcessedBy   *string    `db:"processed_by"`
	ProcessedAt   *time.Time `db:"processed_at"`
	model.Metadata
}
