package model

import "baize/shared/model"

const (
	TableName  = "sales"
	EntityName = "sale"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldPaymentMethod = "payment_method"
	FieldTotalAmount   = "total_amount"
	FieldCreatedAt     = "created_at"
)

const (
	ItemTableName  = "sale_items"
	ItemEntityName = "sale_item"

	FieldSaleID    = "sale_id"
	FieldProductID = "product_id"
	FieldQuantity  = "quantity"
	FieldUnitPrice = "unit_price"
	FieldSubtotal  = "subtotal"
)

// Sale is immutable once written. Corrections go through a new sale or an
// inventory adjustment, never an update.
type Sale struct {
	ID            string  `db:"id"`
	UserID        string  `db:"user_id"`
	PaymentMethod string  `db:"payment_method"`
	TotalAmount   float64 `db:"total_amount"`
	model.Metadata
}

type SaleItem struct {
	ID        string  `db:"id"`
	SaleID    string  `db:"sale_id"`
	ProductID string  `db:"product_id"`
	Quantity  int     `db:"quantity"`
	UnitPrice float64 `db:"unit_price"`
	Subtotal  float64 `db:"subtotal"`
}
