package model

import "baize/shared/model"

const (
	TableName  = "products"
	EntityName = "product"

	FieldID       = "id"
	FieldName     = "name"
	FieldCategory = "category"
	FieldPrice    = "price"
	FieldStock    = "stock"
	FieldMinStock = "min_stock"
	FieldImage    = "image"
	FieldActive   = "active"
)

const (
	MovementTableName  = "inventory_movements"
	MovementEntityName = "movement"

	FieldProductID    = "product_id"
	FieldUserID       = "user_id"
	FieldMovementType = "movement_type"
	FieldQuantity     = "quantity"
	FieldNote         = "note"
)

type Product struct {
	ID       string  `db:"id"`
	Name     string  `db:"name"`
	Category string  `db:"category"`
	Price    float64 `db:"price"`
	Stock    int     `db:"stock"`
	MinStock int     `db:"min_stock"`
	Image    string  `db:"image"`
	Active   bool    `db:"active"`
	model.Metadata
}

// InventoryMovement is the audit trail of every stock change. Quantity is
// signed: sales and downward adjustments are negative, restocks positive.
type InventoryMovement struct {
	ID           string `db:"id"`
	ProductID    string `db:"product_id"`
	UserID       string `db:"user_id"`
	MovementType string `db:"movement_type"`
	Quantity     int    `db:"quantity"`
	Note         string `db:"note"`
	model.Metadata
}
