package dto

import (
	"time"

	"baize/internal/domains/sale/model"
	"baize/shared"
	gDto "baize/shared/dto"
)

type CreateSaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"   validate:"required,gt=0"`
}

type CreateSaleRequest struct {
	PaymentMethod string                  `json:"payment_method" validate:"required,oneof=cash card transfer"`
	Items         []CreateSaleItemRequest `json:"items"          validate:"required,min=1,dive"`
}

type SaleItemResponse struct {
	ID        string  `json:"id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
	Subtotal  float64 `json:"subtotal"`
}

func (r *SaleItemResponse) FromModel(mod model.SaleItem) {
	r.ID = mod.ID
	r.ProductID = mod.ProductID
	r.Quantity = mod.Quantity
	r.UnitPrice = mod.UnitPrice
	r.Subtotal = mod.Subtotal
}

type SaleResponse struct {
	ID            string             `json:"id"`
	UserID        string             `json:"user_id"`
	PaymentMethod string             `json:"payment_method"`
	TotalAmount   float64            `json:"total_amount"`
	CreatedAt     string             `json:"created_at"`
	Items         []SaleItemResponse `json:"items,omitempty"`
}

func (r *SaleResponse) FromModel(mod model.Sale, items []model.SaleItem) {
	r.ID = mod.ID
	r.UserID = mod.UserID
	r.PaymentMethod = mod.PaymentMethod
	r.TotalAmount = mod.TotalAmount
	r.CreatedAt = mod.CreatedAt.Format(time.RFC3339)

	if len(items) > 0 {
		r.Items = make([]SaleItemResponse, len(items))
		for i, item := range items {
			r.Items[i].FromModel(item)
		}
	}
}

type GetSalesResponse struct {
	Sales     []SaleResponse `json:"sales"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetSalesResponse) FromModels(models []model.Sale, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Sales = make([]SaleResponse, len(models))
	for i, mod := range models {
		r.Sales[i].FromModel(mod, nil)
	}
}

// FilterByDateRange builds the created_at range filter shared by the sale
// listing and reports.
func FilterByDateRange(from, to time.Time) []any {
	return []any{
		gDto.Filter{
			ArgName:  "created_at_from",
			Field:    model.FieldCreatedAt,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    model.TableName,
		},
		gDto.Filter{
			ArgName:  "created_at_to",
			Field:    model.FieldCreatedAt,
			Operator: gDto.FilterOperatorLessEq,
			Value:    to,
			Table:    model.TableName,
		},
	}
}
