package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	"baize/internal/domains/product/model"
	"baize/shared"
	gDto "baize/shared/dto"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

type CreateProductRequest struct {
	Name      string                `json:"name"      validate:"required,max=100"`
	Category  string                `json:"category"  validate:"required,oneof=food drink equipment other"`
	Price     float64               `json:"price"     validate:"required,gt=0"`
	Stock     int                   `json:"stock"     validate:"omitempty,min=0"`
	MinStock  int                   `json:"min_stock" validate:"omitempty,min=0"`
	Image     *multipart.FileHeader `json:"image"     validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
}

func (c *CreateProductRequest) ToModel(user, imageURL string) model.Product {
	return model.Product{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Category: c.Category,
		Price:    c.Price,
		Stock:    c.Stock,
		MinStock: c.MinStock,
		Image:    imageURL,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateProductRequest struct {
	Name      string                `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Category  string                `db:"category"  json:"category"  validate:"omitempty,oneof=food drink equipment other"`
	Price     *float64              `db:"price"     json:"price"     validate:"omitempty,gt=0"`
	MinStock  *int                  `db:"min_stock" json:"min_stock" validate:"omitempty,min=0"`
	Image     *multipart.FileHeader `json:"image"   validate:"omitempty,mimetypes=image/png image/jpg image/jpeg,maxfilesize=1"`
	ImageFile multipart.File        `json:"-"`
	Active    *bool                 `db:"active"    json:"active"    validate:"omitempty"`
}

type AdjustStockRequest struct {
	MovementType string `json:"movement_type" validate:"required,oneof=restock adjustment"`
	Quantity     int    `json:"quantity"      validate:"required"`
	Note         string `json:"note"          validate:"omitempty,max=255"`
}

func (a *AdjustStockRequest) ToMovement(productID, user string) model.InventoryMovement {
	return model.InventoryMovement{
		ID:           uuid.NewString(),
		ProductID:    productID,
		UserID:       user,
		MovementType: a.MovementType,
		Quantity:     a.Quantity,
		Note:         a.Note,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type ProductResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	MinStock int     `json:"min_stock"`
	Image    string  `json:"image"`
	Active   bool    `json:"active"`
	LowStock bool    `json:"low_stock"`
	gDto.Metadata
}

func (r *ProductResponse) FromModel(mod model.Product) {
	r.ID = mod.ID
	r.Name = mod.Name
	r.Category = mod.Category
	r.Price = mod.Price
	r.Stock = mod.Stock
	r.MinStock = mod.MinStock
	r.Image = mod.Image
	r.Active = mod.Active
	r.LowStock = mod.Stock <= mod.MinStock
	r.Metadata.FromModel(mod.Metadata)
}

type GetProductsResponse struct {
	Products  []ProductResponse `json:"products"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetProductsResponse) FromModels(models []model.Product, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Products = make([]ProductResponse, len(models))
	for i, mod := range models {
		r.Products[i].FromModel(mod)
	}
}

type MovementResponse struct {
	ID           string `json:"id"`
	ProductID    string `json:"product_id"`
	UserID       string `json:"user_id"`
	MovementType string `json:"movement_type"`
	Quantity     int    `json:"quantity"`
	Note         string `json:"note"`
	CreatedAt    string `json:"created_at"`
}

func (r *MovementResponse) FromModel(mod model.InventoryMovement) {
	r.ID = mod.ID
	r.ProductID = mod.ProductID
	r.UserID = mod.UserID
	r.MovementType = mod.MovementType
	r.Quantity = mod.Quantity
	r.Note = mod.Note
	r.CreatedAt = mod.CreatedAt.Format(time.RFC3339)
}

type GetMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMovementsResponse) FromModels(models []model.InventoryMovement, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Movements = make([]MovementResponse, len(models))
	for i, mod := range models {
		r.Movements[i].FromModel(mod)
	}
}
