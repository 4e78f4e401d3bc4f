package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"baize/infras/otel"
	"baize/infras/postgres"
	productModel "baize/internal/domains/product/model"
	"baize/internal/domains/sale/model"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/logger"
	gRepo "baize/shared/repository"
	"baize/shared/timezone"
)

// ErrInsufficientStock signals that one of the sold products did not have
// enough stock. The whole sale rolls back.
var ErrInsufficientStock = errors.New("insufficient stock")

const queryDecrementStock = `
UPDATE products
SET stock = stock - :quantity, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :product_id AND stock >= :quantity`

type Sale interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Sale, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Sale, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Create(ctx context.Context, sale model.Sale, items []model.SaleItem, movements []productModel.InventoryMovement) error
	GetItems(ctx context.Context, saleID string) ([]model.SaleItem, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Sale]
	items     gRepo.Repository[model.SaleItem]
	movements gRepo.Repository[productModel.InventoryMovement]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Sale {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Sale](model.EntityName, model.TableName, model.FieldID, db, otel),
		items:      gRepo.NewRepository[model.SaleItem](model.ItemEntityName, model.ItemTableName, model.FieldID, db, otel),
		movements:  gRepo.NewRepository[productModel.InventoryMovement](productModel.MovementEntityName, productModel.MovementTableName, productModel.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Create writes the sale header, its items, the guarded stock decrements and
// the sale movements in one transaction. Any product short on stock aborts
// the whole sale.
func (repo *repositoryImpl) Create(ctx context.Context, sale model.Sale, items []model.SaleItem, movements []productModel.InventoryMovement) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".sale.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, sale); err != nil {
			return err //nolint:wrapcheck
		}

		if err := repo.items.InsertBulkTx(ctx, tx, items); err != nil {
			return err //nolint:wrapcheck
		}

		for _, item := range items {
			result, err := tx.NamedExecContext(ctx, queryDecrementStock, map[string]any{
				"product_id":  item.ProductID,
				"quantity":    item.Quantity,
				"modified_at": timezone.Now(),
				"modified_by": sale.UserID,
			})
			if err != nil {
				logger.ErrorWithStack(err)

				return fmt.Errorf("failed to decrement stock (%s): %w", productModel.EntityName, err)
			}

			rows, err := result.RowsAffected()
			if err != nil {
				return fmt.Errorf("failed to read affected rows: %w", err)
			}

			if rows == 0 {
				return fmt.Errorf("product %s: %w", item.ProductID, ErrInsufficientStock)
			}
		}

		return repo.movements.InsertBulkTx(ctx, tx, movements) //nolint:wrapcheck
	})

	return err //nolint:wrapcheck
}

func (repo *repositoryImpl) GetItems(ctx context.Context, saleID string) ([]model.SaleItem, error) {
	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSaleID,
				Operator: gDto.FilterOperatorEq,
				Value:    saleID,
				Table:    model.ItemTableName,
			},
		},
	}

	return repo.items.GetAll(ctx, gDto.QueryParams{}, filter) //nolint:wrapcheck
}
