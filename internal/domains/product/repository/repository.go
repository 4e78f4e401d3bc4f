package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"baize/infras/otel"
	"baize/infras/postgres"
	"baize/internal/domains/product/model"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/logger"
	gRepo "baize/shared/repository"
	"baize/shared/timezone"
)

// ErrStockNegative is returned when an adjustment would drive stock below
// zero. The guard lives in the UPDATE itself, so concurrent adjustments
// cannot race past it.
var ErrStockNegative = errors.New("stock cannot go negative")

const queryAdjustStock = `
UPDATE products
SET stock = stock + :quantity, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :product_id AND stock + :quantity >= 0`

type Product interface {
	Insert(ctx context.Context, model model.Product) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Product, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Product, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	AdjustStock(ctx context.Context, movement model.InventoryMovement) error
	GetMovements(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.InventoryMovement, error)
	CountMovements(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Product]
	movements gRepo.Repository[model.InventoryMovement]
	db        *postgres.Connection
	otel      otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Product {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Product](model.EntityName, model.TableName, model.FieldID, db, otel),
		movements:  gRepo.NewRepository[model.InventoryMovement](model.MovementEntityName, model.MovementTableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// AdjustStock applies the signed quantity to the product and records the
// movement in the same transaction.
func (repo *repositoryImpl) AdjustStock(ctx context.Context, movement model.InventoryMovement) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".product.AdjustStock")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, queryAdjustStock, map[string]any{
			"product_id":  movement.ProductID,
			"quantity":    movement.Quantity,
			"modified_at": timezone.Now(),
			"modified_by": movement.UserID,
		})
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to adjust stock (%s): %w", model.EntityName, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if rows == 0 {
			return ErrStockNegative
		}

		return repo.movements.InsertTx(ctx, tx, movement) //nolint:wrapcheck
	})

	return err //nolint:wrapcheck
}

func (repo *repositoryImpl) GetMovements(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.InventoryMovement, error) {
	return repo.movements.GetAll(ctx, params, filter) //nolint:wrapcheck
}

func (repo *repositoryImpl) CountMovements(ctx context.Context, filter gDto.FilterGroup) (int, error) {
	return repo.movements.Count(ctx, filter) //nolint:wrapcheck
}
