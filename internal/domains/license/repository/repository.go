package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"baize/infras/otel"
	"baize/infras/postgres"
	"baize/internal/domains/license/model"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/logger"
	gRepo "baize/shared/repository"
)

// ErrAlreadyProcessed signals that the registration left the pending state
// before this decision landed.
var ErrAlreadyProcessed = errors.New("license registration already processed")

const queryProcess = `
UPDATE license_registrations
SET status = :status, access_granted = :access_granted, notes = :notes,
	processed_by = :processed_by, processed_at = :processed_at,
	modified_at = :modified_at, modified_by = :modified_by
WHERE id = :id AND status = 'pending'`

type ProcessParams struct {
	ID            string
	Status        string
	AccessGranted string
	Notes         *string
	ProcessedBy   string
	ProcessedAt   time.Time
}

type License interface {
	Insert(ctx context.Context, model model.License) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.License, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.License, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Process(ctx context.Context, params ProcessParams) error
}

type repositoryImpl struct {
	gRepo.Repository[model.License]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) License {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.License](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// Process applies the decision with a pending-only guard. Zero rows means
// another admin got there first.
func (repo *repositoryImpl) Process(ctx context.Context, params ProcessParams) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".license.Process")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryProcess)

	result, err := repo.db.Write.NamedExecContext(ctx, queryProcess, map[string]any{
		"id":             params.ID,
		"status":         params.Status,
		"access_granted": params.AccessGranted,
		"notes":          params.Notes,
		"processed_by":   params.ProcessedBy,
		"processed_at":   params.ProcessedAt,
		"modified_at":    params.ProcessedAt,
		"modified_by":    params.ProcessedBy,
	})
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to process license registration: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to read affected rows: %w", err)
	}

	if rows == 0 {
		return ErrAlreadyProcessed
	}

	return nil
}
