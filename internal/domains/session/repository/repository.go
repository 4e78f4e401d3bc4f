package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"baize/infras/otel"
	"baize/infras/postgres"
	"baize/internal/domains/session/model"
	tableModel "baize/internal/domains/table/model"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/logger"
	gRepo "baize/shared/repository"
	"baize/shared/timezone"
)

// Sentinel errors for the guarded transactional updates. The service maps
// them to conflict responses; they signal a lost race, not a storage fault.
var (
	ErrTableUnavailable  = errors.New("table is not available for a new session")
	ErrSessionClosed     = errors.New("session is already closed")
	ErrTableStateChanged = errors.New("table state changed during close")
)

const queryOccupyTable = `
UPDATE billiard_tables
SET status = :status, current_session_id = :session_id, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :table_id AND status IN ('available', 'reserved') AND active = true`

const queryCloseSession = `
UPDATE table_sessions
SET end_time = :end_time, total_amount = :total_amount, status = :status, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :session_id AND end_time IS NULL`

const queryReleaseTable = `
UPDATE billiard_tables
SET status = :status, current_session_id = NULL, modified_at = :modified_at, modified_by = :modified_by
WHERE id = :table_id AND status = 'occupied' AND current_session_id = :session_id`

type Session interface {
	Insert(ctx context.Context, model model.Session) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Session, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Session, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	StartSession(ctx context.Context, session model.Session) error
	CloseSession(ctx context.Context, session model.Session) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Session]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Session {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Session](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// StartSession inserts the session and flips the table to occupied in one
// transaction. The table update is guarded on the current status, so two
// concurrent starts on the same table leave exactly one winner.
func (repo *repositoryImpl) StartSession(ctx context.Context, session model.Session) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.StartSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		if err := repo.InsertTx(ctx, tx, session); err != nil {
			return err //nolint:wrapcheck
		}

		result, err := tx.NamedExecContext(ctx, queryOccupyTable, map[string]any{
			"status":      constant.TableStatusOccupied,
			"session_id":  session.ID,
			"table_id":    session.TableID,
			"modified_at": timezone.Now(),
			"modified_by": session.UserID,
		})
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to occupy table (%s): %w", tableModel.EntityName, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if rows == 0 {
			return ErrTableUnavailable
		}

		return nil
	})

	return err //nolint:wrapcheck
}

// CloseSession writes the final total and releases the table. Both updates
// are guarded; zero affected rows on either side rolls the whole close back.
func (repo *repositoryImpl) CloseSession(ctx context.Context, session model.Session) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.CloseSession")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = repo.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, queryCloseSession, map[string]any{
			"session_id":   session.ID,
			"end_time":     session.EndTime,
			"total_amount": session.TotalAmount,
			"status":       constant.SessionStatusClosed,
			"modified_at":  timezone.Now(),
			"modified_by":  session.ModifiedBy,
		})
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to close session (%s): %w", model.EntityName, err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if rows == 0 {
			return ErrSessionClosed
		}

		result, err = tx.NamedExecContext(ctx, queryReleaseTable, map[string]any{
			"status":      constant.TableStatusAvailable,
			"table_id":    session.TableID,
			"session_id":  session.ID,
			"modified_at": timezone.Now(),
			"modified_by": session.ModifiedBy,
		})
		if err != nil {
			logger.ErrorWithStack(err)

			return fmt.Errorf("failed to release table (%s): %w", tableModel.EntityName, err)
		}

		rows, err = result.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read affected rows: %w", err)
		}

		if rows == 0 {
			return ErrTableStateChanged
		}

		return nil
	})

	return err //nolint:wrapcheck
}
