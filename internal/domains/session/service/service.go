package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"baize/config"
	"baize/infras/kafka"
	"baize/infras/otel"
	"baize/internal/domains/session/model"
	"baize/internal/domains/session/model/dto"
	"baize/internal/domains/session/repository"
	tableModel "baize/internal/domains/table/model"
	tableRepository "baize/internal/domains/table/repository"
	"baize/shared"
	"baize/shared/billing"
	"baize/shared/cache"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/failure"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

const (
	cacheGetSession    = "session:get"
	cacheGetAllSession = "session:gets"
	cacheCountSession  = "session:count"
)

// SessionClosedEvent is published to Kafka when a session is billed and
// closed, for downstream consumers such as receipt printing.
type SessionClosedEvent struct {
	SessionID   string  `json:"session_id"`
	TableID     string  `json:"table_id"`
	UserID      string  `json:"user_id"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	TotalAmount float64 `json:"total_amount"`
}

type Session interface {
	Start(ctx context.Context, tableID string, req dto.StartSessionRequest) (dto.SessionResponse, error)
	Stop(ctx context.Context, tableID string) (dto.SessionResponse, error)
	Active(ctx context.Context, tableID string) (dto.SessionResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSessionsResponse, error)
	Get(ctx context.Context, id string) (dto.SessionResponse, error)
}

type serviceImpl struct {
	repo      repository.Session
	tableRepo tableRepository.Table
	cfg       *config.Config
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
}

func New(
	repo repository.Session,
	tableRepo tableRepository.Table,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Session {
	return &serviceImpl{
		repo:      repo,
		tableRepo: tableRepo,
		cfg:       cfg,
		cache:     cache,
		kafka:     kafka,
		otel:      otel,
	}
}

func (s *serviceImpl) Start(ctx context.Context, tableID string, req dto.StartSessionRequest) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Start")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.getTable(ctx, tableID)
	if err != nil {
		return res, err
	}

	if table.Status != constant.TableStatusAvailable && table.Status != constant.TableStatusReserved {
		return res, failure.Conflict(fmt.Sprintf("table %d is %s", table.TableNumber, table.Status)) // nolint:wrapcheck
	}

	operator := req.UserID
	if operator == constant.Empty {
		operator, _ = ctx.Value(constant.ContextKeyUserID).(string)
	}

	session := model.Session{
		ID:        uuid.NewString(),
		TableID:   table.ID,
		UserID:    operator,
		StartTime: timezone.Now(),
		Status:    constant.SessionStatusActive,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  operator,
			ModifiedBy: operator,
		},
	}

	if err = s.repo.StartSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrTableUnavailable) {
			return res, failure.Conflict("table was taken by another session") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("tableID", tableID).Msg("failed to start session")

		return res, fmt.Errorf("failed to start session: %w", err)
	}

	s.invalidate(ctx, session.ID)

	scope.AddEvent("Session started on table " + table.ID)

	res.FromModel(session)

	return res, nil
}

func (s *serviceImpl) Stop(ctx context.Context, tableID string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stop")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.getTable(ctx, tableID)
	if err != nil {
		return res, err
	}

	if table.Status != constant.TableStatusOccupied {
		return res, failure.Conflict(fmt.Sprintf("table %d has no session running", table.TableNumber)) // nolint:wrapcheck
	}

	if table.CurrentSessionID == nil {
		return res, failure.NotFound("table has no session reference") // nolint:wrapcheck
	}

	session, err := s.repo.Get(ctx, shared.FilterByID(*table.CurrentSessionID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	// The table points at a session that does not exist. Leave the table
	// occupied so the inconsistency is visible instead of silently cleared.
	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	endTime := timezone.Now()
	total := billing.Cost(session.StartTime, endTime, table.HourlyRate)

	session.EndTime = &endTime
	session.TotalAmount = &total
	session.Status = constant.SessionStatusClosed
	session.ModifiedAt = endTime
	session.ModifiedBy = user

	if err = s.repo.CloseSession(ctx, session); err != nil {
		if errors.Is(err, repository.ErrSessionClosed) || errors.Is(err, repository.ErrTableStateChanged) {
			return res, failure.Conflict("session was already closed") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("tableID", tableID).Msg("failed to close session")

		return res, fmt.Errorf("failed to close session: %w", err)
	}

	s.invalidate(ctx, session.ID)
	s.publishClosed(ctx, session)

	scope.AddEvent("Session closed on table " + table.ID)

	res.FromModel(session)

	return res, nil
}

// Active returns the running session on a table together with the cost
// accrued so far. Not cached, the accrued amount changes every second.
func (s *serviceImpl) Active(ctx context.Context, tableID string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Active")
	defer scope.End()
	defer scope.TraceIfError(err)

	table, err := s.getTable(ctx, tableID)
	if err != nil {
		return res, err
	}

	if table.Status != constant.TableStatusOccupied || table.CurrentSessionID == nil {
		return res, failure.NotFound("no active session on table") // nolint:wrapcheck
	}

	session, err := s.repo.Get(ctx, shared.FilterByID(*table.CurrentSessionID, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	accrued := billing.Cost(session.StartTime, timezone.Now(), table.HourlyRate)

	res.FromModel(session)
	res.AccruedCost = &accrued

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSessionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSession, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sessions")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sessions")

		return res, fmt.Errorf("failed to get sessions: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sessions to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SessionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSession, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for session")

		return res, nil
	}

	session, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if session.ID == constant.Empty {
		return res, failure.NotFound("session not found") // nolint:wrapcheck
	}

	res.FromModel(session)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSession, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sessions")

		return res, fmt.Errorf("failed to count sessions: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save session count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getTable(ctx context.Context, tableID string) (tableModel.Table, error) {
	table, err := s.tableRepo.Get(ctx, shared.FilterByID(tableID, tableModel.FieldID, tableModel.TableName))
	if err != nil {
		log.Error().Err(err).Str("tableID", tableID).Msg("failed to get table")

		return table, fmt.Errorf("failed to get table: %w", err)
	}

	if table.ID == constant.Empty || !table.Active {
		return table, failure.NotFound("table not found") // nolint:wrapcheck
	}

	return table, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, sessionID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSession, sessionID)); err != nil {
			log.Error().Err(err).Msg("failed to delete session from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSession)
		shared.InvalidateCaches(c, s.cache, cacheCountSession)

		shared.InvalidateCaches(c, s.cache, constant.CacheGetTable)
		shared.InvalidateCaches(c, s.cache, constant.CacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, constant.CacheCountTable)
	}()
}

func (s *serviceImpl) publishClosed(ctx context.Context, session model.Session) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := SessionClosedEvent{
		SessionID:   session.ID,
		TableID:     session.TableID,
		UserID:      session.UserID,
		StartTime:   session.StartTime.Format(constant.DateFormat),
		EndTime:     session.EndTime.Format(constant.DateFormat),
		TotalAmount: *session.TotalAmount,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, constant.KafkaTopicSessionClosed, kafka.Message{
			Key:   session.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("sessionID", session.ID).Msg("failed to publish session closed event")
		}
	}()
}
