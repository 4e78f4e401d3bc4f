package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"baize/config"
	kafkaMocks "baize/infras/kafka/mocks"
	"baize/infras/otel/mocks"
	sessionMocks "baize/internal/domains/session/mocks"
	"baize/internal/domains/session/model"
	"baize/internal/domains/session/model/dto"
	"baize/internal/domains/session/repository"
	"baize/internal/domains/session/service"
	tableMocks "baize/internal/domains/table/mocks"
	tableModel "baize/internal/domains/table/model"
	cacheMocks "baize/shared/cache/mocks"
	"baize/shared/constant"
	"baize/shared/failure"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

func availableTable() tableModel.Table {
	return tableModel.Table{
		ID:          "table-id-1",
		TableNumber: 1,
		TableType:   constant.TableTypePool,
		HourlyRate:  15,
		Status:      constant.TableStatusAvailable,
		Active:      true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func occupiedTable(sessionID string) tableModel.Table {
	table := availableTable()
	table.Status = constant.TableStatusOccupied
	table.CurrentSessionID = &sessionID

	return table
}

func TestSessionService_Start(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel)

	tests := []struct {
		name      string
		req       dto.StartSessionRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "starts on available table",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTable(), nil)

				mockRepo.EXPECT().
					StartSession(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, session model.Session) {
						assert.Equal(t, "table-id-1", session.TableID)
						assert.Equal(t, "test-user-id", session.UserID)
						assert.Equal(t, constant.SessionStatusActive, session.Status)
						assert.Nil(t, session.EndTime)
					}).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "starts on reserved table",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				table := availableTable()
				table.Status = constant.TableStatusReserved

				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)

				mockRepo.EXPECT().
					StartSession(gomock.Any(), gomock.Any()).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "explicit operator overrides caller",
			req:  dto.StartSessionRequest{UserID: "7b51cdd6-17cb-41c6-b2e0-30c6f0b501b8"},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTable(), nil)

				mockRepo.EXPECT().
					StartSession(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, session model.Session) {
						assert.Equal(t, "7b51cdd6-17cb-41c6-b2e0-30c6f0b501b8", session.UserID)
					}).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "table not found",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(tableModel.Table{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "inactive table is not found",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				table := availableTable()
				table.Active = false

				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "occupied table conflicts",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-1"), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "maintenance table conflicts",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				table := availableTable()
				table.Status = constant.TableStatusMaintenance

				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(table, nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "lost race maps to conflict",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTable(), nil)

				mockRepo.EXPECT().
					StartSession(gomock.Any(), gomock.Any()).
					Return(repository.ErrTableUnavailable)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req:  dto.StartSessionRequest{},
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTable(), nil)

				mockRepo.EXPECT().
					StartSession(gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Start(ctx, "table-id-1", tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.Equal(t, constant.SessionStatusActive, res.Status)
			}
		})
	}
}

func TestSessionService_Stop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel)

	openSession := func(start time.Time) model.Session {
		return model.Session{
			ID:        "session-id-1",
			TableID:   "table-id-1",
			UserID:    "operator-id",
			StartTime: start,
			Status:    constant.SessionStatusActive,
			Metadata: gModel.Metadata{
				CreatedAt:  start,
				ModifiedAt: start,
				CreatedBy:  "operator-id",
				ModifiedBy: "operator-id",
			},
		}
	}

	tests := []struct {
		name      string
		setupMock func()
		wantErr   bool
		wantCode  int
		check     func(t *testing.T, res dto.SessionResponse)
	}{
		{
			name: "stops and bills ninety minutes at 15.00",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-1"), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSession(timezone.Now().Add(-90*time.Minute)), nil)

				mockRepo.EXPECT().
					CloseSession(gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, session model.Session) {
						assert.Equal(t, constant.SessionStatusClosed, session.Status)
						assert.NotNil(t, session.EndTime)

						if assert.NotNil(t, session.TotalAmount) {
							assert.InDelta(t, 22.5, *session.TotalAmount, 0.02)
						}
					}).
					Return(nil)

				mockCache.EXPECT().
					Clear(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()

				mockCache.EXPECT().
					Delete(gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
			check: func(t *testing.T, res dto.SessionResponse) {
				assert.Equal(t, constant.SessionStatusClosed, res.Status)
				assert.NotNil(t, res.EndTime)

				if assert.NotNil(t, res.TotalAmount) {
					assert.InDelta(t, 22.5, *res.TotalAmount, 0.02)
				}
			},
		},
		{
			name: "table without running session conflicts",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(availableTable(), nil)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "stale session reference is not found",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-ghost"), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Session{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "lost close race maps to conflict",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-1"), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSession(timezone.Now().Add(-time.Hour)), nil)

				mockRepo.EXPECT().
					CloseSession(gomock.Any(), gomock.Any()).
					Return(repository.ErrSessionClosed)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "table released under our feet maps to conflict",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-1"), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(openSession(timezone.Now().Add(-time.Hour)), nil)

				mockRepo.EXPECT().
					CloseSession(gomock.Any(), gomock.Any()).
					Return(repository.ErrTableStateChanged)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			setupMock: func() {
				mockTableRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(occupiedTable("session-id-1"), nil)

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Session{}, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Stop(ctx, "table-id-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)

				if tt.check != nil {
					tt.check(t, res)
				}
			}
		})
	}
}

func TestSessionService_Stop_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = true

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel)

	mockTableRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(occupiedTable("session-id-1"), nil)

	mockRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(model.Session{
			ID:        "session-id-1",
			TableID:   "table-id-1",
			UserID:    "operator-id",
			StartTime: timezone.Now().Add(-time.Hour),
			Status:    constant.SessionStatusActive,
		}, nil)

	mockRepo.EXPECT().
		CloseSession(gomock.Any(), gomock.Any()).
		Return(nil)

	mockCache.EXPECT().
		Clear(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockCache.EXPECT().
		Delete(gomock.Any(), gomock.Any()).
		Return(nil).
		AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), constant.KafkaTopicSessionClosed, gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	_, err := svc.Stop(ctx, "table-id-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestSessionService_Active(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel)

	t.Run("returns accrued cost for running session", func(t *testing.T) {
		mockTableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(occupiedTable("session-id-1"), nil)

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Session{
				ID:        "session-id-1",
				TableID:   "table-id-1",
				UserID:    "operator-id",
				StartTime: timezone.Now().Add(-2 * time.Hour),
				Status:    constant.SessionStatusActive,
			}, nil)

		res, err := svc.Active(context.Background(), "table-id-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.SessionStatusActive, res.Status)

		if assert.NotNil(t, res.AccruedCost) {
			assert.InDelta(t, 30, *res.AccruedCost, 0.02)
		}
	})

	t.Run("idle table has no active session", func(t *testing.T) {
		mockTableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(availableTable(), nil)

		_, err := svc.Active(context.Background(), "table-id-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("missing table", func(t *testing.T) {
		mockTableRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(tableModel.Table{}, nil)

		_, err := svc.Active(context.Background(), "table-id-1")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}

func TestSessionService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockTableRepo := tableMocks.NewMockTable(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockTableRepo, cfg, mockCache, mockKafka, mockOtel)

	t.Run("cache miss falls back to repository", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Session{
				ID:        "session-id-1",
				TableID:   "table-id-1",
				StartTime: timezone.Now().Add(-time.Hour),
				Status:    constant.SessionStatusActive,
			}, nil)

		mockCache.EXPECT().
			Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			AnyTimes()

		res, err := svc.Get(context.Background(), "session-id-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "session-id-1", res.ID)
	})

	t.Run("unknown session is not found", func(t *testing.T) {
		mockCache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(errors.New("cache miss"))

		mockRepo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			Return(model.Session{}, nil)

		_, err := svc.Get(context.Background(), "session-id-missing")

		assert.Error(t, err)
		assert.Equal(t, 404, failure.GetCode(err))
	})
}
