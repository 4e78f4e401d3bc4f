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
	productMocks "baize/internal/domains/product/mocks"
	productModel "baize/internal/domains/product/model"
	saleMocks "baize/internal/domains/sale/mocks"
	"baize/internal/domains/sale/model"
	"baize/internal/domains/sale/model/dto"
	"baize/internal/domains/sale/repository"
	"baize/internal/domains/sale/service"
	cacheMocks "baize/shared/cache/mocks"
	"baize/shared/constant"
	"baize/shared/failure"
	gModel "baize/shared/model"
	"baize/shared/timezone"
)

func testProduct(id string, price float64, stock int) productModel.Product {
	return productModel.Product{
		ID:       id,
		Name:     "Cola",
		Category: "drink",
		Price:    price,
		Stock:    stock,
		MinStock: 6,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  "system",
			ModifiedBy: "system",
		},
	}
}

func TestSaleService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := saleMocks.NewMockSale(ctrl)
	mockProductRepo := productMocks.NewMockProduct(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockProductRepo, cfg, mockCache, mockKafka, mockOtel)

	twoItems := dto.CreateSaleRequest{
		PaymentMethod: constant.PaymentMethodCash,
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "product-id-1", Quantity: 2},
			{ProductID: "product-id-2", Quantity: 1},
		},
	}

	tests := []struct {
		name      string
		req       dto.CreateSaleRequest
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "records a sale with server-side prices",
			req:  twoItems,
			setupMock: func() {
				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-1", 2.5, 24), nil)

				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-2", 4, 10), nil)

				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Do(func(_ context.Context, sale model.Sale, items []model.SaleItem, movements []productModel.InventoryMovement) {
						assert.Equal(t, "test-user-id", sale.UserID)
						assert.Equal(t, constant.PaymentMethodCash, sale.PaymentMethod)
						assert.InDelta(t, 9.0, sale.TotalAmount, 0.001)

						assert.Len(t, items, 2)
						assert.InDelta(t, 5.0, items[0].Subtotal, 0.001)
						assert.InDelta(t, 2.5, items[0].UnitPrice, 0.001)

						assert.Len(t, movements, 2)
						assert.Equal(t, constant.MovementTypeSale, movements[0].MovementType)
						assert.Equal(t, -2, movements[0].Quantity)
						assert.Equal(t, -1, movements[1].Quantity)
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
			name: "unknown product",
			req:  twoItems,
			setupMock: func() {
				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(productModel.Product{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "inactive product",
			req:  twoItems,
			setupMock: func() {
				product := testProduct("product-id-1", 2.5, 24)
				product.Active = false

				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(product, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
		{
			name: "insufficient stock conflicts",
			req:  twoItems,
			setupMock: func() {
				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-1", 2.5, 1), nil)

				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-2", 4, 10), nil)

				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(repository.ErrInsufficientStock)
			},
			wantErr:  true,
			wantCode: 409,
		},
		{
			name: "repository error",
			req:  twoItems,
			setupMock: func() {
				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-1", 2.5, 24), nil)

				mockProductRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(testProduct("product-id-2", 4, 10), nil)

				mockRepo.EXPECT().
					Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
			res, err := svc.Create(ctx, tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, res.ID)
				assert.InDelta(t, 9.0, res.TotalAmount, 0.001)
				assert.Len(t, res.Items, 2)
			}
		})
	}
}

func TestSaleService_Create_PublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := saleMocks.NewMockSale(ctrl)
	mockProductRepo := productMocks.NewMockProduct(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Kafka.Enable = true

	svc := service.New(mockRepo, mockProductRepo, cfg, mockCache, mockKafka, mockOtel)

	mockProductRepo.EXPECT().
		Get(gomock.Any(), gomock.Any()).
		Return(testProduct("product-id-1", 2.5, 24), nil)

	mockRepo.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockKafka.EXPECT().
		SendMessages(gomock.Any(), constant.KafkaTopicSaleRecorded, gomock.Any()).
		Return(nil).
		AnyTimes()

	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "test-user-id")
	_, err := svc.Create(ctx, dto.CreateSaleRequest{
		PaymentMethod: constant.PaymentMethodCash,
		Items: []dto.CreateSaleItemRequest{
			{ProductID: "product-id-1", Quantity: 1},
		},
	})

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}

func TestSaleService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := saleMocks.NewMockSale(ctrl)
	mockProductRepo := productMocks.NewMockProduct(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.New(mockRepo, mockProductRepo, cfg, mockCache, mockKafka, mockOtel)

	sale := model.Sale{
		ID:            "sale-id-1",
		UserID:        "test-user-id",
		PaymentMethod: constant.PaymentMethodCash,
		TotalAmount:   9,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}

	items := []model.SaleItem{
		{ID: "item-id-1", SaleID: "sale-id-1", ProductID: "product-id-1", Quantity: 2, UnitPrice: 2.5, Subtotal: 5},
		{ID: "item-id-2", SaleID: "sale-id-1", ProductID: "product-id-2", Quantity: 1, UnitPrice: 4, Subtotal: 4},
	}

	tests := []struct {
		name      string
		id        string
		setupMock func()
		wantErr   bool
		wantCode  int
	}{
		{
			name: "returns sale with items on cache miss",
			id:   "sale-id-1",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(sale, nil)

				mockRepo.EXPECT().
					GetItems(gomock.Any(), "sale-id-1").
					Return(items, nil)

				mockCache.EXPECT().
					Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil).
					AnyTimes()
			},
		},
		{
			name: "unknown sale",
			id:   "missing-id",
			setupMock: func() {
				mockCache.EXPECT().
					Get(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("cache miss"))

				mockRepo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Sale{}, nil)
			},
			wantErr:  true,
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Get(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr {
				assert.Error(t, err)

				if tt.wantCode != 0 {
					assert.Equal(t, tt.wantCode, failure.GetCode(err))
				}
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "sale-id-1", res.ID)
				assert.Len(t, res.Items, 2)
				assert.InDelta(t, 9.0, res.TotalAmount, 0.001)
			}
		})
	}
}
