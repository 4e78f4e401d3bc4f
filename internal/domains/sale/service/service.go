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
	productModel "baize/internal/domains/product/model"
	productRepository "baize/internal/domains/product/repository"
	"baize/internal/domains/sale/model"
	"baize/internal/domains/sale/model/dto"
	"baize/internal/domains/sale/repository"
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
	cacheGetSale    = "sale:get"
	cacheGetAllSale = "sale:gets"
	cacheCountSale  = "sale:count"
)

// SaleRecordedEvent is published to Kafka after a sale commits.
type SaleRecordedEvent struct {
	SaleID        string  `json:"sale_id"`
	UserID        string  `json:"user_id"`
	PaymentMethod string  `json:"payment_method"`
	TotalAmount   float64 `json:"total_amount"`
	ItemCount     int     `json:"item_count"`
}

type Sale interface {
	Create(ctx context.Context, req dto.CreateSaleRequest) (dto.SaleResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSalesResponse, error)
	Get(ctx context.Context, id string) (dto.SaleResponse, error)
}

type serviceImpl struct {
	repo        repository.Sale
	productRepo productRepository.Product
	cfg         *config.Config
	cache       cache.RedisCache
	kafka       kafka.Client
	otel        otel.Otel
}

func New(
	repo repository.Sale,
	productRepo productRepository.Product,
	cfg *config.Config,
	cache cache.RedisCache,
	kafka kafka.Client,
	otel otel.Otel,
) Sale {
	return &serviceImpl{
		repo:        repo,
		productRepo: productRepo,
		cfg:         cfg,
		cache:       cache,
		kafka:       kafka,
		otel:        otel,
	}
}

// Create records a point-of-sale transaction. Prices are looked up
// server-side, never trusted from the request.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSaleRequest) (res dto.SaleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	now := timezone.Now()

	sale := model.Sale{
		ID:            uuid.NewString(),
		UserID:        user,
		PaymentMethod: req.PaymentMethod,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	items := make([]model.SaleItem, 0, len(req.Items))
	movements := make([]productModel.InventoryMovement, 0, len(req.Items))

	total := 0.0

	for _, reqItem := range req.Items {
		product, err := s.productRepo.Get(ctx, shared.FilterByID(reqItem.ProductID, productModel.FieldID, productModel.TableName))
		if err != nil {
			log.Error().Err(err).Str("productID", reqItem.ProductID).Msg("failed to get product")

			return res, fmt.Errorf("failed to get product: %w", err)
		}

		if product.ID == constant.Empty || !product.Active {
			return res, failure.NotFound("product not found") // nolint:wrapcheck
		}

		subtotal := billing.RoundCurrency(product.Price * float64(reqItem.Quantity))
		total += subtotal

		items = append(items, model.SaleItem{
			ID:        uuid.NewString(),
			SaleID:    sale.ID,
			ProductID: product.ID,
			Quantity:  reqItem.Quantity,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})

		movements = append(movements, productModel.InventoryMovement{
			ID:           uuid.NewString(),
			ProductID:    product.ID,
			UserID:       user,
			MovementType: constant.MovementTypeSale,
			Quantity:     -reqItem.Quantity,
			Note:         "sale " + sale.ID,
			Metadata: gModel.Metadata{
				CreatedAt:  now,
				ModifiedAt: now,
				CreatedBy:  user,
				ModifiedBy: user,
			},
		})
	}

	sale.TotalAmount = billing.RoundCurrency(total)

	if err = s.repo.Create(ctx, sale, items, movements); err != nil {
		if errors.Is(err, repository.ErrInsufficientStock) {
			return res, failure.Conflict("insufficient stock for one or more products") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create sale")

		return res, fmt.Errorf("failed to create sale: %w", err)
	}

	s.invalidate(ctx, sale.ID)
	s.publishRecorded(ctx, sale, len(items))

	scope.AddEvent("Sale recorded by user " + user)

	res.FromModel(sale, items)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSalesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSale, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sales")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sales")

		return res, fmt.Errorf("failed to get sales: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sales to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SaleResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSale, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sale")

		return res, nil
	}

	sale, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get sale")

		return res, fmt.Errorf("failed to get sale: %w", err)
	}

	if sale.ID == constant.Empty {
		return res, failure.NotFound("sale not found") // nolint:wrapcheck
	}

	items, err := s.repo.GetItems(ctx, sale.ID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sale items")

		return res, fmt.Errorf("failed to get sale items: %w", err)
	}

	res.FromModel(sale, items)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sale to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountSale, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sales")

		return res, fmt.Errorf("failed to count sales: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sale count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, saleID string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSale, saleID)); err != nil {
			log.Error().Err(err).Msg("failed to delete sale from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSale)
		shared.InvalidateCaches(c, s.cache, cacheCountSale)

		// Stocks changed, product listings are stale.
		shared.InvalidateCaches(c, s.cache, constant.CacheGetProduct)
		shared.InvalidateCaches(c, s.cache, constant.CacheGetAllProduct)
		shared.InvalidateCaches(c, s.cache, constant.CacheCountProduct)
	}()
}

func (s *serviceImpl) publishRecorded(ctx context.Context, sale model.Sale, itemCount int) {
	if !s.cfg.Kafka.Enable {
		return
	}

	event := SaleRecordedEvent{
		SaleID:        sale.ID,
		UserID:        sale.UserID,
		PaymentMethod: sale.PaymentMethod,
		TotalAmount:   sale.TotalAmount,
		ItemCount:     itemCount,
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, constant.KafkaTopicSaleRecorded, kafka.Message{
			Key:   sale.ID,
			Value: event,
		}); err != nil {
			log.Error().Err(err).Str("saleID", sale.ID).Msg("failed to publish sale recorded event")
		}
	}()
}
