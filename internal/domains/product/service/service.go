package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"baize/config"
	"baize/infras/otel"
	"baize/infras/s3"
	"baize/internal/domains/product/model"
	"baize/internal/domains/product/model/dto"
	"baize/internal/domains/product/repository"
	"baize/shared"
	"baize/shared/cache"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/failure"
)

const (
	cacheGetProduct    = constant.CacheGetProduct
	cacheGetAllProduct = constant.CacheGetAllProduct
	cacheCountProduct  = constant.CacheCountProduct
)

type Product interface {
	Create(ctx context.Context, req dto.CreateProductRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetProductsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ProductResponse, error)
	Update(ctx context.Context, req dto.UpdateProductRequest, id string) error
	Delete(ctx context.Context, id string) error
	LowStock(ctx context.Context, req gDto.QueryParams) (dto.GetProductsResponse, error)
	AdjustStock(ctx context.Context, req dto.AdjustStockRequest, id string) error
	GetMovements(ctx context.Context, id string, req gDto.QueryParams) (dto.GetMovementsResponse, error)
}

type serviceImpl struct {
	repo  repository.Product
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Product, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Product {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateProductRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	imageURL, uploadedObjectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	if err = s.repo.Insert(ctx, req.ToModel(user, imageURL)); err != nil {
		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, uploadedObjectName)
		}

		log.Error().Err(err).Msg("failed to create product")

		return fmt.Errorf("failed to create product: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllProduct)
		shared.InvalidateCaches(c, s.cache, cacheCountProduct)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProduct, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for products")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get products")

		return res, fmt.Errorf("failed to get products: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save products to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProduct, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count products")

		return res, fmt.Errorf("failed to count products: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ProductResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetProduct, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for product")

		return res, nil
	}

	product, err := s.getProduct(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(product)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save product to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateProductRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.getProduct(ctx, id)
	if err != nil {
		return err
	}

	bucketName := s.cfg.External.S3.BucketName

	imageURL, uploadedObjectName, err := s.uploadImage(ctx, req.Image, req.ImageFile)
	if err != nil {
		return err
	}

	updatedFields := shared.TransformFields(req, user)
	if imageURL != constant.Empty {
		updatedFields[model.FieldImage] = imageURL
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update product")

		if uploadedObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, uploadedObjectName)
		}

		return fmt.Errorf("failed to update product: %w", err)
	}

	if imageURL != constant.Empty && current.Image != constant.Empty {
		oldObjectName := s.s3.GetObjectNameFromURL(bucketName, current.Image)
		if oldObjectName != constant.Empty {
			_ = s.s3.DeleteFile(ctx, bucketName, model.EntityName, oldObjectName)
		}
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.getProduct(ctx, id); err != nil {
		return err
	}

	// Soft delete keeps past sales and movements resolvable.
	updatedFields := shared.TransformFields(struct{}{}, user)
	updatedFields[model.FieldActive] = false

	if err := s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete product")

		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// LowStock lists active products at or below their minimum stock level.
func (s *serviceImpl) LowStock(ctx context.Context, req gDto.QueryParams) (res dto.GetProductsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".LowStock")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Operator: gDto.FilterPlainQuery,
				Value:    fmt.Sprintf("%s.%s <= %s.%s", model.TableName, model.FieldStock, model.TableName, model.FieldMinStock),
			},
			gDto.Filter{
				Field:    model.FieldActive,
				Operator: gDto.FilterOperatorEq,
				Value:    true,
				Table:    model.TableName,
			},
		},
	}

	return s.GetAll(ctx, req, filter)
}

func (s *serviceImpl) AdjustStock(ctx context.Context, req dto.AdjustStockRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdjustStock")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if req.MovementType == constant.MovementTypeRestock && req.Quantity <= 0 {
		return failure.BadRequestFromString("restock quantity must be positive") // nolint:wrapcheck
	}

	if _, err = s.getProduct(ctx, id); err != nil {
		return err
	}

	if err = s.repo.AdjustStock(ctx, req.ToMovement(id, user)); err != nil {
		if errors.Is(err, repository.ErrStockNegative) {
			return failure.Conflict("adjustment would make stock negative") // nolint:wrapcheck
		}

		log.Error().Err(err).Str("productID", id).Msg("failed to adjust stock")

		return fmt.Errorf("failed to adjust stock: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) GetMovements(ctx context.Context, id string, req gDto.QueryParams) (res dto.GetMovementsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMovements")
	defer scope.End()
	defer scope.TraceIfError(err)

	if _, err = s.getProduct(ctx, id); err != nil {
		return res, err
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldProductID,
				Operator: gDto.FilterOperatorEq,
				Value:    id,
				Table:    model.MovementTableName,
			},
		},
	}

	total, err := s.repo.CountMovements(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count movements")

		return res, fmt.Errorf("failed to count movements: %w", err)
	}

	models, err := s.repo.GetMovements(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get movements")

		return res, fmt.Errorf("failed to get movements: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) getProduct(ctx context.Context, id string) (model.Product, error) {
	product, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("productID", id).Msg("failed to get product")

		return product, fmt.Errorf("failed to get product: %w", err)
	}

	if product.ID == constant.Empty {
		return product, failure.NotFound("product not found") // nolint:wrapcheck
	}

	return product, nil
}

func (s *serviceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader, file multipart.File) (imageURL, objectName string, err error) {
	if header == nil {
		return constant.Empty, constant.Empty, nil
	}

	filename := uuid.NewString()

	parts := strings.Split(header.Filename, ".")
	if len(parts) > 1 {
		filename = fmt.Sprintf("%s.%s", filename, parts[len(parts)-1])
	}

	url, err := s.s3.UploadFile(ctx, s.cfg.External.S3.BucketName, model.EntityName, file, header, filename)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload image to S3")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, filename, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProduct, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete product from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProduct)
		shared.InvalidateCaches(c, s.cache, cacheCountProduct)
	}()
}
