package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"baize/config"
	"baize/infras/otel"
	"baize/internal/domains/license/model"
	"baize/internal/domains/license/model/dto"
	"baize/internal/domains/license/repository"
	"baize/shared"
	"baize/shared/cache"
	"baize/shared/constant"
	gDto "baize/shared/dto"
	"baize/shared/failure"
	"baize/shared/timezone"
)

const (
	cacheGetLicense    = "license:get"
	cacheGetAllLicense = "license:gets"
	cacheCountLicense  = "license:count"
)

type License interface {
	Register(ctx context.Context, req dto.RegisterLicenseRequest) (dto.LicenseResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetLicensesResponse, error)
	Get(ctx context.Context, id string) (dto.LicenseResponse, error)
	Process(ctx context.Context, req dto.ProcessLicenseRequest, id string) (dto.LicenseResponse, error)
}

type serviceImpl struct {
	repo  repository.License
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.License, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) License {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Register takes an unauthenticated lead from a prospective operator.
func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterLicenseRequest) (res dto.LicenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer scope.TraceIfError(err)

	lead := req.ToModel()

	if err = s.repo.Insert(ctx, lead); err != nil {
		log.Error().Err(err).Msg("failed to register license lead")

		return res, fmt.Errorf("failed to register license lead: %w", err)
	}

	s.invalidate(ctx, lead.ID)

	scope.AddEvent("License lead registered for " + lead.BusinessName)

	res.FromModel(lead)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetLicensesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllLicense, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for licenses")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get licenses")

		return res, fmt.Errorf("failed to get licenses: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save licenses to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.LicenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetLicense, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for license")

		return res, nil
	}

	license, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get license")

		return res, fmt.Errorf("failed to get license: %w", err)
	}

	if license.ID == constant.Empty {
		return res, failure.NotFound("license registration not found") // nolint:wrapcheck
	}

	res.FromModel(license)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save license to cache")
		}
	}()

	return res, nil
}

// Process approves or rejects a pending lead. Rejections always end up with
// no access regardless of what the request asked for.
func (s *serviceImpl) Process(ctx context.Context, req dto.ProcessLicenseRequest, id string) (res dto.LicenseResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Process")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	license, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get license")

		return res, fmt.Errorf("failed to get license: %w", err)
	}

	if license.ID == constant.Empty {
		return res, failure.NotFound("license registration not found") // nolint:wrapcheck
	}

	if license.Status != constant.LicenseStatusPending {
		return res, failure.Conflict("license registration already processed") // nolint:wrapcheck
	}

	access := req.AccessGranted

	switch {
	case req.Status == constant.LicenseStatusRejected:
		access = constant.LicenseAccessNone
	case access == constant.Empty:
		access = constant.LicenseAccessTrial
	}

	now := timezone.Now()

	params := repository.ProcessParams{
		ID:            id,
		Status:        req.Status,
		AccessGranted: access,
		Notes:         req.Notes,
		ProcessedBy:   user,
		ProcessedAt:   now,
	}

	if err = s.repo.Process(ctx, params); err != nil {
		if errors.Is(err, repository.ErrAlreadyProcessed) {
			return res, failure.Conflict("license registration already processed") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to process license")

		return res, fmt.Errorf("failed to process license: %w", err)
	}

	s.invalidate(ctx, id)

	scope.AddEvent("License " + req.Status + " by user " + user)

	license.Status = req.Status
	license.AccessGranted = access
	license.Notes = req.Notes
	license.ProcessedBy = &user
	license.ProcessedAt = &now
	license.ModifiedAt = now
	license.ModifiedBy = user

	res.FromModel(license)

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountLicense, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count licenses")

		return res, fmt.Errorf("failed to count licenses: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save license count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetLicense, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete license from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllLicense)
		shared.InvalidateCaches(c, s.cache, cacheCountLicense)
	}()
}
