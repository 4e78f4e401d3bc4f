//go:build wireinject
// +build wireinject

package di

import (
	"github.com/google/wire"

	"baize/config"
	"baize/infras/jwt"
	"baize/infras/kafka"
	"baize/infras/otel"
	"baize/infras/postgres"
	"baize/infras/redis"
	"baize/infras/s3"
	"baize/permissions"
	"baize/shared/cache"
	"baize/transport/http"
	"baize/transport/http/middleware"
	"baize/transport/http/router"

	authService "baize/internal/domains/auth/service"
	licenseRepository "baize/internal/domains/license/repository"
	licenseService "baize/internal/domains/license/service"
	productRepository "baize/internal/domains/product/repository"
	productService "baize/internal/domains/product/service"
	reportRepository "baize/internal/domains/report/repository"
	reportService "baize/internal/domains/report/service"
	saleRepository "baize/internal/domains/sale/repository"
	saleService "baize/internal/domains/sale/service"
	sessionRepository "baize/internal/domains/session/repository"
	sessionService "baize/internal/domains/session/service"
	tableRepository "baize/internal/domains/table/repository"
	tableService "baize/internal/domains/table/service"
	userRepository "baize/internal/domains/user/repository"
	userService "baize/internal/domains/user/service"

	authHandler "baize/internal/handlers/auth"
	licenseHandler "baize/internal/handlers/license"
	productHandler "baize/internal/handlers/product"
	reportHandler "baize/internal/handlers/report"
	saleHandler "baize/internal/handlers/sale"
	sessionHandler "baize/internal/handlers/session"
	tableHandler "baize/internal/handlers/table"
	userHandler "baize/internal/handlers/user"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var authDomain = wire.NewSet(
	authService.New,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var sessionDomain = wire.NewSet(
	sessionRepository.New,
	sessionService.New,
)

var productDomain = wire.NewSet(
	productRepository.New,
	productService.New,
)

var saleDomain = wire.NewSet(
	saleRepository.New,
	saleService.New,
)

var reportDomain = wire.NewSet(
	reportRepository.New,
	reportService.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
)

var licenseDomain = wire.NewSet(
	licenseRepository.New,
	licenseService.New,
)

var domains = wire.NewSet(
	authDomain,
	tableDomain,
	sessionDomain,
	productDomain,
	saleDomain,
	reportDomain,
	userDomain,
	licenseDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	tableHandler.New,
	sessionHandler.New,
	productHandler.New,
	saleHandler.New,
	reportHandler.New,
	userHandler.New,
	licenseHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
