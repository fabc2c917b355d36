//go:build wireinject
// +build wireinject

package di

import (
	"equiplend/catalog"
	"equiplend/config"
	"equiplend/infras/kafka"
	"equiplend/infras/otel"
	"equiplend/infras/postgres"
	"equiplend/infras/redis"
	"equiplend/internal/handlers/equipment"
	"equiplend/internal/handlers/health"
	reservationHandler "equiplend/internal/handlers/reservation"
	"equiplend/shared/cache"
	"equiplend/transport/http"
	"equiplend/transport/http/middleware"
	"equiplend/transport/http/router"

	reservationRepository "equiplend/internal/domains/reservation/repository"
	reservationService "equiplend/internal/domains/reservation/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	catalog.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	reservationHandler.New,
	equipment.New,
	health.New,
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

func InitializeConsumer() kafka.Client {
	wire.Build(
		configurations,
		kafka.New,
	)

	return nil
}
