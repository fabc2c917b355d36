package router

import (
	"equiplend/internal/handlers/equipment"
	"equiplend/internal/handlers/health"
	"equiplend/internal/handlers/reservation"
	"equiplend/transport/http/middleware"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "equiplend/docs" // registers the swagger document
)

type DomainHandlers struct {
	Reservation reservation.Handler
	Equipment   equipment.Handler
	Health      health.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	Middleware     middleware.AppMiddleware
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(
		chiMiddleware.Recoverer,
		r.Middleware.RequestID,
		r.Middleware.CORS(),
		r.Middleware.Tracing,
		r.Middleware.RateLimit(),
		r.Middleware.APIKey,
	)

	router.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Health.Router(routerGroup)
		r.DomainHandlers.Equipment.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware) Router {
	return Router{
		DomainHandlers: domainHandlers,
		Middleware:     appMiddleware,
	}
}
