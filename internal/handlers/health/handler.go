package health

import (
	"context"
	"equiplend/infras/otel"
	"equiplend/infras/postgres"
	"equiplend/shared/constant"
	"equiplend/transport/http/response"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const checkTimeout = 2 * time.Second

// Check reports whether one dependency is reachable.
type Check func(ctx context.Context) error

type Handler struct {
	checks map[string]Check
	otel   otel.Otel
}

func New(db *postgres.Connection, client *redis.Client, otel otel.Otel) Handler {
	return NewWithChecks(map[string]Check{
		"postgres": db.Write.PingContext,
		"redis": func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
	}, otel)
}

func NewWithChecks(checks map[string]Check, otel otel.Otel) Handler {
	return Handler{
		checks: checks,
		otel:   otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/health", handler.Health)
}

// Health pings every dependency of the service.
// @Summary Health check
// @Tags Health
// @Produce json
// @Success 200 {object} response.Message
// @Failure 503 {object} response.Message
// @Router /v1/health [get]
func (handler *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Health")
	defer scope.End()

	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	for name, check := range handler.checks {
		if err := check(ctx); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("dependency", name).Msg("health check failed")

			response.WithUnhealthy(w)

			return
		}
	}

	response.WithMessage(w, http.StatusOK, "OK")
}
