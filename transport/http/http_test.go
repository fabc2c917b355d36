package http

import (
	"context"
	"equiplend/config"
	"equiplend/infras/otel/mocks"
	"equiplend/internal/handlers/health"
	cacheMocks "equiplend/shared/cache/mocks"
	"equiplend/shared/constant"
	"equiplend/transport/http/middleware"
	"equiplend/transport/http/router"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newServer(t *testing.T, check health.Check) *HTTP {
	t.Helper()

	cfg := &config.Config{}
	otel := mocks.NewOtel()

	handlers := router.DomainHandlers{
		Health: health.NewWithChecks(map[string]health.Check{"postgres": check}, otel),
	}

	appMiddleware := middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(gomock.NewController(t)))

	return New(cfg, router.New(handlers, appMiddleware), nil, nil, nil, otel)
}

func healthy(context.Context) error {
	return nil
}

func TestHTTP_ServeHTTP(t *testing.T) {
	server := newServer(t, healthy)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"OK"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRequestID))
	assert.Equal(t, ServerStateReady, server.State())
}

func TestHTTP_Unhealthy(t *testing.T) {
	server := newServer(t, func(context.Context) error { return errors.New("connection refused") })

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), constant.ResponseErrorUnhealthy)
}

func TestHTTP_RejectsDuringShutdown(t *testing.T) {
	server := newServer(t, healthy)
	server.setup()
	server.state.Store(int32(ServerStateInGracePeriod))

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/health", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), constant.ResponseErrorPrepareShutdown)
}

func TestHTTP_SwaggerDoc(t *testing.T) {
	server := newServer(t, healthy)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "/v1/reservations/{id}")
}
