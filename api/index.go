package handler

import (
	"equiplend/config"
	"equiplend/di"
	"equiplend/shared/logger"
	"net/http"
	"sync"
)

var (
	service     http.Handler
	serviceOnce sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	serviceOnce.Do(func() {
		logger.Setup(config.Get())

		service = di.InitializeService()
	})

	service.ServeHTTP(w, r)
}
