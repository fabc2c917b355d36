package equipment

import (
	"equiplend/infras/otel"
	"equiplend/internal/domains/reservation/model/dto"
	"equiplend/internal/domains/reservation/service"
	"equiplend/shared/constant"
	"equiplend/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	service service.Reservation
	otel    otel.Otel
}

func New(service service.Reservation, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/equipment", handler.GetEquipment)
}

// GetEquipment lists the lendable items in catalog order.
// @Summary Get the equipment catalog
// @Tags Equipment
// @Produce json
// @Success 200 {object} response.Data[dto.EquipmentResponse] "Equipment catalog"
// @Router /v1/equipment [get]
func (handler *Handler) GetEquipment(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEquipment")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, dto.EquipmentResponse{Equipment: handler.service.Catalog()})
}
