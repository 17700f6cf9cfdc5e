package handler

import (
	"encoding/json"
	"net/http"

	"gec-catalog/internal/model"
	"gec-catalog/internal/service"

	"github.com/rs/zerolog"
)

// createOrderResponse is the success payload of POST /api/orders.
type createOrderResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID int64  `json:"orderId"`
}

// OrderHandler handles order-related HTTP requests.
type OrderHandler struct {
	service service.OrderService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(service service.OrderService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{
		service: service,
		logger:  logger.With().Str("handler", "order").Logger(),
	}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body", "", h.logger)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err, "Error creating order", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, createOrderResponse{
		Success: true,
		Message: "Order placed successfully",
		OrderID: order.ID,
	})
}

// List handles GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		writeServiceError(w, err, "Error fetching orders", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, orders)
}
