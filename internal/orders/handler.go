package orders

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"
)

// Handler serves the orders REST API behind API Gateway.
type Handler struct {
	store  *Store
	logger *zap.Logger
}

func NewHandler(store *Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

type orderInput struct {
	Customer string  `json:"customer"`
	Status   string  `json:"status"`
	Total    float64 `json:"total"`
}

type updateInput struct {
	Customer *string  `json:"customer"`
	Status   *string  `json:"status"`
	Total    *float64 `json:"total"`
}

type createResponse struct {
	OrderID string `json:"orderId"`
}

func (h *Handler) Handle(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch request.HTTPMethod {
	case http.MethodPost:
		return h.handlePost(ctx, request)
	case http.MethodPut:
		return h.handlePut(ctx, request)
	case http.MethodGet:
		return h.handleGet(ctx, request)
	case http.MethodDelete:
		return h.handleDelete(ctx, request)
	default:
		return text(http.StatusMethodNotAllowed, "Method not allowed"), nil
	}
}

func (h *Handler) handlePost(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	in, err := parseInput(request.Body)
	if err != nil {
		h.logger.Info("invalid order input", zap.Error(err))
		return text(http.StatusBadRequest, "Invalid input for POST"), nil
	}

	created, err := h.store.Create(ctx, Order{Customer: in.Customer, Status: in.Status, Total: in.Total})
	if err != nil {
		h.logger.Error("failed to create order", zap.Error(err))
		return text(http.StatusInternalServerError, "Failed to create order"), nil
	}

	h.logger.Info("order created", zap.String("orderId", created.OrderID))
	return jsonResponse(http.StatusCreated, createResponse{OrderID: created.OrderID}), nil
}

func (h *Handler) handlePut(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	orderID := request.PathParameters["orderId"]
	if orderID == "" {
		return text(http.StatusBadRequest, "Missing orderId"), nil
	}

	upd, err := parseUpdate(request.Body)
	if err != nil {
		h.logger.Info("invalid order update", zap.String("orderId", orderID), zap.Error(err))
		return text(http.StatusBadRequest, "Invalid input"), nil
	}

	updated, err := h.store.Update(ctx, orderID, upd)
	if errors.Is(err, ErrNotFound) {
		return text(http.StatusNotFound, "Order not found"), nil
	}
	if err != nil {
		h.logger.Error("failed to update order", zap.String("orderId", orderID), zap.Error(err))
		return text(http.StatusInternalServerError, "Failed to update order"), nil
	}

	return jsonResponse(http.StatusOK, updated), nil
}

func (h *Handler) handleGet(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	orderID := request.PathParameters["orderId"]

	if orderID != "" {
		o, err := h.store.Get(ctx, orderID)
		if errors.Is(err, ErrNotFound) {
			return text(http.StatusNotFound, "Order not found"), nil
		}
		if err != nil {
			h.logger.Error("failed to get order", zap.String("orderId", orderID), zap.Error(err))
			return text(http.StatusInternalServerError, "Failed to get order"), nil
		}
		return jsonResponse(http.StatusOK, o), nil
	}

	all, err := h.store.List(ctx)
	if err != nil {
		h.logger.Error("failed to list orders", zap.Error(err))
		return text(http.StatusInternalServerError, "Failed to list orders"), nil
	}
	if all == nil {
		all = []Order{}
	}
	return jsonResponse(http.StatusOK, all), nil
}

func (h *Handler) handleDelete(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	orderID := request.PathParameters["orderId"]
	if orderID == "" {
		return text(http.StatusBadRequest, "Missing orderId"), nil
	}

	err := h.store.Delete(ctx, orderID)
	if errors.Is(err, ErrNotFound) {
		return text(http.StatusNotFound, "Order not found"), nil
	}
	if err != nil {
		h.logger.Error("failed to delete order", zap.String("orderId", orderID), zap.Error(err))
		return text(http.StatusInternalServerError, "Failed to delete order"), nil
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusNoContent}, nil
}

func parseInput(body string) (orderInput, error) {
	var in orderInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return orderInput{}, err
	}
	in.Customer = strings.TrimSpace(in.Customer)
	if in.Customer == "" {
		return orderInput{}, errors.New("customer is required")
	}
	if in.Total < 0 {
		return orderInput{}, errors.New("total must not be negative")
	}
	return in, nil
}

func parseUpdate(body string) (OrderUpdate, error) {
	var in updateInput
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return OrderUpdate{}, err
	}
	upd := OrderUpdate{Customer: in.Customer, Status: in.Status, Total: in.Total}
	if upd.Empty() {
		return OrderUpdate{}, errors.New("no field to update")
	}
	if upd.Customer != nil {
		c := strings.TrimSpace(*upd.Customer)
		if c == "" {
			return OrderUpdate{}, errors.New("customer must not be empty")
		}
		upd.Customer = &c
	}
	if upd.Status != nil && strings.TrimSpace(*upd.Status) == "" {
		return OrderUpdate{}, errors.New("status must not be empty")
	}
	if upd.Total != nil && *upd.Total < 0 {
		return OrderUpdate{}, errors.New("total must not be negative")
	}
	return upd, nil
}

func text(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{StatusCode: status, Body: body}
}

func jsonResponse(status int, v any) events.APIGatewayProxyResponse {
	b, err := json.Marshal(v)
	if err != nil {
		return text(http.StatusInternalServerError, "Error generating response")
	}
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    map[string]string{"Content-Type": "application/json"},
		Body:       string(b),
	}
}
