package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/taha12-ok/comforty-order-service/internal/receipt"
	"github.com/taha12-ok/comforty-order-service/internal/sanity"
	"github.com/taha12-ok/comforty-order-service/internal/service"
	"github.com/taha12-ok/comforty-order-service/pkg/utils"
)

type OrderService interface {
	PlaceOrder(ctx context.Context, customer entities.Customer, items []entities.OrderItem, total decimal.Decimal) (service.PlaceOrderResult, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

type ReceiptGenerator interface {
	Generate(order entities.Order) ([]byte, error)
}

type HTTPHandler struct {
	logger   *slog.Logger
	validate *validator.Validate
	svc      OrderService
	receipts ReceiptGenerator
	auth     func(http.Handler) http.Handler
}

// NewHTTPHandler wires the storefront routes. auth protects checkout only;
// pass nil to leave it open.
func NewHTTPHandler(logger *slog.Logger, svc OrderService, receipts ReceiptGenerator, auth func(http.Handler) http.Handler) *HTTPHandler {
	if auth == nil {
		auth = func(next http.Handler) http.Handler { return next }
	}
	return &HTTPHandler{
		logger:   logger.With(slog.String("handler", "http")),
		validate: validator.New(),
		svc:      svc,
		receipts: receipts,
		auth:     auth,
	}
}

func (h *HTTPHandler) Init(r chi.Router) {
	r.Get("/products", h.ListProducts)
	r.With(h.auth).Post("/checkout", h.Checkout)
	r.Get("/orders/{order_id}", h.GetOrderByID)
	r.Get("/orders/{order_id}/receipt", h.GetReceipt)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	products, err := h.svc.ListProducts(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list products", slog.Any("error", err))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	res := make([]Product, 0, len(products))
	for _, p := range products {
		res = append(res, ProductEntityToJSON(p))
	}
	utils.WriteJSON(w, res, http.StatusOK)
}

func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CheckoutRequest
	if err := utils.DecodeBody(r, &req); err != nil {
		utils.WriteError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	result, err := h.svc.PlaceOrder(ctx,
		CustomerJSONToEntity(req.Customer),
		ItemsJSONToEntity(req.Items),
		decimal.NewFromFloat(req.Total),
	)

	switch {
	case errors.Is(err, entities.ErrEmptyCart),
		errors.Is(err, entities.ErrTotalMismatch),
		errors.Is(err, entities.ErrInvalidItem),
		errors.Is(err, entities.ErrInvalidPaymentMethod):
		checkoutTotal.WithLabelValues("rejected").Inc()
		utils.WriteError(w, err.Error(), http.StatusBadRequest)
		return
	case errors.Is(err, sanity.ErrUnauthorized):
		checkoutTotal.WithLabelValues("auth_error").Inc()
		h.logger.ErrorContext(ctx, "order backend rejected credentials", slog.Any("error", err))
		utils.WriteError(w, "order could not be stored: backend authentication failed", http.StatusBadGateway)
		return
	case err != nil:
		checkoutTotal.WithLabelValues("error").Inc()
		h.logger.ErrorContext(ctx, "failed to place order", slog.Any("error", err))
		utils.WriteError(w, "order could not be stored, please try again", http.StatusBadGateway)
		return
	}

	checkoutTotal.WithLabelValues("ok").Inc()
	if !result.EmailSent {
		emailFailures.Inc()
	}

	utils.WriteJSON(w, CheckoutResponse{
		Order:     OrderEntityToJSON(result.Order),
		EmailSent: result.EmailSent,
	}, http.StatusCreated)
}

func (h *HTTPHandler) GetOrderByID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	if err := h.validate.Var(orderID, "required"); err != nil {
		utils.WriteValidationError(w, err)
		return
	}

	order, err := h.svc.GetOrderByID(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, OrderEntityToJSON(order), http.StatusOK)
}

func (h *HTTPHandler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orderID := chi.URLParam(r, "order_id")

	order, err := h.svc.GetOrderByID(ctx, orderID)

	if errors.Is(err, entities.ErrOrderNotFound) {
		utils.WriteError(w, "order not found", http.StatusNotFound)
		return
	}

	if err != nil {
		h.logger.ErrorContext(ctx, "failed to get order", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "internal server error", http.StatusInternalServerError)
		return
	}

	doc, err := h.receipts.Generate(order)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate receipt", slog.Any("error", err), slog.String("order_id", orderID))
		utils.WriteError(w, "failed to generate receipt", http.StatusInternalServerError)
		return
	}

	receiptsGenerated.Inc()
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+receipt.Filename(orderID)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
