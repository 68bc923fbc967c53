package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/taha12-ok/comforty-order-service/pkg/cache"
)

type OrderRepo interface {
	SaveOrder(ctx context.Context, order entities.Order) (string, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order entities.Order) error
}

type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, order entities.Order) error
}

// PlaceOrderResult reports the outcome of a successful checkout. EmailSent
// is false when the order was persisted but the confirmation mail failed;
// the order itself is still placed.
type PlaceOrderResult struct {
	Order     entities.Order
	EmailSent bool
}

const productsCacheKey = "products"

type orderService struct {
	logger   *slog.Logger
	repo     OrderRepo
	mailer   Mailer
	events   EventPublisher
	orders   *cache.LRUCache[entities.Order]
	products *cache.LRUCache[[]entities.Product]
}

func NewOrderService(
	logger *slog.Logger,
	repo OrderRepo,
	mailer Mailer,
	events EventPublisher,
	orders *cache.LRUCache[entities.Order],
	products *cache.LRUCache[[]entities.Product],
) *orderService {
	return &orderService{
		logger:   logger.With(slog.String("service", "order")),
		repo:     repo,
		mailer:   mailer,
		events:   events,
		orders:   orders,
		products: products,
	}
}

// PlaceOrder runs the checkout workflow: build, persist, publish, notify.
// The order is persisted before the confirmation mail goes out, so a
// customer can never receive a confirmation for an order that was not
// stored. Persistence errors propagate unchanged; a create that failed can
// never look like one that succeeded.
func (s *orderService) PlaceOrder(
	ctx context.Context,
	customer entities.Customer,
	items []entities.OrderItem,
	submittedTotal decimal.Decimal,
) (PlaceOrderResult, error) {
	order, err := entities.NewOrder(customer, items, submittedTotal)
	if err != nil {
		return PlaceOrderResult{}, err
	}

	docID, err := s.repo.SaveOrder(ctx, order)
	if err != nil {
		return PlaceOrderResult{}, fmt.Errorf("failed to place order: %w", err)
	}
	s.logger.InfoContext(ctx, "order persisted",
		slog.String("order_id", order.OrderID), slog.String("doc_id", docID))

	s.orders.Set(order.OrderID, order)

	// Best effort: a lost event never fails a placed order.
	if err := s.events.PublishOrderCreated(ctx, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish order event",
			slog.Any("error", err), slog.String("order_id", order.OrderID))
	}

	result := PlaceOrderResult{Order: order, EmailSent: true}
	if err := s.mailer.SendOrderConfirmation(ctx, customer.Email, order); err != nil {
		s.logger.ErrorContext(ctx, "failed to send confirmation email",
			slog.Any("error", err), slog.String("order_id", order.OrderID))
		result.EmailSent = false
	}
	return result, nil
}

func (s *orderService) GetOrderByID(ctx context.Context, orderID string) (entities.Order, error) {
	if order, ok := s.orders.Get(orderID); ok {
		return order, nil
	}

	order, err := s.repo.GetOrderByID(ctx, orderID)
	if err != nil {
		return entities.Order{}, err
	}

	s.orders.Set(orderID, order)
	return order, nil
}

func (s *orderService) ListProducts(ctx context.Context) ([]entities.Product, error) {
	if products, ok := s.products.Get(productsCacheKey); ok {
		return products, nil
	}

	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	s.products.Set(productsCacheKey, products)
	return products, nil
}
