package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/taha12-ok/comforty-order-service/internal/sanity"
	"github.com/taha12-ok/comforty-order-service/internal/service"
	"github.com/taha12-ok/comforty-order-service/pkg/cache"
)

type fakeRepo struct {
	saved      []entities.Order
	saveErr    error
	getOrder   entities.Order
	getErr     error
	getCalls   int
	products   []entities.Product
	productErr error
	listCalls  int
}

func (f *fakeRepo) SaveOrder(_ context.Context, order entities.Order) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.saved = append(f.saved, order)
	return "doc-1", nil
}

func (f *fakeRepo) GetOrderByID(_ context.Context, orderID string) (entities.Order, error) {
	f.getCalls++
	if f.getErr != nil {
		return entities.Order{}, f.getErr
	}
	return f.getOrder, nil
}

func (f *fakeRepo) ListProducts(_ context.Context) ([]entities.Product, error) {
	f.listCalls++
	return f.products, f.productErr
}

type fakeMailer struct {
	sentTo []string
	err    error
}

func (f *fakeMailer) SendOrderConfirmation(_ context.Context, to string, _ entities.Order) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	return nil
}

type fakePublisher struct {
	published []entities.Order
	err       error
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, order entities.Order) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, order)
	return nil
}

type serviceDeps struct {
	repo      *fakeRepo
	mailer    *fakeMailer
	publisher *fakePublisher
}

func newService(deps serviceDeps) interface {
	PlaceOrder(ctx context.Context, customer entities.Customer, items []entities.OrderItem, total decimal.Decimal) (service.PlaceOrderResult, error)
	GetOrderByID(ctx context.Context, orderID string) (entities.Order, error)
	ListProducts(ctx context.Context) ([]entities.Product, error)
} {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return service.NewOrderService(
		logger,
		deps.repo,
		deps.mailer,
		deps.publisher,
		cache.NewLRUCache[entities.Order](10, time.Minute),
		cache.NewLRUCache[[]entities.Product](1, time.Minute),
	)
}

func validCustomer() entities.Customer {
	return entities.Customer{
		Name: "John Doe", Email: "john@example.com", Phone: "+12025550123",
		Address: "1 Main St", City: "Springfield", Country: "USA",
		PostalCode: "12345", PaymentMethod: entities.PaymentCreditCard,
	}
}

func chairCart() ([]entities.OrderItem, decimal.Decimal) {
	items := []entities.OrderItem{
		{ProductID: "prod-1", Title: "Chair", Quantity: 2, Price: decimal.RequireFromString("49.99")},
	}
	return items, decimal.RequireFromString("99.98")
}

func TestOrderService_PlaceOrder(t *testing.T) {
	t.Run("persists then notifies", func(t *testing.T) {
		repo := &fakeRepo{}
		mailer := &fakeMailer{}
		publisher := &fakePublisher{}
		svc := newService(serviceDeps{repo: repo, mailer: mailer, publisher: publisher})

		items, total := chairCart()
		result, err := svc.PlaceOrder(context.Background(), validCustomer(), items, total)
		require.NoError(t, err)

		require.Len(t, repo.saved, 1)
		assert.Equal(t, repo.saved[0].OrderID, result.Order.OrderID)
		assert.True(t, result.EmailSent)
		assert.Equal(t, []string{"john@example.com"}, mailer.sentTo)
		require.Len(t, publisher.published, 1)
		assert.Equal(t, result.Order.OrderID, publisher.published[0].OrderID)
		assert.True(t, result.Order.Total.Equal(total))
	})

	t.Run("auth error from gateway is never success", func(t *testing.T) {
		authErr := sanity.ErrUnauthorized
		repo := &fakeRepo{saveErr: authErr}
		mailer := &fakeMailer{}
		svc := newService(serviceDeps{repo: repo, mailer: mailer, publisher: &fakePublisher{}})

		items, total := chairCart()
		_, err := svc.PlaceOrder(context.Background(), validCustomer(), items, total)
		assert.ErrorIs(t, err, authErr)
		assert.Empty(t, mailer.sentTo, "no mail for an order that was not stored")
	})

	t.Run("mail failure does not fail the placed order", func(t *testing.T) {
		repo := &fakeRepo{}
		mailer := &fakeMailer{err: errors.New("smtp connection refused")}
		svc := newService(serviceDeps{repo: repo, mailer: mailer, publisher: &fakePublisher{}})

		items, total := chairCart()
		result, err := svc.PlaceOrder(context.Background(), validCustomer(), items, total)
		require.NoError(t, err)
		assert.False(t, result.EmailSent)
		require.Len(t, repo.saved, 1)
	})

	t.Run("publish failure does not fail the placed order", func(t *testing.T) {
		repo := &fakeRepo{}
		publisher := &fakePublisher{err: errors.New("broker unavailable")}
		svc := newService(serviceDeps{repo: repo, mailer: &fakeMailer{}, publisher: publisher})

		items, total := chairCart()
		result, err := svc.PlaceOrder(context.Background(), validCustomer(), items, total)
		require.NoError(t, err)
		assert.True(t, result.EmailSent)
	})

	t.Run("builder rejects bad total before any side effect", func(t *testing.T) {
		repo := &fakeRepo{}
		mailer := &fakeMailer{}
		svc := newService(serviceDeps{repo: repo, mailer: mailer, publisher: &fakePublisher{}})

		items, _ := chairCart()
		_, err := svc.PlaceOrder(context.Background(), validCustomer(), items, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, entities.ErrTotalMismatch)
		assert.Empty(t, repo.saved)
		assert.Empty(t, mailer.sentTo)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		svc := newService(serviceDeps{repo: &fakeRepo{}, mailer: &fakeMailer{}, publisher: &fakePublisher{}})

		_, err := svc.PlaceOrder(context.Background(), validCustomer(), nil, decimal.Zero)
		assert.ErrorIs(t, err, entities.ErrEmptyCart)
	})
}

func TestOrderService_GetOrderByID(t *testing.T) {
	t.Run("repo miss maps through", func(t *testing.T) {
		repo := &fakeRepo{getErr: entities.ErrOrderNotFound}
		svc := newService(serviceDeps{repo: repo, mailer: &fakeMailer{}, publisher: &fakePublisher{}})

		_, err := svc.GetOrderByID(context.Background(), "missing")
		assert.ErrorIs(t, err, entities.ErrOrderNotFound)
	})

	t.Run("second read is served from cache", func(t *testing.T) {
		repo := &fakeRepo{getOrder: entities.Order{OrderID: "abc-123"}}
		svc := newService(serviceDeps{repo: repo, mailer: &fakeMailer{}, publisher: &fakePublisher{}})

		first, err := svc.GetOrderByID(context.Background(), "abc-123")
		require.NoError(t, err)
		second, err := svc.GetOrderByID(context.Background(), "abc-123")
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, 1, repo.getCalls)
	})

	t.Run("placed order is readable without a repo round trip", func(t *testing.T) {
		repo := &fakeRepo{getErr: errors.New("should not be called")}
		svc := newService(serviceDeps{repo: repo, mailer: &fakeMailer{}, publisher: &fakePublisher{}})

		items, total := chairCart()
		result, err := svc.PlaceOrder(context.Background(), validCustomer(), items, total)
		require.NoError(t, err)

		got, err := svc.GetOrderByID(context.Background(), result.Order.OrderID)
		require.NoError(t, err)
		assert.Equal(t, result.Order.OrderID, got.OrderID)
		assert.Equal(t, 0, repo.getCalls)
	})
}

func TestOrderService_ListProducts(t *testing.T) {
	repo := &fakeRepo{products: []entities.Product{{ID: "p1", Title: "Chair"}}}
	svc := newService(serviceDeps{repo: repo, mailer: &fakeMailer{}, publisher: &fakePublisher{}})

	first, err := svc.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, first, 1)

	_, err = svc.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, repo.listCalls)
}
