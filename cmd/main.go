package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/taha12-ok/comforty-order-service/internal/app"
	"github.com/taha12-ok/comforty-order-service/internal/config"
	"github.com/taha12-ok/comforty-order-service/internal/entities"
	"github.com/taha12-ok/comforty-order-service/internal/events"
	"github.com/taha12-ok/comforty-order-service/internal/handler"
	"github.com/taha12-ok/comforty-order-service/internal/mailer"
	"github.com/taha12-ok/comforty-order-service/internal/middleware"
	"github.com/taha12-ok/comforty-order-service/internal/receipt"
	"github.com/taha12-ok/comforty-order-service/internal/repo"
	"github.com/taha12-ok/comforty-order-service/internal/sanity"
	"github.com/taha12-ok/comforty-order-service/internal/service"
	"github.com/taha12-ok/comforty-order-service/pkg/cache"

	"github.com/joho/godotenv"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	sanityClient := sanity.New(conf.Sanity)
	orderRepo := repo.NewSanityRepo(sanityClient)

	smtp, err := mailer.New(conf.SMTP)
	panicIfErr("failed to create mailer", err)

	var publisher events.Publisher = events.NoopPublisher{}
	if len(conf.Kafka.Brokers) > 0 {
		publisher = events.NewKafkaPublisher(conf.Kafka)
		logger.Info("kafka publisher enabled", slog.String("topic", conf.Kafka.Topic))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	orderCache := cache.NewLRUCache[entities.Order](conf.Cache.Capacity, conf.Cache.TTL)
	productCache := cache.NewLRUCache[[]entities.Product](1, conf.Cache.TTL)
	orderCache.StartJanitor(ctx)
	productCache.StartJanitor(ctx)

	orderService := service.NewOrderService(logger, orderRepo, smtp, publisher, orderCache, productCache)
	receipts := receipt.NewGenerator(conf.Store.BaseURL)

	var auth func(http.Handler) http.Handler
	if conf.Auth.JWTSecret != "" {
		auth = middleware.Auth(conf.Auth.JWTSecret)
	} else {
		logger.Warn("AUTH_JWT_SECRET is not set, checkout is unauthenticated")
	}

	httpHandler := handler.NewHTTPHandler(logger, orderService, receipts, auth)

	app := app.New(logger, conf)
	app.SetHttpHandlers(httpHandler)
	app.SetStarters(catalogWarmUp{svc: orderService, logger: logger})
	app.SetClosers(publisher)

	panicIfErr("failed to start app", app.Start(ctx))
	<-ctx.Done()
	app.Stop()
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

type productLister interface {
	ListProducts(ctx context.Context) ([]entities.Product, error)
}

// catalogWarmUp primes the product cache so the first storefront request
// does not pay the CMS round trip. A warm-up miss is not fatal: the cache
// fills on first request instead.
type catalogWarmUp struct {
	svc    productLister
	logger *slog.Logger
}

func (a catalogWarmUp) Start(ctx context.Context) error {
	if _, err := a.svc.ListProducts(ctx); err != nil {
		a.logger.Warn("product catalog warm-up failed", slog.Any("error", err))
	}
	return nil
}
