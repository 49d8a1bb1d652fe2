package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	cartapp "github.com/muhammadheryan/eyewear-store/application/cart"
	checkoutapp "github.com/muhammadheryan/eyewear-store/application/checkout"
	educationapp "github.com/muhammadheryan/eyewear-store/application/education"
	orderapp "github.com/muhammadheryan/eyewear-store/application/order"
	productapp "github.com/muhammadheryan/eyewear-store/application/product"
	tryonapp "github.com/muhammadheryan/eyewear-store/application/tryon"
	userapp "github.com/muhammadheryan/eyewear-store/application/user"
	wishlistapp "github.com/muhammadheryan/eyewear-store/application/wishlist"
	"github.com/muhammadheryan/eyewear-store/cmd/config"
	redisclient "github.com/muhammadheryan/eyewear-store/cmd/redis"
	_ "github.com/muhammadheryan/eyewear-store/docs"
	categoryRepo "github.com/muhammadheryan/eyewear-store/repository/category"
	educationRepo "github.com/muhammadheryan/eyewear-store/repository/education"
	"github.com/muhammadheryan/eyewear-store/repository/kv"
	orderRepo "github.com/muhammadheryan/eyewear-store/repository/order"
	productRepo "github.com/muhammadheryan/eyewear-store/repository/product"
	redisRepo "github.com/muhammadheryan/eyewear-store/repository/redis"
	txRepo "github.com/muhammadheryan/eyewear-store/repository/tx"
	userRepo "github.com/muhammadheryan/eyewear-store/repository/user"
	"github.com/muhammadheryan/eyewear-store/thirdparty/rabbitmq"
	"github.com/muhammadheryan/eyewear-store/transport"
	"github.com/muhammadheryan/eyewear-store/utils/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := bootstrap()
			if err != nil {
				return err
			}
			defer logger.Close()

			return serve(cmd.Context(), cfg)
		},
	}
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	db, err := sqlx.Connect(cfg.Database.Driver, cfg.GetDSN())
	if err != nil {
		return nil, err
	}

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	return db, nil
}

func serve(ctx context.Context, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := openDB(cfg)
	if err != nil {
		logger.Error("err connect db", zap.Error(err))
		return err
	}
	defer db.Close()

	// Initialize Redis client
	redisClient, err := redisclient.New(cfg)
	if err != nil {
		logger.Error("err connect redis", zap.Error(err))
		return err
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Without a publisher the order app feeds the verification queue directly.
	var publisher orderapp.EventPublisher
	if cfg.RabbitMQ.Enabled {
		p, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
		if err != nil {
			logger.Warn("rabbitmq unavailable, order events disabled", zap.Error(err))
		} else {
			publisher = p
			defer p.Close()
		}
	}

	// Initialize repositories
	UserRepo := userRepo.NewUserRepository(db)
	CategoryRepo := categoryRepo.NewCategoryRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	EducationRepo := educationRepo.NewEducationRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	TxRepo := txRepo.NewTxRepository(db)
	RedisRepo := redisRepo.NewRepository(redisClient)
	Store := kv.NewRedisStore(redisClient)

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo, nil)
	WishlistApp := wishlistapp.NewWishlistApp(Store, ProductRepo)
	ProductApp := productapp.NewProductApp(ProductRepo, CategoryRepo, EducationRepo, RedisRepo, WishlistApp)
	EducationApp := educationapp.NewEducationApp(EducationRepo)
	CartApp := cartapp.NewCartApp(Store, ProductRepo)
	OrderApp := orderapp.NewOrderApp(TxRepo, OrderRepo, RedisRepo, publisher)
	CheckoutApp := checkoutapp.NewCheckoutApp(cfg.Checkout, CartApp, ProductRepo, OrderApp, nil)
	defer CheckoutApp.Close()
	TryOnApp := tryonapp.NewTryOnApp(cfg.TryOn, Store, ProductRepo, nil)
	defer TryOnApp.Close()

	unsubscribeCheckout := UserApp.SubscribeAuthChanges(CheckoutApp.HandleAuthChange)
	defer unsubscribeCheckout()
	unsubscribeTryOn := UserApp.SubscribeAuthChanges(TryOnApp.HandleAuthChange)
	defer unsubscribeTryOn()

	httpTransport := transport.NewTransport(&transport.RestHandler{
		UserApp:      UserApp,
		ProductApp:   ProductApp,
		EducationApp: EducationApp,
		CartApp:      CartApp,
		WishlistApp:  WishlistApp,
		OrderApp:     OrderApp,
		CheckoutApp:  CheckoutApp,
		TryOnApp:     TryOnApp,
		Store:        Store,
	}, transport.Options{InternalAPIKey: cfg.InternalAPIKey})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("failed server", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("err server shutdown", zap.Error(err))
		return err
	}
	return nil
}
