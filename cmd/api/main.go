package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/kiranakart/backend/api"
	"github.com/kiranakart/backend/api/routes"
	address "github.com/kiranakart/backend/internal/addresses"
	"github.com/kiranakart/backend/internal/auth"
	"github.com/kiranakart/backend/internal/availability"
	"github.com/kiranakart/backend/internal/cart"
	"github.com/kiranakart/backend/internal/geocode"
	orders "github.com/kiranakart/backend/internal/orders"
	payment "github.com/kiranakart/backend/internal/payments"
	product "github.com/kiranakart/backend/internal/products"
	"github.com/kiranakart/backend/internal/users"
	warehouse "github.com/kiranakart/backend/internal/warehouses"
	"github.com/kiranakart/backend/pkg/config"
	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/logger"
	"github.com/kiranakart/backend/pkg/metrics"
	"github.com/kiranakart/backend/pkg/migrate"
	"github.com/kiranakart/backend/pkg/nominatim"
	"github.com/kiranakart/backend/pkg/razorpay"
	"github.com/kiranakart/backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, cfg.FeatureFlags, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	var redisClient *redis.Client
	if cfg.Redis.Configured() {
		redisClient, err = redis.New(context.Background(), cfg.Redis, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap redis", err)
			os.Exit(1)
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logg.Error(context.Background(), "error closing redis", err)
			}
		}()
	} else {
		logg.Warn(context.Background(), "redis not configured, auth rate limiting disabled")
	}

	registry := prometheus.NewRegistry()
	workflowMetrics := metrics.NewWorkflowMetrics(registry)

	geocoder, err := nominatim.NewClient(cfg.Geocoder.UserAgent, nominatim.WithBaseURL(cfg.Geocoder.BaseURL))
	if err != nil {
		logg.Error(context.Background(), "failed to create geocoding client", err)
		os.Exit(1)
	}

	razorpayClient, err := razorpay.NewClient(cfg.Razorpay)
	if err != nil {
		logg.Error(context.Background(), "failed to create razorpay client", err)
		os.Exit(1)
	}

	conn := dbClient.DB()

	geocodeService, err := geocode.NewService(geocode.NewRepository(conn), geocoder, workflowMetrics, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create geocode service", err)
		os.Exit(1)
	}

	availabilityService, err := availability.NewService(availability.NewRepository(conn), workflowMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create availability service", err)
		os.Exit(1)
	}

	paymentService, err := payment.NewService(razorpayClient, cfg.Razorpay)
	if err != nil {
		logg.Error(context.Background(), "failed to create payment service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(conn),
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	productRepo := product.NewRepository(conn)
	productService, err := product.NewService(productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create product service", err)
		os.Exit(1)
	}

	cartRepo := cart.NewRepository(conn)
	cartService, err := cart.NewService(cartRepo, dbClient, productRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	addressService, err := address.NewService(address.NewRepository(conn), dbClient, geocodeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create address service", err)
		os.Exit(1)
	}

	warehouseService, err := warehouse.NewService(warehouse.NewRepository(conn), geocodeService)
	if err != nil {
		logg.Error(context.Background(), "failed to create warehouse service", err)
		os.Exit(1)
	}

	orderService, err := orders.NewService(orders.ServiceParams{
		Repo:     orders.NewRepository(conn),
		Tx:       dbClient,
		Cart:     cartRepo,
		Checker:  availabilityService,
		Verifier: paymentService,
		Resolver: geocodeService,
		Metrics:  workflowMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	router := routes.NewRouter(cfg, logg, dbClient, redisClient, registry, routes.Services{
		Auth:         authService,
		Cart:         cartService,
		Availability: availabilityService,
		Orders:       orderService,
		Payments:     paymentService,
		Addresses:    addressService,
		Geocode:      geocodeService,
		Warehouses:   warehouseService,
		Products:     productService,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := api.NewServer(addr, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(ctx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(ctx, "signal", sig.String()), "shutting down")
		if err := api.Shutdown(server); err != nil {
			logg.Error(ctx, "graceful shutdown failed", err)
			os.Exit(1)
		}
	}
}
