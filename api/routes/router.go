package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiranakart/backend/api/controllers"
	"github.com/kiranakart/backend/api/middleware"
	address "github.com/kiranakart/backend/internal/addresses"
	"github.com/kiranakart/backend/internal/auth"
	"github.com/kiranakart/backend/internal/availability"
	"github.com/kiranakart/backend/internal/cart"
	"github.com/kiranakart/backend/internal/geocode"
	orders "github.com/kiranakart/backend/internal/orders"
	payment "github.com/kiranakart/backend/internal/payments"
	product "github.com/kiranakart/backend/internal/products"
	warehouse "github.com/kiranakart/backend/internal/warehouses"
	"github.com/kiranakart/backend/pkg/config"
	"github.com/kiranakart/backend/pkg/db"
	"github.com/kiranakart/backend/pkg/enums"
	"github.com/kiranakart/backend/pkg/logger"
	"github.com/kiranakart/backend/pkg/redis"
)

// Services bundles every domain service the router mounts.
type Services struct {
	Auth         auth.Service
	Cart         cart.Service
	Availability availability.Service
	Orders       orders.Service
	Payments     payment.Service
	Addresses    address.Service
	Geocode      geocode.Service
	Warehouses   warehouse.Service
	Products     product.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	signupPolicy := middleware.NewAuthRateLimitPolicy(
		"signup",
		cfg.AuthRateLimit.SignupWindow,
		cfg.AuthRateLimit.SignupIPLimit,
		cfg.AuthRateLimit.SignupEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisPinger(redisClient)))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	// Without redis the limiter middleware degrades to a pass-through.
	rateLimit := func(policy middleware.AuthRateLimitPolicy) func(http.Handler) http.Handler {
		if redisClient == nil {
			return func(next http.Handler) http.Handler { return next }
		}
		return middleware.AuthRateLimit(policy, redisClient, logg)
	}

	r.Route("/business", func(r chi.Router) {
		r.With(rateLimit(signupPolicy)).
			Post("/signup", controllers.AuthSignup(svcs.Auth, cfg.JWT, logg))
		r.With(rateLimit(loginPolicy)).
			Post("/login", controllers.AuthLogin(svcs.Auth, cfg.JWT, logg))
		r.Post("/logout", controllers.AuthLogout(cfg.JWT, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Get("/me", controllers.AuthMe(svcs.Auth, logg))
		})
	})

	r.Route("/product", func(r chi.Router) {
		r.Get("/", controllers.ProductList(svcs.Products, logg))
		r.Get("/{productId}", controllers.ProductGet(svcs.Products, logg))
	})

	r.Get("/locations/get-coordinates", controllers.LocationCoordinates(svcs.Geocode, logg))

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartList(svcs.Cart, logg))
			r.Post("/", controllers.CartAdd(svcs.Cart, logg))
			r.Put("/{cartItemId}", controllers.CartUpdateItem(svcs.Cart, logg))
			r.Delete("/{cartItemId}", controllers.CartRemoveItem(svcs.Cart, logg))
			r.Delete("/", controllers.CartClear(svcs.Cart, logg))
		})

		r.Post("/check/check-cart-availability", controllers.AvailabilityCheck(svcs.Availability, logg))

		r.Route("/order", func(r chi.Router) {
			r.Post("/place", controllers.OrderPlace(svcs.Orders, logg))
			r.Post("/place-detailed", controllers.OrderPlaceDetailed(svcs.Orders, logg))
			r.Get("/user/{userId}", controllers.OrdersByUser(svcs.Orders, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))
				r.Get("/all", controllers.OrdersAll(svcs.Orders, logg))
				r.Put("/status/{orderId}", controllers.OrderStatusUpdate(svcs.Orders, logg))
			})
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/create-order", controllers.PaymentCreateOrder(svcs.Payments, logg))
			r.Post("/verify-payment", controllers.PaymentVerify(svcs.Payments, logg))
			r.Post("/verify-signature", controllers.PaymentVerify(svcs.Payments, logg))
		})

		r.Route("/geo-address", func(r chi.Router) {
			r.Post("/createAddress", controllers.AddressCreate(svcs.Addresses, logg))
			r.Get("/user", controllers.AddressList(svcs.Addresses, logg))
			r.Put("/{addressId}", controllers.AddressUpdate(svcs.Addresses, logg))
			r.Delete("/{addressId}", controllers.AddressDelete(svcs.Addresses, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(enums.RoleAdmin.String(), logg))

			r.Route("/warehouse", func(r chi.Router) {
				r.Get("/", controllers.WarehouseList(svcs.Warehouses, logg))
				r.Post("/", controllers.WarehouseCreate(svcs.Warehouses, logg))
				r.Get("/{warehouseId}", controllers.WarehouseGet(svcs.Warehouses, logg))
				r.Put("/{warehouseId}", controllers.WarehouseUpdate(svcs.Warehouses, logg))
				r.Delete("/{warehouseId}", controllers.WarehouseDelete(svcs.Warehouses, logg))
			})

			r.Route("/product-warehouse", func(r chi.Router) {
				r.Post("/", controllers.StockProduct(svcs.Warehouses, logg))
				r.Delete("/", controllers.UnstockProduct(svcs.Warehouses, logg))
				r.Get("/{warehouseId}", controllers.WarehouseStockedProducts(svcs.Warehouses, logg))
			})
		})
	})

	return r
}

// redisPinger converts a possibly nil concrete client into an interface that
// stays nil when the client is absent.
func redisPinger(client *redis.Client) redis.Pinger {
	if client == nil {
		return nil
	}
	return client
}
