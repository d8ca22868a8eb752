package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/kiranakart/backend/pkg/config"
)

// CORS returns middleware that allows the configured storefront origin plus
// local development hosts. Credentials stay enabled because the session rides
// in a cookie.
func CORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
	}
	if cfg.FrontendOrigin != "" {
		origins = append(origins, cfg.FrontendOrigin)
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler
}
