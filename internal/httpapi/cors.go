package httpapi

import (
	"net/http"

	"call-console/pkg/logger"

	"github.com/rs/cors"
)

// CORS wraps the console router for the browser front-end.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", logger.HeaderRequestID},
		ExposedHeaders:   []string{logger.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	})
	return c.Handler
}
