package main

import (
	"log/slog"
	"net/http"

	"call-console/internal/auth"
	"call-console/internal/config"
	"call-console/internal/credentials"
	"call-console/internal/httpapi"
	"call-console/pkg/logger"

	"github.com/gin-gonic/gin"
)

// newRouter builds the gin engine and wraps it with CORS.
// Keep this file free of business logic.
func newRouter(cfg *config.Config, log *slog.Logger, h httpapi.Handlers, tokens credentials.Store) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log, "/healthz"))

	h.Register(r, auth.RequireSession(tokens, cfg.HTTP.LoginPath), httpapi.NewUpgrader(cfg.HTTP.AllowedOrigins))

	return httpapi.CORS(cfg.HTTP.AllowedOrigins)(r)
}
