package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/wgomg/kwextract/internal/metrics"
	"github.com/wgomg/kwextract/internal/utils"
)

func NewRouter(handler *Handler, logger *utils.Logger, timeout time.Duration) http.Handler {
	router := chi.NewRouter()

	router.Use(RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(Logging(logger))
	router.Use(chimiddleware.Recoverer)

	router.Get("/health", handler.HandleHealth)
	router.Handle("/metrics", metrics.Handler())

	router.Group(func(r chi.Router) {
		if timeout > 0 {
			r.Use(chimiddleware.Timeout(timeout))
		}
		r.Post("/extract", handler.HandleExtract)
		r.Post("/extract/batch", handler.HandleExtractBatch)
	})

	return router
}
