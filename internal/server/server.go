// Package server assembles the HTTP surface: the Connect API, share pages,
// health and metrics endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/splitit/splitit/internal/export"
	"github.com/splitit/splitit/internal/metrics"
	"github.com/splitit/splitit/internal/middleware"
	"github.com/splitit/splitit/internal/models"
	"github.com/splitit/splitit/internal/service"
	"github.com/splitit/splitit/internal/share"
	"github.com/splitit/splitit/internal/storage"
	"github.com/splitit/splitit/pkg/api/apiconnect"
)

// Service is the API implementation plus share-token resolution for the
// public pages.
type Service interface {
	apiconnect.SplitServiceHandler
	LoadShared(ctx context.Context, token string) (*models.Bill, error)
}

// NewRouter mounts svc and the public pages. m may be nil, in which case
// /metrics is not served.
func NewRouter(svc Service, m *metrics.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(loggingMiddleware)
	r.Use(chimiddleware.Recoverer)
	r.Use(corsMiddleware)

	path, handler := apiconnect.NewSplitServiceHandler(svc,
		connect.WithInterceptors(
			middleware.LoggingInterceptor(),
			middleware.PasscodeInterceptor(),
		),
	)
	r.Handle(path+"*", handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	if m != nil {
		r.Handle("/metrics", m.Handler())
	}

	r.Get("/s/{token}", sharedText(svc))
	r.Get("/s/{token}/pdf", sharedPDF(svc))

	return r
}

// sharedText serves the plain-text summary behind a share link.
func sharedText(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bill, ok := loadShared(w, r, svc)
		if !ok {
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(export.Text(export.NewSummary(bill))))
	}
}

// sharedPDF serves the PDF summary behind a share link.
func sharedPDF(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bill, ok := loadShared(w, r, svc)
		if !ok {
			return
		}
		pdf, err := export.PDF(export.NewSummary(bill))
		if err != nil {
			slog.Error("failed to render summary PDF", "bill_id", bill.ID, "error", err)
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", export.PDFContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", bill.ID+".pdf"))
		w.Write(pdf)
	}
}

func loadShared(w http.ResponseWriter, r *http.Request, svc Service) (*models.Bill, bool) {
	bill, err := svc.LoadShared(r.Context(), chi.URLParam(r, "token"))
	switch {
	case err == nil:
		return bill, true
	case errors.Is(err, share.ErrInvalidToken),
		errors.Is(err, share.ErrMissingToken),
		errors.Is(err, storage.ErrNotFound),
		errors.Is(err, service.ErrSharingDisabled):
		slog.Warn("shared bill not available", "error", err)
		http.Error(w, "Share link not found or expired", http.StatusNotFound)
	default:
		slog.Error("failed to load shared bill", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
	return nil, false
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)

		next.ServeHTTP(ww, r)

		slog.Info("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, "+middleware.PasscodeHeader)
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
