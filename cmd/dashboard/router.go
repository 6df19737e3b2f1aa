// cmd/dashboard/router.go
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gymdesk/internal/clients"
	"gymdesk/internal/config"
	"gymdesk/internal/dashboard"
	"gymdesk/internal/expenses"
	"gymdesk/internal/inquiries"
	"gymdesk/internal/membership"
	"gymdesk/internal/payments"
)

// newRouter wires every dashboard service onto one chi router. Requests under
// /api/v1 are passed to the directory unchanged.
func newRouter(cfg *config.Config, directory *clients.DirectoryClient) (http.Handler, error) {
	directoryURL, err := url.Parse(cfg.Directory.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid directory URL %q: %w", cfg.Directory.BaseURL, err)
	}

	memberSvc := membership.NewService(directory)
	paymentSvc := payments.NewService(directory, cfg.Receipt)
	expenseSvc := expenses.NewService(directory)
	inquirySvc := inquiries.NewService(directory)
	statsSvc := dashboard.NewService(memberSvc, inquirySvc, expenseSvc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	proxy := httputil.NewSingleHostReverseProxy(directoryURL)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		log.Printf("Directory proxy error for %s %s: %v", r.Method, r.URL.Path, err)
		http.Error(w, "directory unavailable", http.StatusBadGateway)
	}
	r.Handle("/api/v1/*", proxy)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "healthy", "service": cfg.Telemetry.ServiceName})
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(cfg.Server.RequestTimeout))

		r.Route("/members", func(r chi.Router) {
			membership.NewHandler(memberSvc).Routes(r)
			r.Route("/{id}/payments", payments.NewHandler(paymentSvc).Routes)
		})
		r.Route("/expenses", expenses.NewHandler(expenseSvc).Routes)
		r.Route("/inquiries", inquiries.NewHandler(inquirySvc).Routes)
		r.Get("/stats", dashboard.NewHandler(statsSvc).HandleStats)
	})

	return r, nil
}
