// cmd/dashboard/main.go
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/shopspring/decimal"

	"gymdesk/internal/clients"
	"gymdesk/internal/config"
	"gymdesk/internal/telemetry"
)

func main() {
	cfg := config.Load()
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// The directory expects amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	shutdownTracer, err := telemetry.InitTracer(context.Background(), cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName)
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}

	directory := clients.NewDirectoryClient(cfg.Directory)
	router, err := newRouter(cfg, directory)
	if err != nil {
		log.Fatalf("Failed to build router: %v", err)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Starting Gym Dashboard on port %s (directory %s)", cfg.Server.Port, cfg.Directory.BaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown: %v", err)
	}
	if err := shutdownTracer(ctx); err != nil {
		log.Printf("Tracer shutdown: %v", err)
	}
}
