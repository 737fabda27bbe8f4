package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kkdai/youtube/v2"
	"golang.org/x/time/rate"
)

func main() {
	cfg := loadConfig()

	srv := newServer(cfg, &youtube.Client{})
	limiter := rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.BurstSize)
	handler := buildHandler(cfg, srv, limiter)

	httpServer := &http.Server{
		Addr:        ":" + cfg.Port,
		Handler:     handler,
		ReadTimeout: 15 * time.Second,
		// Streams run until completion or disconnect; no write deadline.
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}

	go handleShutdown(httpServer)

	log.Printf("🚀 Server running on http://localhost:%s", cfg.Port)
	if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

// buildHandler assembles the middleware chain. Instrumentation is attached
// only when metrics are enabled, matching the /metrics route gating.
func buildHandler(cfg Config, srv *server, limiter *rate.Limiter) http.Handler {
	var handler http.Handler = withRequestLog(
		withRateLimit(limiter,
			withCORS(srv.routes())))
	if cfg.MetricsEnabled {
		handler = withMetrics(handler)
	}
	return handler
}

func handleShutdown(httpServer *http.Server) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.Printf("🛑 Shutdown initiated (%s)", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	} else {
		log.Println("✅ Server stopped")
	}
}
