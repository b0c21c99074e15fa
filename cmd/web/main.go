// cmd/web/main.go
//
// Moderator-application intake service – HTTP entry point.
//
// Request life-cycle
// ------------------
//
//  1. Load env vars (host-wide file → .env fallback).
//
//  2. Load layered configuration (yaml + APPLYBOARD_ env overrides); every
//     knob has a safe default, so an empty environment still boots.
//
//  3. Start daily rotating logger (tees to console when running in a TTY).
//
//  4. Build the injected state: application store, cooldown limiter (with
//     its background janitor), and the best-effort webhook notifier.
//
//  5. Assemble the router: security headers + request-info enrichment
//     around the embedded form page, the /api routes, and the Prometheus
//     /metrics endpoint.
//
//  6. Serve with hardened timeouts under an errgroup; SIGINT / SIGTERM
//     triggers a bounded graceful shutdown.
//
// Large comment blocks are framed by blank “//” lines; inline comments use
// a single “//”.
package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/yanizio/applyboard/internal/api"
	"github.com/yanizio/applyboard/internal/config"
	"github.com/yanizio/applyboard/internal/logger"
	"github.com/yanizio/applyboard/internal/middleware"
	"github.com/yanizio/applyboard/internal/notify"
	"github.com/yanizio/applyboard/internal/ratelimit"
	"github.com/yanizio/applyboard/internal/requestinfo"
	"github.com/yanizio/applyboard/internal/server"
	"github.com/yanizio/applyboard/internal/store"
	"github.com/yanizio/applyboard/internal/web"
)

const serverEnvPath = "/usr/local/etc/applyboard/global.env"

// loadEnv prefers the host-wide env file; on dev it falls back to .env.
func loadEnv() {
	if _, err := os.Stat(serverEnvPath); err == nil {
		_ = godotenv.Load(serverEnvPath)
		return
	}
	_ = godotenv.Load()
}

// runningInTTY returns true when stdout is a character device.
func runningInTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

func init() { loadEnv() }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logOut, err := logger.New(cfg.Paths.Root, runningInTTY())
	if err != nil {
		log.Fatalf("start logger: %v", err)
	}

	//
	// ── 1.  Optional GeoIP database ─────────────────────────────────────
	//
	if cfg.Geo.DBPath != "" {
		if err := requestinfo.InitGeo(cfg.Geo.DBPath); err != nil {
			// Audit enrichment only; the service runs fine without it.
			logOut.Warnw("geo database unavailable", "path", cfg.Geo.DBPath, "err", err)
		} else {
			logOut.Infow("geo database online", "path", cfg.Geo.DBPath)
		}
	}

	//
	// ── 2.  Injected state: store, limiter, notifier ────────────────────
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st := store.New()
	limiter := ratelimit.New(cfg.RateLimit.Window)
	limiter.StartJanitor(ctx, cfg.RateLimit.SweepInterval)
	notifier := notify.New(cfg.Webhook.URL, cfg.Webhook.Timeout, logOut)
	if !notifier.Enabled() {
		logOut.Warnw("webhook url not set, notifications disabled")
	}

	//
	// ── 3.  Router: form page, API, metrics ─────────────────────────────
	//
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Security)
	r.Use(requestinfo.Enrich)

	r.Mount("/api", api.New(st, limiter, notifier, logOut).Routes())
	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/", web.Handler())

	//
	// ── 4.  Serve until signalled, then drain ───────────────────────────
	//
	srv := server.New(cfg.HTTP.ListenAddr, r)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logOut.Infow("listening", "addr", cfg.HTTP.ListenAddr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logOut.Fatalw("http server", "err", err)
	}
	logOut.Infow("shutdown complete", "applications_stored", st.Len())
}
