package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/georgemunganga/printa-storefront/internal/config"
	appmw "github.com/georgemunganga/printa-storefront/internal/middleware"
	"github.com/georgemunganga/printa-storefront/internal/modules/cart"
	"github.com/georgemunganga/printa-storefront/internal/modules/catalog"
	logx "github.com/georgemunganga/printa-storefront/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	_ "github.com/lib/pq"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logx.Fatal().Err(err).Msg("load config")
	}
	logx.Init(logx.Options{Environment: cfg.Environment()})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ── Catalog ─────────────────────────────────────────────
	var repo catalog.Repository
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			logx.Fatal().Err(err).Msg("open database")
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			logx.Fatal().Err(err).Msg("ping database")
		}
		logx.Info().Msg("connected to the catalog database")
		repo = catalog.NewPostgresRepository(db)
	default:
		repo = catalog.NewFileRepository(cfg.CatalogFile)
	}

	snapshot, err := catalog.LoadCatalog(ctx, repo)
	if err != nil {
		logx.Fatal().Err(err).Msg("load catalog")
	}

	var pageCache catalog.PageCache
	if cfg.Redis.Enabled() {
		client, err := cfg.Redis.New(ctx)
		if err != nil {
			// The storefront works without the cache; it is only slower.
			logx.Warn().Err(err).Msg("redis unavailable, page cache disabled")
		} else {
			defer client.Close()
			pageCache = catalog.NewRedisPageCache(client, cfg.CacheTTL)
			logx.Info().Dur("ttl", cfg.CacheTTL).Msg("page cache enabled")
		}
	}

	// ── Router ──────────────────────────────────────────────
	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(appmw.RateLimit(appmw.NewLimiter(cfg.RatePerSecond, cfg.RateBurst)))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","catalog":"` + snapshot.Checksum() + `"}`))
	})

	catalogService := catalog.NewService(snapshot, pageCache)
	catalog.NewHandler(catalogService).RegisterRoutes(router)

	cartService := cart.NewService(catalogService)
	cart.NewHandler(cartService).RegisterRoutes(router)

	// ── Start Server ─────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logx.Error().Err(err).Msg("shutdown")
		}
	}()

	logx.Info().Str("port", cfg.Port).Int("products", snapshot.Len()).Msg("Printa storefront API starting")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logx.Fatal().Err(err).Msg("server stopped")
	}
}
