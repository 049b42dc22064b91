package app

import (
	"context"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/go-faster/sdk/zctx"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/smart-retail/internal/domain/catalog"
	"github.com/xenking/smart-retail/internal/domain/checkout"
	"github.com/xenking/smart-retail/internal/handler"
	"github.com/xenking/smart-retail/internal/storage/memory"
	"github.com/xenking/smart-retail/pkg/health"
	"github.com/xenking/smart-retail/pkg/httpmiddleware"
)

// seedCatalog is the fixed catalog the store starts with. It lives for the
// process lifetime; there is no durable storage.
var seedCatalog = []catalog.Item{
	{SKU: "12345", Name: "Milk", Price: decimal.NewFromFloat(30.0), Stock: 20},
	{SKU: "67890", Name: "Bread", Price: decimal.NewFromFloat(25.0), Stock: 15},
	{SKU: "11111", Name: "Eggs", Price: decimal.NewFromFloat(60.0), Stock: 10},
}

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, m *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// In-memory stores, seeded with the fixed catalog.
	catalogStore := memory.NewCatalog()
	for i := range seedCatalog {
		if err := catalogStore.Create(ctx, &seedCatalog[i]); err != nil {
			return errors.Wrapf(err, "seed item %s", seedCatalog[i].SKU)
		}
	}
	ledger := memory.NewLedger()

	// Checkout engine.
	checkoutSvc := checkout.NewService(catalogStore, ledger)

	// Health check service.
	healthSvc := health.New()
	healthSvc.AddLivenessCheck("goroutines", time.Second, health.GoroutineCountCheck(10000))
	healthSvc.SetReady(true)

	// HTTP routes: API surface plus probe endpoints.
	h := handler.New(catalogStore, checkoutSvc, ledger)
	mux := h.Routes()
	mux.HandleFunc("GET /livez", healthSvc.LiveEndpoint)
	mux.HandleFunc("GET /readyz", healthSvc.ReadyEndpoint)

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler: httpmiddleware.Wrap(mux,
			httpmiddleware.Recovery(),
			httpmiddleware.CORS(httpmiddleware.CORSConfig{
				AllowOrigins: cfg.CORS.Origins,
				AllowHeaders: []string{"Content-Type"},
				MaxAge:       86400,
			}),
			httpmiddleware.RateLimit(ctx, httpmiddleware.RateLimitConfig{
				Max:    cfg.RateLimit.Max,
				Window: cfg.RateLimit.Window,
			}),
			httpmiddleware.RequestID(),
			httpmiddleware.InjectLogger(zctx.From(ctx)),
			httpmiddleware.Instrument("retail-api", m.TracerProvider(), m.MeterProvider()),
			httpmiddleware.LogRequests(),
		),
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server")
		}
		return nil
	})
	g.Go(func() error {
		// Graceful shutdown: drop readiness, let load balancers drain,
		// then stop the server.
		<-gCtx.Done()
		healthSvc.SetReady(false)
		lg.Info("Readiness set to false, draining", zap.Duration("delay", cfg.Graceful.ReadinessDelay))
		time.Sleep(cfg.Graceful.ReadinessDelay)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}
