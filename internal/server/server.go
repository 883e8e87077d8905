package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	batch "Mises/internal/calc/batch"
	export "Mises/internal/calc/export"
	figure "Mises/internal/calc/figure"
	importer "Mises/internal/calc/importer"
	mises "Mises/internal/calc/mises"
	report "Mises/internal/calc/report"
	section "Mises/internal/calc/section"
	snapshot "Mises/internal/calc/snapshot"
	"Mises/internal/config"
	"Mises/internal/middleware"
	"Mises/internal/ui"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const limiterIdle = 10 * time.Minute

// HandleList registers every route on r and returns the API rate limiter.
func HandleList(r *mux.Router, cfg config.Config, logger *zap.Logger) *middleware.IPRateLimiter {
	limiter := middleware.NewIPRateLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}).Methods("GET")

	api := r.PathPrefix("/api/mises").Subrouter()
	api.Use(limiter.LimitMiddleware)

	calcH := &mises.Handler{}
	batchH := &batch.Handler{}
	importH := &importer.Handler{Resolution: cfg.Resolution}
	figureH := &figure.Handler{Slider: cfg.Slider, ZRange: cfg.ZRange, Resolution: cfg.Resolution}
	exportH := &export.Handler{Slider: cfg.Slider, ZRange: cfg.ZRange, Resolution: cfg.Resolution}
	reportH := &report.Handler{Slider: cfg.Slider, ZRange: cfg.ZRange, Resolution: cfg.Resolution, Logger: logger}
	sectionH := &section.Handler{Slider: cfg.Slider}
	snapshotH := &snapshot.Handler{Slider: cfg.Slider, ZRange: cfg.ZRange, Resolution: cfg.Resolution}

	api.HandleFunc("/figure", figureH.Figure).Methods("GET")
	api.HandleFunc("/calc", calcH.Calc).Methods("POST")
	api.HandleFunc("/batch", batchH.Calc).Methods("POST")
	api.HandleFunc("/import", importH.Import).Methods("POST")
	api.HandleFunc("/mesh.xlsx", exportH.Mesh).Methods("GET")
	api.HandleFunc("/report.pdf", reportH.Generate).Methods("GET")
	api.HandleFunc("/section.png", sectionH.PNG).Methods("GET")
	api.HandleFunc("/snapshot.svg", snapshotH.SVG).Methods("GET")

	pageH := &ui.Handler{Slider: cfg.Slider, PlotlyURL: cfg.PlotlyURL}
	r.HandleFunc("/", pageH.Index).Methods("GET")

	return limiter
}

// NewHandler builds the full middleware chain around the router.
func NewHandler(cfg config.Config, logger *zap.Logger) (http.Handler, *middleware.IPRateLimiter) {
	r := mux.NewRouter()
	limiter := HandleList(r, cfg, logger)
	return middleware.CORS(cfg.CORSOrigin, middleware.RequestLogger(logger)(r)), limiter
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	handler, limiter := NewHandler(cfg, logger)
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting server", zap.String("addr", cfg.Addr), zap.Bool("tls", cfg.TLS()))
		var err error
		if cfg.TLS() {
			err = srv.ListenAndServeTLS(cfg.TLSCert, cfg.TLSKey)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		ticker := time.NewTicker(limiterIdle)
		defer ticker.Stop()
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-ticker.C:
				if n := limiter.Prune(limiterIdle); n > 0 {
					logger.Debug("pruned idle rate limiters", zap.Int("count", n))
				}
			}
		}
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received, closing active connections")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Shutdown)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		logger.Info("Server stopped")
		return nil
	})
	return g.Wait()
}
