package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vuelachile/schedgen/api"
	"github.com/vuelachile/schedgen/config"
	"github.com/vuelachile/schedgen/internal/service/flights"
	"github.com/vuelachile/schedgen/internal/service/schedule"
)

// Run starts the HTTP server (API + Prometheus endpoint) and blocks until
// the context is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, scheduleSvc schedule.ScheduleUseCase) error {
	router := gin.New()
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	api.NewFlightHandler(flightSvc).Register(v1.Group("/flights"))
	api.NewGenerationHandler(scheduleSvc).Register(v1.Group("/generations"))

	handler := http.NewServeMux()
	handler.Handle("/metrics", promhttp.Handler())
	handler.Handle("/", router)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}
