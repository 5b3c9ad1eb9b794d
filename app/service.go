package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	planapi "github.com/kochimetro/induction/api/plan"
	"github.com/kochimetro/induction/config"
	coremetrics "github.com/kochimetro/induction/core/metrics"
	"github.com/kochimetro/induction/core/planner"
	"github.com/kochimetro/induction/infra/logger"
	"github.com/kochimetro/induction/infra/metrics"
	"github.com/kochimetro/induction/infra/mqtt"
)

// Service wires the planner, the HTTP API, metrics sinks and the optional
// plan broadcaster.
type Service struct {
	Planner   *planner.Planner
	publisher mqtt.PlanPublisher
	log       logger.Logger
	cfg       *config.Config
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(
			cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken, cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.NewMultiSink(sinks...)
	}

	svc := &Service{
		Planner: planner.New(logger.New("planner"), sink),
		log:     logg,
		cfg:     cfg,
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}
	return svc, nil
}

// Run serves the planner API until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusAddr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	mux := http.NewServeMux()
	mux.Handle("/api/plan/recompute", planapi.NewRecomputeHandler(s.Planner, s.log, s.broadcast))
	mux.Handle("/api/plan/schema", planapi.NewSchemaHandler())
	srv := &http.Server{Addr: s.cfg.HTTP.Addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
	}()

	s.log.Infof("planner API listening on %s", s.cfg.HTTP.Addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) broadcast(plan *planner.InductionPlan) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishPlan(plan); err != nil {
		s.log.Warnf("broadcast plan %s: %v", plan.ID, err)
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.publisher != nil {
		return s.publisher.Close()
	}
	return nil
}
