package app

import (
	"context"
	"fmt"

	"github.com/ygoas29/fieldway/config"
	coremetrics "github.com/ygoas29/fieldway/core/metrics"
	"github.com/ygoas29/fieldway/core/schedule"
	"github.com/ygoas29/fieldway/core/travel"
	"github.com/ygoas29/fieldway/infra/cache"
	"github.com/ygoas29/fieldway/infra/fixture"
	"github.com/ygoas29/fieldway/infra/logger"
	"github.com/ygoas29/fieldway/infra/metrics"
	"github.com/ygoas29/fieldway/infra/mqtt"
	"github.com/ygoas29/fieldway/infra/provider"
	"github.com/ygoas29/fieldway/internal/eventbus"
)

// closer is a cleanup hook registered during assembly.
type closer func()

// Service wires the scheduling engine to its configured infrastructure.
type Service struct {
	Engine *schedule.Engine

	bus         *eventbus.Bus[any]
	forwarder   *mqtt.Forwarder
	log         logger.Logger
	promEnabled bool
	promPort    string
	closers     []closer
}

// New assembles a Service from the configuration.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	store, err := fixture.Load(cfg.Fixture)
	if err != nil {
		return nil, fmt.Errorf("fixture: %w", err)
	}

	svc := &Service{log: logg}

	var travelCache travel.Cache
	switch cfg.Cache.Backend {
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.Redis)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		svc.closers = append(svc.closers, func() { rc.Close() })
		travelCache = rc
	default:
		travelCache = travel.NewMemoryCache()
	}

	var routeProvider travel.Provider
	if cfg.Provider.URL != "" {
		routeProvider = provider.NewHTTPProvider(cfg.Provider)
	}
	resolver := travel.NewResolver(travelCache, routeProvider, logger.New("resolver"))

	var sinks []coremetrics.Sink
	svc.promEnabled = cfg.Metrics.PrometheusEnabled
	svc.promPort = cfg.Metrics.PrometheusPort
	if svc.promEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics.InfluxURL, cfg.Metrics.InfluxToken,
			cfg.Metrics.InfluxOrg, cfg.Metrics.InfluxBucket)
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	svc.bus = eventbus.New[any]()
	if cfg.Events.Enabled {
		pub, err := mqtt.NewPahoPublisher(cfg.Events.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.closers = append(svc.closers, pub.Disconnect)
		svc.forwarder = mqtt.NewForwarder(pub, svc.bus)
	}

	engine, err := schedule.New(cfg.Engine, store, store, store, resolver, travelCache, sink, svc.bus, logger.New("engine"))
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	svc.Engine = engine
	return svc, nil
}

// Run starts the background collaborators and blocks until the context is
// cancelled. Services used purely as an engine handle (CLI one-shots) can
// call Start instead.
func (s *Service) Run(ctx context.Context) error {
	s.Start(ctx)
	<-ctx.Done()
	return nil
}

// Start launches the background collaborators without blocking.
func (s *Service) Start(ctx context.Context) {
	if s.forwarder != nil {
		go s.forwarder.Run(ctx)
	}
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
}

// Close releases resources held by the service.
func (s *Service) Close() {
	s.bus.Close()
	for _, c := range s.closers {
		c()
	}
}
