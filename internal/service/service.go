// Package service assembles the snippetd process: telemetry, backend
// clients, the module set behind the registrar, the health probes, and the
// HTTP server lifecycle.
package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snipops/snippetd/auth"
	"github.com/snipops/snippetd/config"
	"github.com/snipops/snippetd/health"
	"github.com/snipops/snippetd/internal/azure"
	"github.com/snipops/snippetd/internal/modules/ingestion"
	"github.com/snipops/snippetd/internal/modules/ops"
	"github.com/snipops/snippetd/internal/modules/query"
	"github.com/snipops/snippetd/internal/modules/snippets"
	"github.com/snipops/snippetd/observe"
	"github.com/snipops/snippetd/shell"
)

const serviceName = "snippetd"

// Config adjusts assembly beyond the runtime configuration.
type Config struct {
	// Version is the build version reported by the ops module.
	// Default: "dev".
	Version string
}

// Service is a fully assembled snippetd process. New performs the whole
// bootstrap; Run only listens, supervises background tasks, and shuts down.
type Service struct {
	cfg      config.Config
	version  string
	obs      observe.Observer
	logger   observe.Logger
	metrics  *bootMetrics
	app      *shell.App
	agg      *health.Aggregator
	outcomes []shell.Outcome
	handler  http.Handler
	server   *http.Server
}

// New assembles a service from cfg: it builds telemetry, connects the
// configured backends, registers the fixed module set exactly once, and
// installs the health endpoints. Missing backend settings degrade to failed
// module loads and failing probes; construction itself still succeeds.
func New(ctx context.Context, cfg config.Config, opts ...Config) (*Service, error) {
	opt := Config{}
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.Version == "" {
		opt.Version = "dev"
	}

	obs, err := observe.NewObserver(ctx, observe.Config{
		ServiceName: serviceName,
		Version:     opt.Version,
		Tracing: observe.TracingConfig{
			Enabled:   cfg.Telemetry.Tracing.Enabled,
			Exporter:  cfg.Telemetry.Tracing.Exporter,
			SamplePct: cfg.Telemetry.Tracing.SamplePct,
		},
		Metrics: observe.MetricsConfig{
			Enabled:  cfg.Telemetry.Metrics.Enabled,
			Exporter: cfg.Telemetry.Metrics.Exporter,
		},
		Logging: observe.LoggingConfig{
			Enabled: true,
			Level:   cfg.Logging.Level,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("service: configure telemetry: %w", err)
	}

	metrics, err := newBootMetrics(obs.Meter())
	if err != nil {
		return nil, fmt.Errorf("service: create instruments: %w", err)
	}

	s := &Service{
		cfg:     cfg,
		version: opt.Version,
		obs:     obs,
		logger:  obs.Logger(),
		metrics: metrics,
	}

	blob := s.connectStorage(ctx)
	cosmos := s.connectCosmos(ctx)

	s.app = shell.NewApp(shell.AppConfig{Guard: s.guard()})

	registrar := shell.NewRegistrar(shell.RegistrarConfig{Logger: s.logger})
	s.outcomes = registrar.ApplyAll(ctx, s.app, s.modules(blob, cosmos))

	failed := 0
	for _, outcome := range s.outcomes {
		metrics.RecordOutcome(ctx, outcome)
		if !outcome.OK {
			failed++
		}
	}
	s.logger.Info(ctx, "module registration complete",
		observe.Field{Key: "modules", Value: len(s.outcomes)},
		observe.Field{Key: "failed", Value: failed},
	)

	s.agg = health.NewAggregator(health.AggregatorConfig{
		ProbeTimeout: cfg.Health.ProbeTimeout.Std(),
		Parallel:     cfg.Health.Parallel,
	})

	// A nil *azure.BlobStore must stay a nil interface so the probe sees
	// the backend as absent.
	var blobService health.BlobService
	if blob != nil {
		blobService = blob
	}
	s.agg.Register(health.NewStorageProbe(blobService, health.StorageProbeConfig{
		Container: cfg.Storage.Container,
	}))

	var querier health.DocumentQuerier
	if cosmos != nil {
		querier = cosmos
	}
	s.agg.Register(health.NewCosmosProbe(querier, health.CosmosProbeConfig{
		Database:  cfg.Cosmos.Database,
		Container: cfg.Cosmos.Container,
	}))

	s.app.HandleAnonymous("GET /health", health.ShallowHandler())
	s.app.HandleAnonymous("GET /health_extended", health.ExtendedHandler(s.agg))
	if cfg.Telemetry.Metrics.Enabled && cfg.Telemetry.Metrics.Exporter == "prometheus" {
		s.app.HandleAnonymous("GET /metrics", promhttp.Handler())
	}

	middleware, err := observe.NewHTTPMiddleware(obs)
	if err != nil {
		return nil, fmt.Errorf("service: create middleware: %w", err)
	}
	s.handler = middleware.Wrap(s.app.Handler())

	s.server = &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           s.handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
	}

	return s, nil
}

// connectStorage builds the blob client when a connection string is
// configured. Absence or a malformed string leaves the client nil; the
// storage probe and the ingestion module report it from there.
func (s *Service) connectStorage(ctx context.Context) *azure.BlobStore {
	if s.cfg.Storage.ConnectionString == "" {
		return nil
	}

	store, err := azure.NewBlobStore(s.cfg.Storage.ConnectionString)
	if err != nil {
		s.logger.Warn(ctx, "storage client unavailable",
			observe.Field{Key: "error", Value: err.Error()})
		return nil
	}
	return store
}

// connectCosmos builds the document client when the connection string and
// both names are configured; the cosmos probe names whichever is missing.
func (s *Service) connectCosmos(ctx context.Context) *azure.CosmosStore {
	c := s.cfg.Cosmos
	if c.ConnectionString == "" || c.Database == "" || c.Container == "" {
		return nil
	}

	store, err := azure.NewCosmosStore(c.ConnectionString, c.Database, c.Container)
	if err != nil {
		s.logger.Warn(ctx, "cosmos client unavailable",
			observe.Field{Key: "error", Value: err.Error()})
		return nil
	}
	return store
}

// guard builds the module-route guard from the configured credentials. With
// none configured the routes stay open; config.Warnings flags that state.
func (s *Service) guard() func(http.Handler) http.Handler {
	var authenticators []auth.Authenticator

	if len(s.cfg.Auth.APIKeys) > 0 {
		authenticators = append(authenticators, auth.NewKeyAuthenticator(
			auth.KeyConfig{Header: s.cfg.Auth.Header},
			s.cfg.Auth.APIKeys,
		))
	}
	if s.cfg.Auth.JWT.Secret != "" {
		authenticators = append(authenticators, auth.NewJWTAuthenticator(
			auth.JWTConfig{
				Issuer:   s.cfg.Auth.JWT.Issuer,
				Audience: s.cfg.Auth.JWT.Audience,
			},
			[]byte(s.cfg.Auth.JWT.Secret),
		))
	}

	if len(authenticators) == 0 {
		return nil
	}
	return auth.Require(auth.NewCompositeAuthenticator(authenticators...))
}

// modules returns the fixed module set in registration order. Unconfigured
// collaborators stay nil interfaces so each module's load check reports
// them.
func (s *Service) modules(blob *azure.BlobStore, cosmos *azure.CosmosStore) []shell.Module {
	snippetsConfig := snippets.Config{Logger: s.logger}
	queryConfig := query.Config{Logger: s.logger}
	if cosmos != nil {
		snippetsConfig.Store = cosmos
		queryConfig.Searcher = cosmos
	}

	list := []shell.Module{
		snippets.Module(snippetsConfig),
		query.Module(queryConfig),
	}

	if s.cfg.Ingestion.Enabled {
		ingestionConfig := ingestion.Config{
			Sink:      s.sink(),
			Container: s.cfg.Storage.Container,
			Interval:  s.cfg.Ingestion.Interval.Std(),
			Logger:    s.logger,
		}
		if blob != nil {
			ingestionConfig.Lister = blob
		}
		list = append(list, ingestion.Module(ingestionConfig))
	}

	return append(list, ops.Module(ops.Config{
		ServiceName: serviceName,
		Version:     s.version,
	}))
}

// sink is the handoff boundary for newly observed blobs. The processing
// pipeline lives outside this service; the shell records the arrival and
// moves on.
func (s *Service) sink() ingestion.Sink {
	return ingestion.SinkFunc(func(ctx context.Context, name string) error {
		s.metrics.RecordBlob(ctx)
		s.logger.Debug(ctx, "blob handed off", observe.Field{Key: "blob", Value: name})
		return nil
	})
}

// Handler returns the fully assembled HTTP handler, middleware included.
// Tests drive it directly; Run serves it.
func (s *Service) Handler() http.Handler {
	return s.handler
}

// Outcomes returns the module registration outcomes in registration order.
func (s *Service) Outcomes() []shell.Outcome {
	return append([]shell.Outcome(nil), s.outcomes...)
}

// Logger returns the service logger for callers that report through it.
func (s *Service) Logger() observe.Logger {
	return s.logger
}
