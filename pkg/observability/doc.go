// Package observability provides structured logging, Prometheus metrics,
// health probes and OpenTelemetry tracing for the menuboard server.
//
// # Structured Logging
//
// Loggers are logrus-backed and write one JSON object per line:
//
//	logger := observability.NewLogger(observability.InfoLevel, os.Stdout)
//	logger.WithField("menu_id", 12).Info("Menu deleted")
//
// Request-scoped logging picks up the request id, user id and trace ids:
//
//	observability.FromContext(r.Context()).Warn("Open mutation served")
//
// # Prometheus Metrics
//
//	registry := prometheus.NewRegistry()
//	metrics := observability.NewMetrics(registry)
//	router.Use(observability.HTTPMetricsMiddleware(metrics))
//	observability.RegisterMetricsEndpoint(opsMux, registry)
//
// # Health Checks
//
//	checker := observability.NewHealthChecker(db, version)
//	checker.RegisterHealthEndpoints(opsMux)
//
// # OpenTelemetry
//
//	providers, err := observability.InitOTel(ctx, cfg, logger)
//	defer observability.ShutdownOTel(ctx, providers)
//
// # Related Packages
//
//   - pkg/config: observability settings
//   - pkg/httputil: request logging middleware
package observability
