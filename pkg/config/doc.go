// Package config loads menuboard configuration from the environment.
//
// # Overview
//
// LoadConfig applies a .env file when present (real environment variables
// win), reads every MENUBOARD_* variable and validates the result.
//
//	cfg, err := config.LoadConfig()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Environment Variables
//
// Server:
//
//	MENUBOARD_HOST             (default: 0.0.0.0)
//	MENUBOARD_PORT             (default: 8080)
//	MENUBOARD_OPS_PORT         (default: 9090, health and metrics)
//	MENUBOARD_READ_TIMEOUT     (default: 15s)
//	MENUBOARD_WRITE_TIMEOUT    (default: 15s)
//	MENUBOARD_IDLE_TIMEOUT     (default: 60s)
//	MENUBOARD_SHUTDOWN_TIMEOUT (default: 30s)
//	MENUBOARD_CORS_ORIGINS     (comma-separated)
//	MENUBOARD_MAX_BODY_BYTES   (default: 1048576)
//
// Database:
//
//	MENUBOARD_POSTGRES_URL       (required)
//	MENUBOARD_POSTGRES_MAX_CONNS (default: 20)
//	MENUBOARD_POSTGRES_MIN_CONNS (default: 2)
//	MENUBOARD_POSTGRES_TIMEOUT   (default: 5s)
//	MENUBOARD_AUTO_MIGRATE       (default: true)
//
// Authentication:
//
//	MENUBOARD_JWT_SECRET     (required, at least 16 bytes)
//	MENUBOARD_TOKEN_TTL      (default: 2h)
//	MENUBOARD_PUBLIC_USER_ID (default: 2)
//
// Observability:
//
//	MENUBOARD_LOG_LEVEL          (debug, info, warn, error)
//	MENUBOARD_METRICS_ENABLED    (default: true)
//	MENUBOARD_OTEL_ENABLED       (default: false)
//	MENUBOARD_OTEL_ENDPOINT      (default: localhost:4317)
//	MENUBOARD_OTEL_SAMPLE_RATIO  (default: 1.0)
package config
