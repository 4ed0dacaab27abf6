// Package postgres opens the PostgreSQL connection pool and applies the
// versioned menuboard schema.
//
//	db, err := postgres.Open(ctx, postgres.ConnectionConfig{URL: cfg.Database.URL, MaxConns: 20})
//	if err := postgres.RunMigrations(ctx, db, logger); err != nil { ... }
//
// Applied versions are tracked in schema_migrations.
package postgres
