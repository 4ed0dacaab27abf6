package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/platinummonkey/menuboard/pkg/observability"
)

// Migration represents a database migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// GetMigrations returns the menuboard schema in version order.
// Foreign keys are declared without ON DELETE CASCADE; descendants are removed
// by the application inside one transaction.
func GetMigrations() []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create users table",
			SQL: `
				CREATE TABLE IF NOT EXISTS users (
					user_id BIGSERIAL PRIMARY KEY,
					username VARCHAR(255) NOT NULL,
					email VARCHAR(255) NOT NULL UNIQUE,
					password VARCHAR(255) NOT NULL
				);
			`,
		},
		{
			Version:     2,
			Description: "Create menus table",
			SQL: `
				CREATE TABLE IF NOT EXISTS menus (
					menu_id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL REFERENCES users(user_id),
					name VARCHAR(255) NOT NULL,
					description TEXT NOT NULL DEFAULT ''
				);

				CREATE INDEX IF NOT EXISTS idx_menus_user_id ON menus(user_id);
			`,
		},
		{
			Version:     3,
			Description: "Create categories table",
			SQL: `
				CREATE TABLE IF NOT EXISTS categories (
					category_id BIGSERIAL PRIMARY KEY,
					menu_id BIGINT NOT NULL REFERENCES menus(menu_id),
					name VARCHAR(255) NOT NULL
				);

				CREATE INDEX IF NOT EXISTS idx_categories_menu_id ON categories(menu_id);
			`,
		},
		{
			Version:     4,
			Description: "Create items table",
			SQL: `
				CREATE TABLE IF NOT EXISTS items (
					item_id BIGSERIAL PRIMARY KEY,
					category_id BIGINT NOT NULL REFERENCES categories(category_id),
					name VARCHAR(255) NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					price NUMERIC(10,2) NOT NULL CHECK (price >= 0)
				);

				CREATE INDEX IF NOT EXISTS idx_items_category_id ON items(category_id);
			`,
		},
		{
			Version:     5,
			Description: "Create tasks table",
			SQL: `
				CREATE TABLE IF NOT EXISTS tasks (
					task_id BIGSERIAL PRIMARY KEY,
					user_id BIGINT NOT NULL REFERENCES users(user_id),
					task_name VARCHAR(255) NOT NULL,
					task_description TEXT NOT NULL DEFAULT '',
					status VARCHAR(20) NOT NULL DEFAULT 'pending'
						CHECK (status IN ('pending', 'completed', 'cancel'))
				);

				CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks(user_id);
			`,
		},
	}
}

// RunMigrations executes all pending migrations, each in its own transaction
func RunMigrations(ctx context.Context, db *sql.DB, logger *observability.Logger) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INT PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}

	for _, migration := range GetMigrations() {
		if applied[migration.Version] {
			continue
		}

		if err := applyMigration(ctx, db, migration); err != nil {
			return err
		}

		logger.WithFields(map[string]interface{}{
			"version":     migration.Version,
			"description": migration.Description,
		}).Info("Applied migration")
	}

	return nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]bool)
	for rows.Next() {
		var version int
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("failed to scan migration version: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read migration versions: %w", err)
	}
	return applied, nil
}

func applyMigration(ctx context.Context, db *sql.DB, migration Migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %d: %w", migration.Version, err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO schema_migrations (version, description) VALUES ($1, $2)",
		migration.Version, migration.Description,
	); err != nil {
		return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
	}
	return nil
}
