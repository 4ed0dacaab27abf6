package menus

import (
	"context"
	"database/sql"
	"fmt"
)

// Querier is satisfied by both *sql.DB and *sql.Tx
type Querier interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Execer is Querier plus ExecContext
type Execer interface {
	Querier
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// OwnerResolver walks a resource up the ownership chain to its user. Inside a
// transaction the rows on the chain stay locked until it ends.
type OwnerResolver func(ctx context.Context, q Querier, id int64) (int64, error)

// ResolveMenuOwner returns the user owning menuID
func ResolveMenuOwner(ctx context.Context, q Querier, menuID int64) (int64, error) {
	return resolveOwner(ctx, q, `SELECT user_id FROM menus WHERE menu_id = $1 FOR UPDATE`, menuID)
}

// ResolveCategoryOwner returns the user owning categoryID via its menu
func ResolveCategoryOwner(ctx context.Context, q Querier, categoryID int64) (int64, error) {
	query := `
		SELECT m.user_id
		FROM categories c
		JOIN menus m ON c.menu_id = m.menu_id
		WHERE c.category_id = $1
		FOR UPDATE
	`
	return resolveOwner(ctx, q, query, categoryID)
}

// ResolveItemOwner returns the user owning itemID via its category and menu
func ResolveItemOwner(ctx context.Context, q Querier, itemID int64) (int64, error) {
	query := `
		SELECT m.user_id
		FROM items i
		JOIN categories c ON i.category_id = c.category_id
		JOIN menus m ON c.menu_id = m.menu_id
		WHERE i.item_id = $1
		FOR UPDATE
	`
	return resolveOwner(ctx, q, query, itemID)
}

func resolveOwner(ctx context.Context, q Querier, query string, id int64) (int64, error) {
	var ownerID int64
	err := q.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err == sql.ErrNoRows {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to resolve owner: %w", err)
	}
	return ownerID, nil
}

// authorize succeeds only when resolve maps id to userID. A foreign owner is
// reported as ErrNotFound so callers cannot probe for other users' ids.
func authorize(ctx context.Context, q Querier, resolve OwnerResolver, id, userID int64) error {
	ownerID, err := resolve(ctx, q, id)
	if err != nil {
		return err
	}
	if ownerID != userID {
		return ErrNotFound
	}
	return nil
}
