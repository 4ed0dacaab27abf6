package menus

import (
	"context"
	"database/sql"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/platinummonkey/menuboard/pkg/observability"
)

const (
	menuColumns     = `menu_id, user_id, name, description`
	categoryColumns = `category_id, menu_id, name`
	itemColumns     = `item_id, category_id, name, description, price`
)

// PostgresService implements the Service interface using PostgreSQL
type PostgresService struct {
	db      *sql.DB
	metrics *observability.Metrics
}

// NewPostgresService creates a new PostgresService
func NewPostgresService(db *sql.DB) *PostgresService {
	return &PostgresService{db: db}
}

// WithMetrics records cascading delete outcomes on m
func (s *PostgresService) WithMetrics(m *observability.Metrics) *PostgresService {
	s.metrics = m
	return s
}

// CreateMenu creates a menu owned by userID
func (s *PostgresService) CreateMenu(ctx context.Context, userID int64, name, description string) (*Menu, error) {
	menu := &Menu{UserID: userID, Name: name, Description: description}

	query := `
		INSERT INTO menus (user_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING menu_id
	`
	if err := s.db.QueryRowContext(ctx, query, userID, name, description).Scan(&menu.MenuID); err != nil {
		return nil, classify(err, "create menu")
	}
	return menu, nil
}

// ListMenus returns the menus owned by userID
func (s *PostgresService) ListMenus(ctx context.Context, userID int64) ([]Menu, error) {
	query := `SELECT ` + menuColumns + ` FROM menus WHERE user_id = $1 ORDER BY menu_id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	menus := make([]Menu, 0)
	for rows.Next() {
		var m Menu
		if err := rows.Scan(&m.MenuID, &m.UserID, &m.Name, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	return menus, nil
}

// UpdateMenu renames a menu owned by userID
func (s *PostgresService) UpdateMenu(ctx context.Context, userID, menuID int64, name, description string) (*Menu, error) {
	query := `
		UPDATE menus SET name = $1, description = $2
		WHERE menu_id = $3 AND user_id = $4
		RETURNING ` + menuColumns
	menu := &Menu{}
	err := s.db.QueryRowContext(ctx, query, name, description, menuID, userID).
		Scan(&menu.MenuID, &menu.UserID, &menu.Name, &menu.Description)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(err, "update menu")
	}
	return menu, nil
}

// DeleteMenu removes a menu with all its categories and their items in one
// transaction. Nothing is removed unless every statement succeeds.
func (s *PostgresService) DeleteMenu(ctx context.Context, userID, menuID int64) (result *CascadeResult, err error) {
	ctx, span := observability.StartSpan(ctx, "menus.DeleteMenu", attribute.Int64("menu.id", menuID))
	defer func() {
		observability.RecordSpanError(span, err)
		span.End()
		s.observeCascade("menu", err)
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := authorize(ctx, tx, ResolveMenuOwner, menuID, userID); err != nil {
		return nil, err
	}

	result = &CascadeResult{}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM items
		WHERE category_id IN (SELECT category_id FROM categories WHERE menu_id = $1)
	`, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete menu items: %w", err)
	}
	result.Items, _ = res.RowsAffected()

	res, err = tx.ExecContext(ctx, `DELETE FROM categories WHERE menu_id = $1`, menuID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete menu categories: %w", err)
	}
	result.Categories, _ = res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM menus WHERE menu_id = $1`, menuID); err != nil {
		return nil, fmt.Errorf("failed to delete menu: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit menu delete: %w", err)
	}
	return result, nil
}

// CreateCategory adds a category to a menu owned by userID
func (s *PostgresService) CreateCategory(ctx context.Context, userID, menuID int64, name string) (*Category, error) {
	if err := authorize(ctx, s.db, ResolveMenuOwner, menuID, userID); err != nil {
		return nil, err
	}

	category := &Category{MenuID: menuID, Name: name}
	query := `INSERT INTO categories (menu_id, name) VALUES ($1, $2) RETURNING category_id`
	if err := s.db.QueryRowContext(ctx, query, menuID, name).Scan(&category.CategoryID); err != nil {
		return nil, classify(err, "create category")
	}
	return category, nil
}

// ListCategories returns the categories of every menu owned by userID
func (s *PostgresService) ListCategories(ctx context.Context, userID int64) ([]Category, error) {
	query := `
		SELECT c.category_id, c.menu_id, c.name
		FROM categories c
		JOIN menus m ON c.menu_id = m.menu_id
		WHERE m.user_id = $1
		ORDER BY c.category_id
	`
	return s.queryCategories(ctx, query, userID)
}

// UpdateCategory renames a category owned by userID. The ownership check and
// the write share one transaction.
func (s *PostgresService) UpdateCategory(ctx context.Context, userID, categoryID int64, name string) (category *Category, err error) {
	err = s.inOwnedTx(ctx, ResolveCategoryOwner, categoryID, userID, func(tx *sql.Tx) error {
		category, err = renameCategory(ctx, tx, categoryID, name)
		return err
	})
	return category, err
}

// DeleteCategory removes a category and its items in one transaction
func (s *PostgresService) DeleteCategory(ctx context.Context, userID, categoryID int64) (result *CascadeResult, err error) {
	ctx, span := observability.StartSpan(ctx, "menus.DeleteCategory", attribute.Int64("category.id", categoryID))
	defer func() {
		observability.RecordSpanError(span, err)
		span.End()
		s.observeCascade("category", err)
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := authorize(ctx, tx, ResolveCategoryOwner, categoryID, userID); err != nil {
		return nil, err
	}

	result = &CascadeResult{}

	res, err := tx.ExecContext(ctx, `DELETE FROM items WHERE category_id = $1`, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete category items: %w", err)
	}
	result.Items, _ = res.RowsAffected()

	if _, err := tx.ExecContext(ctx, `DELETE FROM categories WHERE category_id = $1`, categoryID); err != nil {
		return nil, fmt.Errorf("failed to delete category: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit category delete: %w", err)
	}
	return result, nil
}

// CreateItem adds an item to a category owned by userID
func (s *PostgresService) CreateItem(ctx context.Context, userID int64, in ItemInput) (*Item, error) {
	in, err := withNormalizedPrice(in)
	if err != nil {
		return nil, err
	}
	if err := authorize(ctx, s.db, ResolveCategoryOwner, in.CategoryID, userID); err != nil {
		return nil, err
	}
	return insertItem(ctx, s.db, in)
}

// ListItems returns every item reachable from menus owned by userID
func (s *PostgresService) ListItems(ctx context.Context, userID int64) ([]Item, error) {
	query := `
		SELECT i.item_id, i.category_id, i.name, i.description, i.price
		FROM items i
		JOIN categories c ON i.category_id = c.category_id
		JOIN menus m ON c.menu_id = m.menu_id
		WHERE m.user_id = $1
		ORDER BY i.item_id
	`
	return s.queryItems(ctx, query, userID)
}

// UpdateItem replaces name, description and price of an item owned by userID
func (s *PostgresService) UpdateItem(ctx context.Context, userID, itemID int64, in ItemInput) (item *Item, err error) {
	in, err = withNormalizedPrice(in)
	if err != nil {
		return nil, err
	}
	err = s.inOwnedTx(ctx, ResolveItemOwner, itemID, userID, func(tx *sql.Tx) error {
		item, err = updateItem(ctx, tx, itemID, in)
		return err
	})
	return item, err
}

// DeleteItem removes an item owned by userID
func (s *PostgresService) DeleteItem(ctx context.Context, userID, itemID int64) error {
	return s.inOwnedTx(ctx, ResolveItemOwner, itemID, userID, func(tx *sql.Tx) error {
		return deleteItem(ctx, tx, itemID)
	})
}

// inOwnedTx runs fn in a transaction after checking that resolve maps id to
// userID. The resolver locks the row, so ownership holds until commit.
func (s *PostgresService) inOwnedTx(ctx context.Context, resolve OwnerResolver, id, userID int64, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := authorize(ctx, tx, resolve, id, userID); err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func (s *PostgresService) observeCascade(resource string, err error) {
	if s.metrics == nil {
		return
	}
	outcome := "committed"
	switch {
	case err == ErrNotFound:
		outcome = "not_found"
	case err != nil:
		outcome = "rolled_back"
	}
	s.metrics.CascadeDeletesTotal.WithLabelValues(resource, outcome).Inc()
}

func renameCategory(ctx context.Context, q Execer, categoryID int64, name string) (*Category, error) {
	query := `UPDATE categories SET name = $1 WHERE category_id = $2 RETURNING ` + categoryColumns
	category := &Category{}
	err := q.QueryRowContext(ctx, query, name, categoryID).
		Scan(&category.CategoryID, &category.MenuID, &category.Name)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(err, "update category")
	}
	return category, nil
}

func insertItem(ctx context.Context, q Execer, in ItemInput) (*Item, error) {
	query := `
		INSERT INTO items (category_id, name, description, price)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + itemColumns
	item := &Item{}
	err := q.QueryRowContext(ctx, query, in.CategoryID, in.Name, in.Description, in.Price).
		Scan(&item.ItemID, &item.CategoryID, &item.Name, &item.Description, &item.Price)
	if err != nil {
		return nil, classify(err, "create item")
	}
	return item, nil
}

func updateItem(ctx context.Context, q Execer, itemID int64, in ItemInput) (*Item, error) {
	query := `
		UPDATE items SET name = $1, description = $2, price = $3
		WHERE item_id = $4
		RETURNING ` + itemColumns
	item := &Item{}
	err := q.QueryRowContext(ctx, query, in.Name, in.Description, in.Price, itemID).
		Scan(&item.ItemID, &item.CategoryID, &item.Name, &item.Description, &item.Price)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, classify(err, "update item")
	}
	return item, nil
}

func deleteItem(ctx context.Context, q Execer, itemID int64) error {
	res, err := q.ExecContext(ctx, `DELETE FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return requireAffected(res)
}

// requireAffected turns a write that matched no rows into ErrNotFound
func requireAffected(res sql.Result) error {
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresService) queryCategories(ctx context.Context, query string, args ...interface{}) ([]Category, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := make([]Category, 0)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.MenuID, &c.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresService) queryItems(ctx context.Context, query string, args ...interface{}) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	items := make([]Item, 0)
	for rows.Next() {
		var i Item
		if err := rows.Scan(&i.ItemID, &i.CategoryID, &i.Name, &i.Description, &i.Price); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}
