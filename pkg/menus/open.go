package menus

import "context"

// CreateItemOpen inserts an item into any existing category
func (s *PostgresService) CreateItemOpen(ctx context.Context, in ItemInput) (*Item, error) {
	in, err := withNormalizedPrice(in)
	if err != nil {
		return nil, err
	}
	return insertItem(ctx, s.db, in)
}

// UpdateItemOpen updates any item by id
func (s *PostgresService) UpdateItemOpen(ctx context.Context, itemID int64, in ItemInput) (*Item, error) {
	in, err := withNormalizedPrice(in)
	if err != nil {
		return nil, err
	}
	return updateItem(ctx, s.db, itemID, in)
}

// DeleteItemOpen deletes any item by id
func (s *PostgresService) DeleteItemOpen(ctx context.Context, itemID int64) error {
	return deleteItem(ctx, s.db, itemID)
}

// UpdateCategoryOpen renames any category by id
func (s *PostgresService) UpdateCategoryOpen(ctx context.Context, categoryID int64, name string) (*Category, error) {
	return renameCategory(ctx, s.db, categoryID, name)
}

// ListAllItems returns every item regardless of owner
func (s *PostgresService) ListAllItems(ctx context.Context) ([]Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY item_id`)
}

// GetItem returns one item regardless of owner
func (s *PostgresService) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	items, err := s.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE item_id = $1`, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNotFound
	}
	return &items[0], nil
}

// ListItemsByCategory returns the items of one category regardless of owner
func (s *PostgresService) ListItemsByCategory(ctx context.Context, categoryID int64) ([]Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE category_id = $1 ORDER BY item_id`, categoryID)
}
