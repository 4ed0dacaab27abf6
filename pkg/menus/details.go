package menus

import "context"

// ListMenusWithDetails returns the menus of userID with categories and items
// nested. Three queries are issued regardless of the number of menus.
func (s *PostgresService) ListMenusWithDetails(ctx context.Context, userID int64) ([]MenuWithDetails, error) {
	menus, err := s.ListMenus(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(menus) == 0 {
		return []MenuWithDetails{}, nil
	}

	categories, err := s.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return assembleDetails(menus, categories, items), nil
}

// assembleDetails nests items under categories and categories under menus,
// keeping the input order and using empty slices rather than nil.
func assembleDetails(menus []Menu, categories []Category, items []Item) []MenuWithDetails {
	itemsByCategory := make(map[int64][]Item)
	for _, item := range items {
		itemsByCategory[item.CategoryID] = append(itemsByCategory[item.CategoryID], item)
	}

	categoriesByMenu := make(map[int64][]CategoryWithItems)
	for _, c := range categories {
		nested := CategoryWithItems{Category: c, Items: itemsByCategory[c.CategoryID]}
		if nested.Items == nil {
			nested.Items = []Item{}
		}
		categoriesByMenu[c.MenuID] = append(categoriesByMenu[c.MenuID], nested)
	}

	detailed := make([]MenuWithDetails, 0, len(menus))
	for _, m := range menus {
		nested := MenuWithDetails{Menu: m, Categories: categoriesByMenu[m.MenuID]}
		if nested.Categories == nil {
			nested.Categories = []CategoryWithItems{}
		}
		detailed = append(detailed, nested)
	}
	return detailed
}
