package menus

import "context"

// Menu is owned by exactly one user
type Menu struct {
	MenuID      int64  `json:"menu_id"`
	UserID      int64  `json:"user_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Category belongs to one menu
type Category struct {
	CategoryID int64  `json:"category_id"`
	MenuID     int64  `json:"menu_id"`
	Name       string `json:"name"`
}

// Item belongs to one category
type Item struct {
	ItemID      int64   `json:"item_id"`
	CategoryID  int64   `json:"category_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// ItemInput carries the writable fields of an item.
// CategoryID is only read on create.
type ItemInput struct {
	CategoryID  int64
	Name        string
	Description string
	Price       float64
}

// CategoryWithItems is a category with its items inlined
type CategoryWithItems struct {
	Category
	Items []Item `json:"items"`
}

// MenuWithDetails is a menu with its categories and items inlined
type MenuWithDetails struct {
	Menu
	Categories []CategoryWithItems `json:"categories"`
}

// CascadeResult reports how many descendants a cascading delete removed
type CascadeResult struct {
	Categories int64
	Items      int64
}

// Service is the ownership-scoped menu, category and item store.
// Every method taking a userID only touches rows owned by that user and
// returns ErrNotFound for rows that are absent or owned by someone else.
type Service interface {
	// Menus
	CreateMenu(ctx context.Context, userID int64, name, description string) (*Menu, error)
	ListMenus(ctx context.Context, userID int64) ([]Menu, error)
	UpdateMenu(ctx context.Context, userID, menuID int64, name, description string) (*Menu, error)
	DeleteMenu(ctx context.Context, userID, menuID int64) (*CascadeResult, error)
	ListMenusWithDetails(ctx context.Context, userID int64) ([]MenuWithDetails, error)

	// Categories
	CreateCategory(ctx context.Context, userID, menuID int64, name string) (*Category, error)
	ListCategories(ctx context.Context, userID int64) ([]Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID int64, name string) (*Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID int64) (*CascadeResult, error)

	// Items
	CreateItem(ctx context.Context, userID int64, in ItemInput) (*Item, error)
	ListItems(ctx context.Context, userID int64) ([]Item, error)
	UpdateItem(ctx context.Context, userID, itemID int64, in ItemInput) (*Item, error)
	DeleteItem(ctx context.Context, userID, itemID int64) error

	OpenService
}

// OpenService holds the operations that run without an owner. They are
// served by unauthenticated routes and must stay separate from the scoped ones.
type OpenService interface {
	CreateItemOpen(ctx context.Context, in ItemInput) (*Item, error)
	UpdateItemOpen(ctx context.Context, itemID int64, in ItemInput) (*Item, error)
	DeleteItemOpen(ctx context.Context, itemID int64) error
	UpdateCategoryOpen(ctx context.Context, categoryID int64, name string) (*Category, error)

	ListAllItems(ctx context.Context) ([]Item, error)
	GetItem(ctx context.Context, itemID int64) (*Item, error)
	ListItemsByCategory(ctx context.Context, categoryID int64) ([]Item, error)
}
