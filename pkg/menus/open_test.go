package menus

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var itemRowColumns = []string{"item_id", "category_id", "name", "description", "price"}

func TestCreateItemOpen(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("no ownership lookup", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(int64(3), "Tea", "", 2.0).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(30, 3, "Tea", "", 2.0))

		item, err := service.CreateItemOpen(ctx, ItemInput{CategoryID: 3, Name: "Tea", Price: 2})
		require.NoError(t, err)
		assert.Equal(t, &Item{ItemID: 30, CategoryID: 3, Name: "Tea", Price: 2}, item)
	})

	t.Run("unknown category", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(int64(404), "Tea", "", 2.0).
			WillReturnError(&pq.Error{Code: foreignKeyViolation})

		_, err := service.CreateItemOpen(ctx, ItemInput{CategoryID: 404, Name: "Tea", Price: 2})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("negative price", func(t *testing.T) {
		_, err := service.CreateItemOpen(ctx, ItemInput{CategoryID: 3, Name: "Tea", Price: -0.5})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("price beyond the column", func(t *testing.T) {
		_, err := service.CreateItemOpen(ctx, ItemInput{CategoryID: 3, Name: "Tea", Price: 1e9})
		assert.ErrorIs(t, err, ErrInvalidPrice)
	})

	t.Run("stored price is returned", func(t *testing.T) {
		mock.ExpectQuery(`INSERT INTO items`).
			WithArgs(int64(3), "Tea", "", 2.46).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(31, 3, "Tea", "", "2.46"))

		item, err := service.CreateItemOpen(ctx, ItemInput{CategoryID: 3, Name: "Tea", Price: 2.456})
		require.NoError(t, err)
		assert.Equal(t, 2.46, item.Price)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAndDeleteItemOpen(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("update any item", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE items SET`).
			WithArgs("Tea", "green", 2.5, int64(30)).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(30, 3, "Tea", "green", 2.5))

		item, err := service.UpdateItemOpen(ctx, 30, ItemInput{Name: "Tea", Description: "green", Price: 2.5})
		require.NoError(t, err)
		assert.Equal(t, "green", item.Description)
	})

	t.Run("update missing item", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE items SET`).
			WithArgs("Tea", "", 2.5, int64(404)).
			WillReturnError(sql.ErrNoRows)

		_, err := service.UpdateItemOpen(ctx, 404, ItemInput{Name: "Tea", Price: 2.5})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("delete missing item", func(t *testing.T) {
		mock.ExpectExec(`DELETE FROM items WHERE item_id = \$1`).
			WithArgs(int64(404)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		assert.ErrorIs(t, service.DeleteItemOpen(ctx, 404), ErrNotFound)
	})

	t.Run("rename any category", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE categories SET name = \$1 WHERE category_id = \$2`).
			WithArgs("Hot drinks", int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"category_id", "menu_id", "name"}).AddRow(3, 1, "Hot drinks"))

		category, err := service.UpdateCategoryOpen(ctx, 3, "Hot drinks")
		require.NoError(t, err)
		assert.Equal(t, "Hot drinks", category.Name)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUnscopedReads(t *testing.T) {
	service, mock, db := newMockService(t)
	defer db.Close()
	ctx := context.Background()

	t.Run("get item", func(t *testing.T) {
		mock.ExpectQuery(`FROM items WHERE item_id = \$1`).
			WithArgs(int64(30)).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).AddRow(30, 3, "Tea", "", 2.0))

		item, err := service.GetItem(ctx, 30)
		require.NoError(t, err)
		assert.Equal(t, "Tea", item.Name)
	})

	t.Run("get missing item", func(t *testing.T) {
		mock.ExpectQuery(`FROM items WHERE item_id = \$1`).
			WithArgs(int64(404)).
			WillReturnRows(sqlmock.NewRows(itemRowColumns))

		_, err := service.GetItem(ctx, 404)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("items by category", func(t *testing.T) {
		mock.ExpectQuery(`FROM items WHERE category_id = \$1`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows(itemRowColumns).
				AddRow(30, 3, "Tea", "", 2.0).
				AddRow(31, 3, "Coffee", "", 2.5))

		items, err := service.ListItemsByCategory(ctx, 3)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})

	t.Run("all items", func(t *testing.T) {
		mock.ExpectQuery(`FROM items ORDER BY item_id`).
			WillReturnRows(sqlmock.NewRows(itemRowColumns))

		items, err := service.ListAllItems(ctx)
		require.NoError(t, err)
		assert.NotNil(t, items)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
