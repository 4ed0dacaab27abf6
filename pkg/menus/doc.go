// Package menus stores menus, their categories and the items in each
// category.
//
// Every scoped operation walks the ownership chain item -> category -> menu
// -> user before touching a row. A row owned by someone else is reported as
// ErrNotFound, the same as a row that does not exist.
//
// Deleting a menu or a category removes its children in a single
// transaction:
//
//	result, err := svc.DeleteMenu(ctx, userID, menuID)
//	if errors.Is(err, menus.ErrNotFound) {
//		// unknown or foreign menu, nothing was removed
//	}
//
// The OpenService methods skip the ownership check entirely and back the
// unauthenticated /open routes.
package menus
