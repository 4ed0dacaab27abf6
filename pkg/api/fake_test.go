package api

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/platinummonkey/menuboard/pkg/auth"
	"github.com/platinummonkey/menuboard/pkg/menus"
	"github.com/platinummonkey/menuboard/pkg/tasks"
	"github.com/platinummonkey/menuboard/pkg/users"
)

// fakeStore is an in-memory implementation of users.Service, menus.Service
// and tasks.Service with the same ownership rules as the Postgres services.
type fakeStore struct {
	mu     sync.Mutex
	nextID int64

	users      map[string]*auth.User
	passwords  map[int64]string
	menus      map[int64]menus.Menu
	categories map[int64]menus.Category
	items      map[int64]menus.Item
	tasks      map[int64]tasks.Task

	// failWith is returned by every call when set
	failWith error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:      make(map[string]*auth.User),
		passwords:  make(map[int64]string),
		menus:      make(map[int64]menus.Menu),
		categories: make(map[int64]menus.Category),
		items:      make(map[int64]menus.Item),
		tasks:      make(map[int64]tasks.Task),
	}
}

func (f *fakeStore) id() int64 {
	f.nextID++
	return f.nextID
}

func sortedValues[T any](m map[int64]T, keep func(T) bool) []T {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make([]T, 0)
	for _, k := range keys {
		if keep(m[k]) {
			out = append(out, m[k])
		}
	}
	return out
}

func (f *fakeStore) menuOwner(menuID int64) (int64, bool) {
	m, ok := f.menus[menuID]
	return m.UserID, ok
}

func (f *fakeStore) categoryOwner(categoryID int64) (int64, bool) {
	c, ok := f.categories[categoryID]
	if !ok {
		return 0, false
	}
	return f.menuOwner(c.MenuID)
}

func (f *fakeStore) itemOwner(itemID int64) (int64, bool) {
	i, ok := f.items[itemID]
	if !ok {
		return 0, false
	}
	return f.categoryOwner(i.CategoryID)
}

func owns(owner int64, found bool, userID int64) bool {
	return found && owner == userID
}

// users.Service

func (f *fakeStore) CreateUser(_ context.Context, username, email, password string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	if len(password) > auth.MaxPasswordBytes {
		return nil, users.ErrInvalidPassword
	}
	email = strings.TrimSpace(email)
	if _, exists := f.users[email]; exists {
		return nil, users.ErrEmailTaken
	}
	user := &auth.User{UserID: f.id(), Username: username, Email: email, PasswordHash: "hashed:" + password}
	f.users[email] = user
	f.passwords[user.UserID] = password
	return user, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	user, ok := f.users[strings.TrimSpace(email)]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeStore) Authenticate(ctx context.Context, email, password string) (*auth.User, error) {
	user, err := f.FindByEmail(ctx, email)
	if err == users.ErrUserNotFound {
		return nil, users.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.passwords[user.UserID] != password {
		return nil, users.ErrInvalidCredentials
	}
	return user, nil
}

// menus.Service

func (f *fakeStore) CreateMenu(_ context.Context, userID int64, name, description string) (*menus.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	m := menus.Menu{MenuID: f.id(), UserID: userID, Name: name, Description: description}
	f.menus[m.MenuID] = m
	return &m, nil
}

func (f *fakeStore) ListMenus(_ context.Context, userID int64) ([]menus.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.listMenus(userID), nil
}

func (f *fakeStore) listMenus(userID int64) []menus.Menu {
	return sortedValues(f.menus, func(m menus.Menu) bool { return m.UserID == userID })
}

func (f *fakeStore) UpdateMenu(_ context.Context, userID, menuID int64, name, description string) (*menus.Menu, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	m, ok := f.menus[menuID]
	if !ok || m.UserID != userID {
		return nil, menus.ErrNotFound
	}
	m.Name, m.Description = name, description
	f.menus[menuID] = m
	return &m, nil
}

func (f *fakeStore) DeleteMenu(_ context.Context, userID, menuID int64) (*menus.CascadeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	owner, found := f.menuOwner(menuID)
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}

	result := &menus.CascadeResult{}
	for cid, c := range f.categories {
		if c.MenuID != menuID {
			continue
		}
		result.Items += f.deleteItemsOf(cid)
		delete(f.categories, cid)
		result.Categories++
	}
	delete(f.menus, menuID)
	return result, nil
}

func (f *fakeStore) deleteItemsOf(categoryID int64) int64 {
	var n int64
	for iid, i := range f.items {
		if i.CategoryID == categoryID {
			delete(f.items, iid)
			n++
		}
	}
	return n
}

func (f *fakeStore) ListMenusWithDetails(_ context.Context, userID int64) ([]menus.MenuWithDetails, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	out := make([]menus.MenuWithDetails, 0)
	for _, m := range f.listMenus(userID) {
		detail := menus.MenuWithDetails{Menu: m, Categories: []menus.CategoryWithItems{}}
		for _, c := range sortedValues(f.categories, func(c menus.Category) bool { return c.MenuID == m.MenuID }) {
			items := sortedValues(f.items, func(i menus.Item) bool { return i.CategoryID == c.CategoryID })
			detail.Categories = append(detail.Categories, menus.CategoryWithItems{Category: c, Items: items})
		}
		out = append(out, detail)
	}
	return out, nil
}

func (f *fakeStore) CreateCategory(_ context.Context, userID, menuID int64, name string) (*menus.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	owner, found := f.menuOwner(menuID)
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}
	c := menus.Category{CategoryID: f.id(), MenuID: menuID, Name: name}
	f.categories[c.CategoryID] = c
	return &c, nil
}

func (f *fakeStore) ListCategories(_ context.Context, userID int64) ([]menus.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sortedValues(f.categories, func(c menus.Category) bool {
		owner, found := f.menuOwner(c.MenuID)
		return owns(owner, found, userID)
	}), nil
}

func (f *fakeStore) UpdateCategory(ctx context.Context, userID, categoryID int64, name string) (*menus.Category, error) {
	f.mu.Lock()
	owner, found := f.categoryOwner(categoryID)
	f.mu.Unlock()
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}
	return f.UpdateCategoryOpen(ctx, categoryID, name)
}

func (f *fakeStore) DeleteCategory(_ context.Context, userID, categoryID int64) (*menus.CascadeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	owner, found := f.categoryOwner(categoryID)
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}
	result := &menus.CascadeResult{Items: f.deleteItemsOf(categoryID)}
	delete(f.categories, categoryID)
	return result, nil
}

func (f *fakeStore) CreateItem(ctx context.Context, userID int64, in menus.ItemInput) (*menus.Item, error) {
	f.mu.Lock()
	owner, found := f.categoryOwner(in.CategoryID)
	f.mu.Unlock()
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}
	return f.CreateItemOpen(ctx, in)
}

func (f *fakeStore) ListItems(_ context.Context, userID int64) ([]menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sortedValues(f.items, func(i menus.Item) bool {
		owner, found := f.categoryOwner(i.CategoryID)
		return owns(owner, found, userID)
	}), nil
}

func (f *fakeStore) UpdateItem(ctx context.Context, userID, itemID int64, in menus.ItemInput) (*menus.Item, error) {
	f.mu.Lock()
	owner, found := f.itemOwner(itemID)
	f.mu.Unlock()
	if !owns(owner, found, userID) {
		return nil, menus.ErrNotFound
	}
	return f.UpdateItemOpen(ctx, itemID, in)
}

func (f *fakeStore) DeleteItem(ctx context.Context, userID, itemID int64) error {
	f.mu.Lock()
	owner, found := f.itemOwner(itemID)
	f.mu.Unlock()
	if !owns(owner, found, userID) {
		return menus.ErrNotFound
	}
	return f.DeleteItemOpen(ctx, itemID)
}

// menus.OpenService

func (f *fakeStore) CreateItemOpen(_ context.Context, in menus.ItemInput) (*menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if in.Price < 0 || in.Price > menus.MaxPrice {
		return nil, menus.ErrInvalidPrice
	}
	if _, ok := f.categories[in.CategoryID]; !ok {
		return nil, menus.ErrNotFound
	}

	i := menus.Item{ItemID: f.id(), CategoryID: in.CategoryID, Name: in.Name, Description: in.Description, Price: in.Price}
	f.items[i.ItemID] = i
	return &i, nil
}

func (f *fakeStore) UpdateItemOpen(_ context.Context, itemID int64, in menus.ItemInput) (*menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	if in.Price < 0 || in.Price > menus.MaxPrice {
		return nil, menus.ErrInvalidPrice
	}

	i, ok := f.items[itemID]
	if !ok {
		return nil, menus.ErrNotFound
	}
	i.Name, i.Description, i.Price = in.Name, in.Description, in.Price
	f.items[itemID] = i
	return &i, nil
}

func (f *fakeStore) DeleteItemOpen(_ context.Context, itemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}
	if _, ok := f.items[itemID]; !ok {
		return menus.ErrNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeStore) UpdateCategoryOpen(_ context.Context, categoryID int64, name string) (*menus.Category, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	c, ok := f.categories[categoryID]
	if !ok {
		return nil, menus.ErrNotFound
	}
	c.Name = name
	f.categories[categoryID] = c
	return &c, nil
}

func (f *fakeStore) ListAllItems(_ context.Context) ([]menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sortedValues(f.items, func(menus.Item) bool { return true }), nil
}

func (f *fakeStore) GetItem(_ context.Context, itemID int64) (*menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	i, ok := f.items[itemID]
	if !ok {
		return nil, menus.ErrNotFound
	}
	return &i, nil
}

func (f *fakeStore) ListItemsByCategory(_ context.Context, categoryID int64) ([]menus.Item, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sortedValues(f.items, func(i menus.Item) bool { return i.CategoryID == categoryID }), nil
}

// tasks.Service

func (f *fakeStore) CreateTask(_ context.Context, userID int64, name, description string) (*tasks.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	t := tasks.Task{TaskID: f.id(), UserID: userID, TaskName: name, TaskDescription: description, Status: tasks.StatusPending}
	f.tasks[t.TaskID] = t
	return &t, nil
}

func (f *fakeStore) ListTasks(_ context.Context, userID int64) ([]tasks.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return sortedValues(f.tasks, func(t tasks.Task) bool { return t.UserID == userID }), nil
}

func (f *fakeStore) UpdateTaskStatus(_ context.Context, userID, taskID int64, status tasks.Status) (*tasks.Task, error) {
	if !status.Valid() {
		return nil, tasks.ErrInvalidStatus
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}

	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return nil, tasks.ErrNotFound
	}
	t.Status = status
	f.tasks[taskID] = t
	return &t, nil
}

func (f *fakeStore) DeleteTask(_ context.Context, userID, taskID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return f.failWith
	}

	t, ok := f.tasks[taskID]
	if !ok || t.UserID != userID {
		return tasks.ErrNotFound
	}
	if !t.Status.Deletable() {
		return tasks.ErrNotDeletable
	}
	delete(f.tasks, taskID)
	return nil
}

var (
	_ users.Service = (*fakeStore)(nil)
	_ menus.Service = (*fakeStore)(nil)
	_ tasks.Service = (*fakeStore)(nil)
)
