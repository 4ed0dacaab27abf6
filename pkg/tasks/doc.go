// Package tasks keeps a per-user task list.
//
// A task starts as pending and may move to completed or cancel. Only
// completed or cancelled tasks can be deleted.
package tasks
