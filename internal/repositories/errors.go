package repositories

import "errors"

// ErrNotFound is wrapped by every repository when a lookup matches no row,
// so handlers can map it to a 404 without inspecting gorm errors.
var ErrNotFound = errors.New("record not found")
