// Package storage is the persisted key-value collaborator the session layer
// uses to survive restarts, the way the browser storefront leans on
// localStorage across page reloads.
package storage

import (
	"context"
	"errors"
)

type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

var ErrNotFound = errors.New("key not found")
