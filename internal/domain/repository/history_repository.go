// Package repository defines persistence interfaces for the domain.
package repository

import (
	"context"

	"insight/internal/errors"
)

// ErrHistoryNotFound is returned when the history slot has never been written.
var ErrHistoryNotFound = errors.New("address history not found")

// HistoryRepository persists the single ordered recent-address list.
// The list is most-recent-first and rewritten wholesale on every change.
type HistoryRepository interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, addresses []string) error
}
