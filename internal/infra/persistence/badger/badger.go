// Package badger provides the embedded local store backing the
// recent-address history slot.
package badger

import (
	"context"
	"log/slog"
	"os"

	"insight/config"
	"insight/internal/errors"

	badgerdb "github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
	"go.uber.org/fx"
)

// Params defines the parameters required for the store
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the badgerhold store and registers its shutdown hook.
func New(params Params) (*badgerhold.Store, error) {
	options := badgerhold.DefaultOptions

	if params.Config.History.InMemory {
		options.Options = badgerdb.DefaultOptions("").WithInMemory(true)
	} else {
		path := params.Config.History.Path
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, errors.Wrap(err, "create history directory")
		}
		options.Dir = path
		options.ValueDir = path
	}
	options.Logger = nil

	store, err := badgerhold.Open(options)
	if err != nil {
		return nil, errors.Wrap(err, "open history store")
	}

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			params.Logger.Info("Closing history store")

			return errors.WithStack(store.Close())
		},
	})

	return store, nil
}
