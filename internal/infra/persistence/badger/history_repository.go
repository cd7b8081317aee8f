package badger

import (
	"context"
	"time"

	"insight/internal/domain/repository"
	"insight/internal/errors"

	"github.com/timshannon/badgerhold/v4"
)

// historySlot is the single named slot holding the ordered history list.
const historySlot = "addressHistory"

type historyRecord struct {
	Slot      string `badgerhold:"key"`
	Addresses []string
	UpdatedAt time.Time
}

type historyRepository struct {
	store *badgerhold.Store
}

// NewHistoryRepository creates a badgerhold-backed history repository.
func NewHistoryRepository(store *badgerhold.Store) repository.HistoryRepository {
	return &historyRepository{store: store}
}

func (r *historyRepository) Load(_ context.Context) ([]string, error) {
	var record historyRecord
	if err := r.store.Get(historySlot, &record); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, repository.ErrHistoryNotFound
		}

		return nil, errors.Wrap(err, "load history slot")
	}

	return record.Addresses, nil
}

func (r *historyRepository) Save(_ context.Context, addresses []string) error {
	record := historyRecord{
		Slot:      historySlot,
		Addresses: addresses,
		UpdatedAt: time.Now(),
	}

	if err := r.store.Upsert(historySlot, &record); err != nil {
		return errors.Wrap(err, "save history slot")
	}

	return nil
}
