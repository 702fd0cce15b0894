package keystore

import (
	"context"

	"github.com/staticWagomU/slack-remind-generator/internal/database"
)

// SQLStore keeps the key in the settings table (sqlite or postgres)
type SQLStore struct {
	repo *database.SettingsRepository
}

// NewSQLStore returns a store over db
func NewSQLStore(db *database.DB) *SQLStore {
	return &SQLStore{repo: database.NewSettingsRepository(db)}
}

func (s *SQLStore) Save(ctx context.Context, key string) error {
	key, err := normalize(key)
	if err != nil {
		return err
	}
	return s.repo.Set(ctx, SlotName, key)
}

func (s *SQLStore) Read(ctx context.Context) (string, bool, error) {
	return s.repo.Get(ctx, SlotName)
}

func (s *SQLStore) Clear(ctx context.Context) error {
	return s.repo.Delete(ctx, SlotName)
}
