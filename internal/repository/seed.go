package repository

import (
	"context"
	"fmt"

	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"
)

// SeedRepository inserts generated demo data
type SeedRepository struct {
	store *store.Store
}

// NewSeedRepository creates a new seed repository
func NewSeedRepository(s *store.Store) *SeedRepository {
	return &SeedRepository{store: s}
}

// InsertDemoData writes the generated leads and users in one transaction.
// The store accepts at most 25 items per transaction; the seed payload is
// well below that.
func (r *SeedRepository) InsertDemoData(ctx context.Context, leads []*models.Lead, users []*models.User) error {
	puts := make([]store.TransactPut, 0, len(leads)+len(users))
	for _, lead := range leads {
		puts = append(puts, store.TransactPut{Item: lead})
	}
	for _, user := range users {
		puts = append(puts, store.TransactPut{Item: user})
	}

	if err := r.store.TransactPuts(ctx, puts); err != nil {
		return fmt.Errorf("insert demo data: %w", err)
	}
	return nil
}
