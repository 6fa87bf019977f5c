package service

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/store"
	"pulse-crm-backend/internal/store/models"

	"github.com/google/uuid"
)

// Demo data pools for seeded leads and members.
var (
	seedFirstNames = []string{"James", "Sarah", "Michael", "Jessica", "David", "Emily", "Robert", "Emma"}
	seedLastNames  = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis"}
	seedDomains    = []string{"gmail.com", "yahoo.com", "outlook.com", "company.com"}
	seedStatuses   = []string{"New", "Contacted", "Qualified", "Lost", "Closed"}
)

const (
	seedLeadCount = 5
	seedUserCount = 2
)

// SeedService injects generated demo data into the caller's organization.
type SeedService struct {
	repo repository.SeedRepositoryInterface
}

// NewSeedService creates a new seed service
func NewSeedService(repo repository.SeedRepositoryInterface) *SeedService {
	return &SeedService{repo: repo}
}

func pick(r *rand.Rand, pool []string) string {
	return pool[r.Intn(len(pool))]
}

// Seed writes a handful of random leads and display-only team members into
// the org in one transaction. The seeded users carry a dummy password hash
// and can never log in.
func (s *SeedService) Seed(ctx context.Context, orgID string) error {
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now().UTC().Format(time.RFC3339)

	leads := make([]*models.Lead, 0, seedLeadCount)
	for i := 0; i < seedLeadCount; i++ {
		first := pick(r, seedFirstNames)
		last := pick(r, seedLastNames)
		key := store.LeadKey(orgID, uuid.NewString())

		leads = append(leads, &models.Lead{
			PK:        key.PK,
			SK:        key.SK,
			Type:      models.TypeLead,
			ID:        key.SK[len(store.PrefixLead):],
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), pick(r, seedDomains)),
			Status:    pick(r, seedStatuses),
			Value:     float64(r.Intn(10000) + 1000),
			CreatedAt: now,
			Notes: []models.Note{
				{Content: "Auto-generated test lead.", CreatedAt: now},
			},
		})
	}

	// Distinct first names, since the seeded email doubles as the user's
	// key and the transaction rejects duplicate keys.
	order := r.Perm(len(seedFirstNames))

	users := make([]*models.User, 0, seedUserCount)
	for i := 0; i < seedUserCount; i++ {
		first := seedFirstNames[order[i]]
		last := pick(r, seedLastNames)
		email := fmt.Sprintf("member.%s@test.com", strings.ToLower(first))
		key := store.UserKey(orgID, email)

		users = append(users, &models.User{
			PK:        key.PK,
			SK:        key.SK,
			Type:      models.TypeUser,
			UserID:    uuid.NewString(),
			Name:      first + " " + last,
			Email:     email,
			Password:  "hashed_dummy_password",
			Role:      models.RoleMember,
			CreatedAt: now,
		})
	}

	if err := s.repo.InsertDemoData(ctx, leads, users); err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}
	return nil
}
