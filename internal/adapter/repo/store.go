package repo

import (
	"context"

	"donorhub/internal/domain"
	"donorhub/internal/infra"
)

// Store bundles the repositories and serves as the report record fetcher.
type Store struct {
	Donations  *DonationRepositoryPG
	Volunteers *VolunteerRepositoryPG
	Users      *UserRepositoryPG
}

func NewStore(exec infra.SQLExecutor) *Store {
	return &Store{
		Donations:  NewDonationRepository(exec),
		Volunteers: NewVolunteerRepository(exec),
		Users:      NewUserRepository(exec),
	}
}

// Fetcher adapts the store to the report engine's Fetcher contract.
func (s *Store) Fetcher() RecordFetcher { return RecordFetcher{store: s} }

// RecordFetcher forwards report fetches to the list queries.
type RecordFetcher struct {
	store *Store
}

func (f RecordFetcher) Donations(ctx context.Context, filter domain.RecordFilter) ([]domain.Donation, error) {
	return f.store.Donations.List(ctx, filter)
}

func (f RecordFetcher) Volunteers(ctx context.Context, filter domain.RecordFilter) ([]domain.Volunteer, error) {
	return f.store.Volunteers.List(ctx, filter)
}

func (f RecordFetcher) Users(ctx context.Context, filter domain.RecordFilter) ([]domain.User, error) {
	return f.store.Users.List(ctx, filter)
}
