package repo

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donorhub/internal/domain"
	"donorhub/internal/infra"
)

var (
	donationCols  = []string{"id", "user_id", "donor_name", "donor_email", "amount", "currency", "program", "status", "payment_method", "message", "anonymous", "country", "created_at", "updated_at"}
	volunteerCols = []string{"id", "user_id", "name", "email", "phone", "skills", "availability", "message", "status", "created_at", "updated_at"}
	userCols      = []string{"id", "email", "full_name", "role", "created_at", "updated_at"}

	ts = time.Date(2024, 3, 2, 8, 0, 0, 0, time.UTC)
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(infra.NewSQLRunner(db, zerolog.Nop())), mock
}

func q(fragment string) string { return regexp.QuoteMeta(fragment) }

func TestDonationListPassesFilter(t *testing.T) {
	store, mock := newMockStore(t)
	after := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(q("from donations")).
		WithArgs(after, nil, "completed", "education", "", 0).
		WillReturnRows(sqlmock.NewRows(donationCols).
			AddRow("d1", "u1", "Ana", "ana@example.org", 50.0, "IDR", "education", "completed", "", "", false, "ID", ts, ts).
			AddRow("d2", nil, "Budi", "budi@example.org", 20.5, "IDR", "education", "completed", "bank", "", true, "", ts, ts))

	got, err := store.Fetcher().Donations(context.Background(), domain.RecordFilter{
		CreatedAfter: &after,
		Status:       "completed",
		Program:      "education",
	})

	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].UserID)
	assert.Equal(t, "u1", *got[0].UserID)
	assert.Nil(t, got[1].UserID)
	assert.Equal(t, 20.5, got[1].Amount)
	assert.Equal(t, domain.DonationStatusCompleted, got[1].Status)
	assert.True(t, got[1].Anonymous)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationListEmptyIsNotNil(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("from donations")).WillReturnRows(sqlmock.NewRows(donationCols))

	got, err := store.Donations.List(context.Background(), domain.RecordFilter{})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDonationListSurfacesQueryError(t *testing.T) {
	store, mock := newMockStore(t)
	boom := errors.New("connection refused")
	mock.ExpectQuery(q("from donations")).WillReturnError(boom)

	_, err := store.Donations.List(context.Background(), domain.RecordFilter{})

	assert.ErrorIs(t, err, boom)
}

func TestDonationCreate(t *testing.T) {
	store, mock := newMockStore(t)
	uid := "u1"
	mock.ExpectQuery(q("insert into donations")).
		WithArgs("u1", "Ana", "ana@example.org", 25.0, "IDR", "education", "card", "", false, "ID").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).AddRow("d9", "pending", ts, ts))

	d := &domain.Donation{UserID: &uid, DonorName: "Ana", DonorEmail: "ana@example.org", Amount: 25, Currency: "IDR", Program: "education", PaymentMethod: "card", Country: "ID"}
	require.NoError(t, store.Donations.Create(context.Background(), d))

	assert.Equal(t, "d9", d.ID)
	assert.Equal(t, domain.DonationStatusPending, d.Status)
	assert.Equal(t, ts, d.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDonationUpdateStatus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(q("update donations")).
			WithArgs("d1", "completed", sqlmock.AnyArg()).
			WillReturnRows(sqlmock.NewRows(donationCols).
				AddRow("d1", nil, "Ana", "ana@example.org", 50.0, "IDR", "education", "completed", "", "", false, "", ts, ts))

		d, err := store.Donations.UpdateStatus(context.Background(), "d1", domain.DonationStatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, domain.DonationStatusCompleted, d.Status)
	})

	t.Run("unknown id", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(q("update donations")).WillReturnError(sql.ErrNoRows)
		mock.ExpectQuery(q("select exists")).WithArgs("nope").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		_, err := store.Donations.UpdateStatus(context.Background(), "nope", domain.DonationStatusFailed)
		assert.ErrorIs(t, err, domain.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("illegal transition", func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(q("update donations")).WillReturnRows(sqlmock.NewRows(donationCols))
		mock.ExpectQuery(q("select exists")).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

		_, err := store.Donations.UpdateStatus(context.Background(), "d1", domain.DonationStatusFailed)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
	})

	t.Run("back to pending", func(t *testing.T) {
		store, mock := newMockStore(t)

		_, err := store.Donations.UpdateStatus(context.Background(), "d1", domain.DonationStatusPending)
		assert.ErrorIs(t, err, domain.ErrInvalidStatus)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestVolunteerListScansSkills(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("from volunteers")).
		WithArgs(nil, nil, "", "", 0).
		WillReturnRows(sqlmock.NewRows(volunteerCols).
			AddRow("v1", nil, "Citra", "citra@example.org", "", "{teaching,\"first aid\"}", "weekends", "", "approved", ts, ts).
			AddRow("v2", nil, "Dewi", "dewi@example.org", "", "{}", "", "", "pending", ts, ts))

	got, err := store.Fetcher().Volunteers(context.Background(), domain.RecordFilter{Program: "ignored"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"teaching", "first aid"}, got[0].Skills)
	assert.Equal(t, []string{}, got[1].Skills)
	assert.Equal(t, domain.VolunteerStatusApproved, got[0].Status)
}

func TestVolunteerCreate(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("insert into volunteers")).
		WithArgs("", "Citra", "citra@example.org", "", "{}", "", "").
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "created_at", "updated_at"}).AddRow("v9", "pending", ts, ts))

	v := &domain.Volunteer{Name: "Citra", Email: "citra@example.org"}
	require.NoError(t, store.Volunteers.Create(context.Background(), v))
	assert.Equal(t, "v9", v.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserGetByEmailNotFound(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("from profiles")).WithArgs("ghost@example.org").
		WillReturnRows(sqlmock.NewRows(userCols))

	_, err := store.Users.GetByEmail(context.Background(), "ghost@example.org")

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUserUpdateRole(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery(q("update profiles")).WithArgs("u1", "admin").
		WillReturnRows(sqlmock.NewRows(userCols).AddRow("u1", "ana@example.org", "Ana", "admin", ts, ts))

	u, err := store.Users.UpdateRole(context.Background(), "u1", domain.UserRoleAdmin)
	require.NoError(t, err)
	assert.True(t, u.IsAdmin())

	_, err = store.Users.UpdateRole(context.Background(), "u1", "owner")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
