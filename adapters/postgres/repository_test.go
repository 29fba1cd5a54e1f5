package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"evidencija/internal/errors"
	"evidencija/internal/migration"
	"evidencija/models"

	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, migration.NewRunner().Run(context.Background(), db))
	return db
}

func newTestUser(t *testing.T, db *sqlx.DB) *models.User {
	t.Helper()
	user, err := NewUserRepository(db).UpsertUser(context.Background(), "ana@example.com", "hash")
	require.NoError(t, err)
	return user
}

func TestUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	created, err := repo.UpsertUser(ctx, " Ana@Example.com ", "first")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email)

	again, err := repo.UpsertUser(ctx, "ana@example.com", "second")
	require.NoError(t, err)
	assert.Equal(t, created.ID, again.ID)
	assert.Equal(t, "second", again.PasswordHash)

	byID, err := repo.GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", byID.Email)

	byEmail, err := repo.GetUserByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	_, err = repo.GetUserByEmail(ctx, "nobody@example.com")
	assert.True(t, errors.Is(err, errors.CodeNotFound))
	_, err = repo.GetUserByID(ctx, uuid.New())
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSessionRepository(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewSessionRepository(db)
	ctx := context.Background()
	now := time.Now()

	live := &models.Session{Token: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(time.Hour).Unix(), CreatedAt: now.UTC()}
	stale := &models.Session{Token: uuid.New(), UserID: user.ID, ExpiresAt: now.Add(-time.Hour).Unix(), CreatedAt: now.UTC()}
	require.NoError(t, repo.CreateSession(ctx, live))
	require.NoError(t, repo.CreateSession(ctx, stale))

	got, err := repo.GetSession(ctx, live.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.UserID)
	assert.Equal(t, live.ExpiresAt, got.ExpiresAt)

	n, err := repo.DeleteExpired(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.GetSession(ctx, stale.Token)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	require.NoError(t, repo.DeleteSession(ctx, live.Token))
	require.NoError(t, repo.DeleteSession(ctx, live.Token))
	_, err = repo.GetSession(ctx, live.Token)
	assert.True(t, errors.Is(err, errors.CodeNotFound))
}

func TestSettingsRepository(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewSettingsRepository(db)
	ctx := context.Background()

	_, err := repo.GetSettings(ctx, user.ID)
	assert.True(t, errors.Is(err, errors.CodeNotFound))

	settings := &models.Settings{
		UserID:         user.ID,
		FullName:       "Ana Horvat",
		HomeAddress:    "Ilica 1, Zagreb",
		DistanceToWork: models.ParseDecimal("10,5"),
		PricePerKm:     models.ParseDecimal("0.5"),
	}
	require.NoError(t, repo.UpsertSettings(ctx, settings))

	got, err := repo.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Horvat", got.FullName)
	assert.Equal(t, models.DefaultTransport, got.DefaultTransport)
	require.True(t, got.DistanceToWork.Valid)
	assert.True(t, decimal.RequireFromString("10.5").Equal(got.DistanceToWork.Decimal))
	assert.False(t, got.DistanceFromWork.Valid)
	assert.True(t, decimal.RequireFromString("0.5").Equal(got.PricePerKm.Decimal))

	settings.FullName = "Ana Kovač"
	settings.DistanceToWork = models.ParseDecimal("")
	settings.DefaultTransport = "autobus"
	require.NoError(t, repo.UpsertSettings(ctx, settings))

	got, err = repo.GetSettings(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Kovač", got.FullName)
	assert.Equal(t, "autobus", got.DefaultTransport)
	assert.False(t, got.DistanceToWork.Valid)
}

func TestTravelExpenseRepository(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewTravelExpenseRepository(db)
	ctx := context.Background()

	rows := []*models.TravelExpense{
		{WorkDate: "2026-02-03", Included: true, Transport: "autobus", DistanceTo: models.ParseDecimal("10")},
		{WorkDate: "2026-02-02", Included: false, Transport: "osobni automobil"},
		{WorkDate: "2026-03-02", Included: true},
	}
	require.NoError(t, repo.SaveRows(ctx, user.ID, rows))

	feb := time.Date(2026, time.February, 14, 0, 0, 0, 0, time.UTC)
	got, err := repo.ListMonth(ctx, user.ID, feb)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-02-02", got[0].WorkDate)
	assert.False(t, got[0].Included)
	assert.Equal(t, "2026-02-03", got[1].WorkDate)
	assert.True(t, got[1].Included)
	assert.True(t, decimal.NewFromInt(10).Equal(got[1].DistanceTo.Decimal))

	// saving the same date again updates in place
	require.NoError(t, repo.SaveRows(ctx, user.ID, []*models.TravelExpense{
		{WorkDate: "2026-02-02", Included: true, Transport: "vlak"},
	}))
	got, err = repo.ListMonth(ctx, user.ID, feb)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.True(t, got[0].Included)
	assert.Equal(t, "vlak", got[0].Transport)

	err = repo.SaveRows(ctx, user.ID, []*models.TravelExpense{{WorkDate: "02.02.2026."}})
	assert.True(t, errors.Is(err, errors.CodeInvalidInput))
}

func TestIsUniqueViolation(t *testing.T) {
	db := newTestDB(t)
	newTestUser(t, db)

	_, err := db.Exec(`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		uuid.New(), "ana@example.com", "x", time.Now().UTC(), time.Now().UTC())
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err))
	assert.False(t, isUniqueViolation(assert.AnError))
}

func TestOpenSQLite(t *testing.T) {
	db, err := Open(context.Background(), "sqlite3", ":memory:")
	require.NoError(t, err)
	defer db.Close()

	var enabled int
	require.NoError(t, db.Get(&enabled, "PRAGMA foreign_keys"))
	assert.Equal(t, 1, enabled)

	_, err = NewUserRepository(db).UpsertUser(context.Background(), "ana@example.com", "hash")
	assert.NoError(t, err)
}

func TestOpenRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), "sqlite3", "")
	assert.True(t, errors.Is(err, errors.CodeConfigInvalid))
}
