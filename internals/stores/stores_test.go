package stores

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cinepass-auth/internals/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.VerificationCode{}))
	return db
}

func TestUserStoreInsertAndFind(t *testing.T) {
	store := NewUserStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.User{
		Username: "alice",
		Email:    "a@x.com",
		Password: "hashed",
	}))

	user, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.False(t, user.Verified)

	_, err = store.FindByEmail(ctx, "nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserStoreDuplicateEmailRejectedByIndex(t *testing.T) {
	store := NewUserStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "h1"}))

	// The unique index is the guard, independent of any pre-insert lookup.
	err := store.Insert(ctx, &models.User{Username: "mallory", Email: "a@x.com", Password: "h2"})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	user, findErr := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, findErr)
	assert.Equal(t, "alice", user.Username)
}

func TestUserStoreSetVerified(t *testing.T) {
	store := NewUserStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.User{Username: "alice", Email: "a@x.com", Password: "h1"}))
	require.NoError(t, store.SetVerified(ctx, "a@x.com"))

	user, err := store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)

	// Setting again is harmless; verified never reverts.
	require.NoError(t, store.SetVerified(ctx, "a@x.com"))
	user, err = store.FindByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, user.Verified)
}

func TestCodeStoreExactMatchWithinTTL(t *testing.T) {
	store := NewCodeStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.VerificationCode{
		Email:     "a@x.com",
		Code:      "ab12cd",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}))

	entry, err := store.FindByEmailAndCode(ctx, "a@x.com", "ab12cd")
	require.NoError(t, err)
	assert.Equal(t, "ab12cd", entry.Code)

	_, err = store.FindByEmailAndCode(ctx, "a@x.com", "ffffff")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.FindByEmailAndCode(ctx, "b@x.com", "ab12cd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodeStoreExpiredRowIsAbsent(t *testing.T) {
	store := NewCodeStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.VerificationCode{
		Email:     "a@x.com",
		Code:      "ab12cd",
		ExpiresAt: time.Now().Add(-time.Second),
	}))

	// Still physically present, but reads must not see it.
	_, err := store.FindByEmailAndCode(ctx, "a@x.com", "ab12cd")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCodeStoreDeleteByEmailAndCode(t *testing.T) {
	store := NewCodeStore(openTestDB(t))
	ctx := context.Background()

	expiry := time.Now().Add(10 * time.Minute)
	require.NoError(t, store.Insert(ctx, &models.VerificationCode{Email: "a@x.com", Code: "aaaaaa", ExpiresAt: expiry}))
	require.NoError(t, store.Insert(ctx, &models.VerificationCode{Email: "a@x.com", Code: "bbbbbb", ExpiresAt: expiry}))

	require.NoError(t, store.DeleteByEmailAndCode(ctx, "a@x.com", "aaaaaa"))

	_, err := store.FindByEmailAndCode(ctx, "a@x.com", "aaaaaa")
	assert.ErrorIs(t, err, ErrNotFound)

	// The non-matching row survives.
	entry, err := store.FindByEmailAndCode(ctx, "a@x.com", "bbbbbb")
	require.NoError(t, err)
	assert.Equal(t, "bbbbbb", entry.Code)
}

func TestCodeStoreDeleteExpired(t *testing.T) {
	store := NewCodeStore(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Insert(ctx, &models.VerificationCode{Email: "a@x.com", Code: "aaaaaa", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, store.Insert(ctx, &models.VerificationCode{Email: "b@x.com", Code: "bbbbbb", ExpiresAt: time.Now().Add(-time.Hour)}))
	require.NoError(t, store.Insert(ctx, &models.VerificationCode{Email: "c@x.com", Code: "cccccc", ExpiresAt: time.Now().Add(time.Hour)}))

	purged, err := store.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, purged)

	entry, err := store.FindByEmailAndCode(ctx, "c@x.com", "cccccc")
	require.NoError(t, err)
	assert.Equal(t, "cccccc", entry.Code)
}
