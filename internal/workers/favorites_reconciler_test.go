package workers

import (
	"testing"

	"sakanly_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PropertyFavorite{}, &models.WishlistItem{}))
	return db
}

func TestReconcilerBackfillsBothSides(t *testing.T) {
	db := newTestDB(t)

	// favorite without a wishlist mirror
	require.NoError(t, db.Create(&models.PropertyFavorite{PropertyID: "p-1", UserID: "u-1"}).Error)
	// wishlist entry without a favorite mirror
	require.NoError(t, db.Create(&models.WishlistItem{UserID: "u-2", PropertyID: "p-2"}).Error)
	// consistent pair must stay untouched
	require.NoError(t, db.Create(&models.PropertyFavorite{PropertyID: "p-3", UserID: "u-3"}).Error)
	require.NoError(t, db.Create(&models.WishlistItem{UserID: "u-3", PropertyID: "p-3"}).Error)

	NewFavoritesReconciler(db, "").Run()

	var favorites, wishlist int64
	require.NoError(t, db.Model(&models.PropertyFavorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&wishlist).Error)
	assert.Equal(t, int64(3), favorites)
	assert.Equal(t, int64(3), wishlist)

	var mirrored int64
	require.NoError(t, db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND property_id = ?", "u-1", "p-1").
		Count(&mirrored).Error)
	assert.Equal(t, int64(1), mirrored)
}

func TestReconcilerIsIdempotent(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.PropertyFavorite{PropertyID: "p-1", UserID: "u-1"}).Error)

	reconciler := NewFavoritesReconciler(db, "")
	reconciler.Run()
	reconciler.Run()

	var favorites, wishlist int64
	require.NoError(t, db.Model(&models.PropertyFavorite{}).Count(&favorites).Error)
	require.NoError(t, db.Model(&models.WishlistItem{}).Count(&wishlist).Error)
	assert.Equal(t, int64(1), favorites)
	assert.Equal(t, int64(1), wishlist)
}
