package services

import (
	"testing"

	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newFavoriteFixture(t *testing.T) (*gorm.DB, FavoriteService) {
	t.Helper()
	db := newTestDB(t)
	svc := NewFavoriteService(repositories.NewPropertyRepository(), repositories.NewUserRepository())
	return db, svc
}

func countFavoriteRows(t *testing.T, db *gorm.DB, userID, propertyID string) (int64, int64) {
	t.Helper()
	var favorites, wishlist int64
	require.NoError(t, db.Model(&models.PropertyFavorite{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&favorites).Error)
	require.NoError(t, db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&wishlist).Error)
	return favorites, wishlist
}

func TestAddFavoriteWritesBothSides(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	p := seedListable(t, db, models.Property{Title: "شقة", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})

	require.NoError(t, svc.AddFavorite(db, "user-1", p.ID))

	favorites, wishlist := countFavoriteRows(t, db, "user-1", p.ID)
	assert.Equal(t, int64(1), favorites)
	assert.Equal(t, int64(1), wishlist)
}

func TestAddFavoriteIsIdempotent(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	p := seedListable(t, db, models.Property{Title: "شقة", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})

	require.NoError(t, svc.AddFavorite(db, "user-1", p.ID))
	require.NoError(t, svc.AddFavorite(db, "user-1", p.ID))

	favorites, wishlist := countFavoriteRows(t, db, "user-1", p.ID)
	assert.Equal(t, int64(1), favorites)
	assert.Equal(t, int64(1), wishlist)
}

func TestAddFavoriteMissingProperty(t *testing.T) {
	db, svc := newFavoriteFixture(t)

	err := svc.AddFavorite(db, "user-1", "22222222-2222-2222-2222-222222222222")
	assert.ErrorIs(t, err, apperrors.ErrPropertyNotFound)
}

func TestRemoveFavoriteClearsBothSides(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	p := seedListable(t, db, models.Property{Title: "شقة", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})

	require.NoError(t, svc.AddFavorite(db, "user-1", p.ID))
	require.NoError(t, svc.RemoveFavorite(db, "user-1", p.ID))

	favorites, wishlist := countFavoriteRows(t, db, "user-1", p.ID)
	assert.Zero(t, favorites)
	assert.Zero(t, wishlist)
}

func TestRemoveFavoriteNotSetIsNoop(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	p := seedListable(t, db, models.Property{Title: "شقة", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})

	assert.NoError(t, svc.RemoveFavorite(db, "user-1", p.ID))
}

func TestCheckFavoriteStatus(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	p := seedListable(t, db, models.Property{Title: "شقة", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})

	status, err := svc.CheckFavoriteStatus(db, "user-1", p.ID)
	require.NoError(t, err)
	assert.False(t, status.IsFavorite)

	require.NoError(t, svc.AddFavorite(db, "user-1", p.ID))

	status, err = svc.CheckFavoriteStatus(db, "user-1", p.ID)
	require.NoError(t, err)
	assert.True(t, status.IsFavorite)
	assert.Equal(t, p.ID, status.PropertyID)
}

func TestGetWishlist(t *testing.T) {
	db, svc := newFavoriteFixture(t)
	first := seedListable(t, db, models.Property{Title: "الأولى", City: "القاهرة", Type: "شقة", Price: 1000, Category: models.PropertyCategoryRent})
	second := seedListable(t, db, models.Property{Title: "الثانية", City: "الجيزة", Type: "فيلا", Price: 2000, Category: models.PropertyCategorySale})
	seedListable(t, db, models.Property{Title: "غير مفضلة", City: "طنطا", Type: "محل", Price: 3000, Category: models.PropertyCategoryRent})

	require.NoError(t, svc.AddFavorite(db, "user-1", first.ID))
	require.NoError(t, svc.AddFavorite(db, "user-1", second.ID))
	require.NoError(t, svc.AddFavorite(db, "user-2", second.ID))

	wishlist, err := svc.GetWishlist(db, "user-1")
	require.NoError(t, err)

	require.Len(t, wishlist, 2)
	titles := []string{wishlist[0].Title, wishlist[1].Title}
	assert.ElementsMatch(t, []string{"الأولى", "الثانية"}, titles)
}
