package repositories

import (
	"errors"

	"sakanly_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user with this email already exists")
)

type UserRepository interface {
	CreateUser(db *gorm.DB, user *models.User) error
	FindUserByID(db *gorm.DB, id string) (*models.User, error)
	FindUserByEmail(db *gorm.DB, email string) (*models.User, error)
	CountUsersByRole(db *gorm.DB, role models.UserRole) (int64, error)

	// Wishlist operations
	FindWishlist(db *gorm.DB, userID string) ([]models.Property, error)
	HasWishlistItem(db *gorm.DB, userID, propertyID string) (bool, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) CreateUser(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindUserByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindUserByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) CountUsersByRole(db *gorm.DB, role models.UserRole) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// Wishlist operations

func (r *UserRepositoryImpl) FindWishlist(db *gorm.DB, userID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Joins("JOIN wishlist_items ON wishlist_items.property_id = properties.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.added_at DESC").
		Find(&properties).Error
	return properties, err
}

func (r *UserRepositoryImpl) HasWishlistItem(db *gorm.DB, userID, propertyID string) (bool, error) {
	var count int64
	err := db.Model(&models.WishlistItem{}).
		Where("user_id = ? AND property_id = ?", userID, propertyID).
		Count(&count).Error
	return count > 0, err
}
