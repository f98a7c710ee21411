package services

import (
	"errors"

	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type FavoriteService interface {
	AddFavorite(db *gorm.DB, userID, propertyID string) error
	RemoveFavorite(db *gorm.DB, userID, propertyID string) error
	CheckFavoriteStatus(db *gorm.DB, userID, propertyID string) (*dto.FavoriteStatusResponse, error)
	GetWishlist(db *gorm.DB, userID string) ([]dto.PropertyResponse, error)
}

type favoriteService struct {
	propertyRepo repositories.PropertyRepository
	userRepo     repositories.UserRepository
}

func NewFavoriteService(propertyRepo repositories.PropertyRepository, userRepo repositories.UserRepository) FavoriteService {
	return &favoriteService{propertyRepo: propertyRepo, userRepo: userRepo}
}

// AddFavorite records the favorite on both the property and the user side in
// one transaction. Adding an existing favorite is a no-op.
func (s *favoriteService) AddFavorite(db *gorm.DB, userID, propertyID string) error {
	if _, err := s.propertyRepo.FindPropertyByID(db, propertyID); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		return apperrors.InternalError("favorite", err)
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		return s.propertyRepo.AddFavorite(tx, propertyID, userID)
	})
	if err != nil {
		return apperrors.InternalError("favorite", err)
	}
	return nil
}

// RemoveFavorite clears both sides in one transaction. Removing a favorite
// that is not set is a no-op.
func (s *favoriteService) RemoveFavorite(db *gorm.DB, userID, propertyID string) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		return s.propertyRepo.RemoveFavorite(tx, propertyID, userID)
	})
	if err != nil {
		return apperrors.InternalError("favorite", err)
	}
	return nil
}

func (s *favoriteService) CheckFavoriteStatus(db *gorm.DB, userID, propertyID string) (*dto.FavoriteStatusResponse, error) {
	isFavorite, err := s.userRepo.HasWishlistItem(db, userID, propertyID)
	if err != nil {
		return nil, apperrors.InternalError("favorite", err)
	}
	return &dto.FavoriteStatusResponse{PropertyID: propertyID, IsFavorite: isFavorite}, nil
}

func (s *favoriteService) GetWishlist(db *gorm.DB, userID string) ([]dto.PropertyResponse, error) {
	properties, err := s.userRepo.FindWishlist(db, userID)
	if err != nil {
		return nil, apperrors.InternalError("favorite", err)
	}
	return dto.NewPropertyResponses(properties), nil
}
