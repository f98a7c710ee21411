package repositories

import (
	"errors"

	"sakanly_backend/internal/models"
	"sakanly_backend/internal/queryfeatures"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrImageNotFound    = errors.New("property image not found")
)

type PropertyRepository interface {
	// Property operations
	CreateProperty(db *gorm.DB, property *models.Property) error
	FindPropertyByID(db *gorm.DB, id string) (*models.Property, error)
	FindProperties(db *gorm.DB, features *queryfeatures.Features) ([]models.Property, int64, error)
	FindPropertiesByOwner(db *gorm.DB, ownerID string) ([]models.Property, error)
	FindPendingProperties(db *gorm.DB, category models.PropertyCategory) ([]models.Property, error)
	FindListableProperties(db *gorm.DB, excludeID string) ([]models.Property, error)
	FindMostViewedProperties(db *gorm.DB, limit int) ([]models.Property, error)
	UpdateProperty(db *gorm.DB, property *models.Property) error
	DeleteProperty(db *gorm.DB, id string) error
	IncrementViews(db *gorm.DB, id string) error

	// Image operations
	ReplaceImages(db *gorm.DB, propertyID string, images []models.PropertyImage) error
	FindImagesByProperty(db *gorm.DB, propertyID string) ([]models.PropertyImage, error)

	// Favorite operations
	AddFavorite(db *gorm.DB, propertyID, userID string) error
	RemoveFavorite(db *gorm.DB, propertyID, userID string) error
	IsFavorite(db *gorm.DB, propertyID, userID string) (bool, error)
	CountFavorites(db *gorm.DB, propertyID string) (int64, error)
}

type PropertyRepositoryImpl struct{}

func NewPropertyRepository() PropertyRepository {
	return &PropertyRepositoryImpl{}
}

// Property operations

func (r *PropertyRepositoryImpl) CreateProperty(db *gorm.DB, property *models.Property) error {
	return db.Create(property).Error
}

func (r *PropertyRepositoryImpl) FindPropertyByID(db *gorm.DB, id string) (*models.Property, error) {
	var property models.Property
	err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Preload("Owner").Preload("Agent").Preload("ApprovedBy").
		First(&property, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPropertyNotFound
		}
		return nil, err
	}
	return &property, nil
}

// FindProperties runs the prepared feature chain and returns the page of
// matches together with the total count of rows matching the same filter
// and search predicates.
func (r *PropertyRepositoryImpl) FindProperties(db *gorm.DB, features *queryfeatures.Features) ([]models.Property, int64, error) {
	var total int64
	if err := features.CountQuery().Model(&models.Property{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []models.Property
	err := features.Query().Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).Find(&properties).Error
	return properties, total, err
}

func (r *PropertyRepositoryImpl) FindPropertiesByOwner(db *gorm.DB, ownerID string) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindPendingProperties(db *gorm.DB, category models.PropertyCategory) ([]models.Property, error) {
	query := db.Preload("Images").Preload("Owner").
		Where("status = ?", models.PropertyStatusPending)
	if category != "" {
		query = query.Where("category = ?", category)
	}

	var properties []models.Property
	err := query.Order("created_at ASC").Find(&properties).Error
	return properties, err
}

// FindListableProperties returns every approved and active property,
// optionally excluding one id. Only the columns the similarity ranker and the
// chat retrieval read are selected.
func (r *PropertyRepositoryImpl) FindListableProperties(db *gorm.DB, excludeID string) ([]models.Property, error) {
	query := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Select("id", "title", "description", "price", "city", "address", "type", "category", "area", "bedrooms", "status", "views", "created_at").
		Where("is_approved = ? AND is_active = ?", true, true)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var properties []models.Property
	err := query.Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) FindMostViewedProperties(db *gorm.DB, limit int) ([]models.Property, error) {
	var properties []models.Property
	err := db.Preload("Images", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("position ASC")
	}).
		Where("is_approved = ? AND is_active = ?", true, true).
		Order("views DESC").
		Limit(limit).
		Find(&properties).Error
	return properties, err
}

func (r *PropertyRepositoryImpl) UpdateProperty(db *gorm.DB, property *models.Property) error {
	result := db.Model(&models.Property{}).
		Where("id = ?", property.ID).
		Select("*").
		Omit("id", "created_at", "owner_id", "Images", "Owner", "Agent", "ApprovedBy").
		Updates(property)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) DeleteProperty(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Property{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPropertyNotFound
	}
	return nil
}

func (r *PropertyRepositoryImpl) IncrementViews(db *gorm.DB, id string) error {
	return db.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// Image operations

// ReplaceImages swaps the full image set of a property in one statement pair.
// Callers run this inside the transaction that updates the property row.
func (r *PropertyRepositoryImpl) ReplaceImages(db *gorm.DB, propertyID string, images []models.PropertyImage) error {
	if err := db.Where("property_id = ?", propertyID).Delete(&models.PropertyImage{}).Error; err != nil {
		return err
	}
	if len(images) == 0 {
		return nil
	}
	for i := range images {
		images[i].PropertyID = propertyID
		images[i].Position = i
	}
	return db.Create(&images).Error
}

func (r *PropertyRepositoryImpl) FindImagesByProperty(db *gorm.DB, propertyID string) ([]models.PropertyImage, error) {
	var images []models.PropertyImage
	err := db.Where("property_id = ?", propertyID).
		Order("position ASC").
		Find(&images).Error
	return images, err
}

// Favorite operations

// AddFavorite writes both sides of the relation, the property's favorite
// marker and the user's wishlist entry, and is a no-op when the pair already
// exists.
func (r *PropertyRepositoryImpl) AddFavorite(db *gorm.DB, propertyID, userID string) error {
	favorite := models.PropertyFavorite{PropertyID: propertyID, UserID: userID}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&favorite).Error; err != nil {
		return err
	}
	item := models.WishlistItem{UserID: userID, PropertyID: propertyID}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&item).Error
}

func (r *PropertyRepositoryImpl) RemoveFavorite(db *gorm.DB, propertyID, userID string) error {
	if err := db.Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&models.PropertyFavorite{}).Error; err != nil {
		return err
	}
	return db.Where("user_id = ? AND property_id = ?", userID, propertyID).
		Delete(&models.WishlistItem{}).Error
}

func (r *PropertyRepositoryImpl) IsFavorite(db *gorm.DB, propertyID, userID string) (bool, error) {
	var count int64
	err := db.Model(&models.PropertyFavorite{}).
		Where("property_id = ? AND user_id = ?", propertyID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *PropertyRepositoryImpl) CountFavorites(db *gorm.DB, propertyID string) (int64, error) {
	var count int64
	err := db.Model(&models.PropertyFavorite{}).
		Where("property_id = ?", propertyID).
		Count(&count).Error
	return count, err
}
