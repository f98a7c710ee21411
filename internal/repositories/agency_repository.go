package repositories

import (
	"errors"

	"sakanly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAgencyNotFound = errors.New("agency not found")

type AgencyRepository interface {
	FindAgencies(db *gorm.DB) ([]models.Agency, error)
	FindAgencyByID(db *gorm.DB, id string) (*models.Agency, error)
}

type AgencyRepositoryImpl struct{}

func NewAgencyRepository() AgencyRepository {
	return &AgencyRepositoryImpl{}
}

func (r *AgencyRepositoryImpl) FindAgencies(db *gorm.DB) ([]models.Agency, error) {
	var agencies []models.Agency
	err := db.Select("id", "name", "description", "is_featured").
		Order("is_featured DESC, name ASC").
		Find(&agencies).Error
	return agencies, err
}

func (r *AgencyRepositoryImpl) FindAgencyByID(db *gorm.DB, id string) (*models.Agency, error) {
	var agency models.Agency
	err := db.First(&agency, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAgencyNotFound
		}
		return nil, err
	}
	return &agency, nil
}
