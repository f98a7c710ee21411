package repositories

import (
	"errors"

	"sakanly_backend/internal/models"

	"gorm.io/gorm"
)

var ErrTestimonialNotFound = errors.New("testimonial not found")

// TestimonialFilter narrows a listing; zero-valued fields are skipped.
type TestimonialFilter struct {
	Status     models.TestimonialStatus
	Type       models.TestimonialType
	PropertyID string
	AgencyID   string
}

type TestimonialRepository interface {
	CreateTestimonial(db *gorm.DB, testimonial *models.Testimonial) error
	FindTestimonialByID(db *gorm.DB, id string) (*models.Testimonial, error)
	FindTestimonials(db *gorm.DB, filter TestimonialFilter, limit, offset int) ([]models.Testimonial, int64, error)
	UpdateTestimonialStatus(db *gorm.DB, id string, status models.TestimonialStatus) error
	DeleteTestimonial(db *gorm.DB, id string) error
}

type TestimonialRepositoryImpl struct{}

func NewTestimonialRepository() TestimonialRepository {
	return &TestimonialRepositoryImpl{}
}

func (r *TestimonialRepositoryImpl) CreateTestimonial(db *gorm.DB, testimonial *models.Testimonial) error {
	return db.Create(testimonial).Error
}

func (r *TestimonialRepositoryImpl) FindTestimonialByID(db *gorm.DB, id string) (*models.Testimonial, error) {
	var testimonial models.Testimonial
	err := db.First(&testimonial, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTestimonialNotFound
		}
		return nil, err
	}
	return &testimonial, nil
}

func (r *TestimonialRepositoryImpl) FindTestimonials(db *gorm.DB, filter TestimonialFilter, limit, offset int) ([]models.Testimonial, int64, error) {
	query := db.Model(&models.Testimonial{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.PropertyID != "" {
		query = query.Where("property_id = ?", filter.PropertyID)
	}
	if filter.AgencyID != "" {
		query = query.Where("agency_id = ?", filter.AgencyID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var testimonials []models.Testimonial
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&testimonials).Error
	return testimonials, total, err
}

func (r *TestimonialRepositoryImpl) UpdateTestimonialStatus(db *gorm.DB, id string, status models.TestimonialStatus) error {
	result := db.Model(&models.Testimonial{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}

func (r *TestimonialRepositoryImpl) DeleteTestimonial(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.Testimonial{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTestimonialNotFound
	}
	return nil
}
