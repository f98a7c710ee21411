package services

import (
	"errors"

	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type TestimonialService interface {
	CreateTestimonial(db *gorm.DB, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error)
	GetTestimonials(db *gorm.DB, req *dto.ListTestimonialsRequest) (*dto.TestimonialListResponse, error)
	UpdateTestimonialStatus(db *gorm.DB, id string, req *dto.UpdateTestimonialStatusRequest) error
	DeleteTestimonial(db *gorm.DB, id string) error
}

type testimonialService struct {
	testimonialRepo repositories.TestimonialRepository
}

func NewTestimonialService(testimonialRepo repositories.TestimonialRepository) TestimonialService {
	return &testimonialService{testimonialRepo: testimonialRepo}
}

func (s *testimonialService) CreateTestimonial(db *gorm.DB, req *dto.CreateTestimonialRequest) (*dto.TestimonialResponse, error) {
	testimonial := &models.Testimonial{
		Name:     req.Name,
		Text:     req.Text,
		ImageURL: req.ImageURL,
		Role:     req.Role,
		Type:     models.TestimonialType(req.Type),
		Status:   models.TestimonialStatusPending,
	}
	switch testimonial.Type {
	case models.TestimonialTypeProperty:
		testimonial.PropertyID = req.PropertyID
	case models.TestimonialTypeAgency:
		testimonial.AgencyID = req.AgencyID
	}

	if err := s.testimonialRepo.CreateTestimonial(db, testimonial); err != nil {
		return nil, apperrors.InternalError("testimonial", err)
	}

	resp := dto.NewTestimonialResponse(testimonial)
	return &resp, nil
}

func (s *testimonialService) GetTestimonials(db *gorm.DB, req *dto.ListTestimonialsRequest) (*dto.TestimonialListResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit < 1 {
		limit = 10
	}

	filter := repositories.TestimonialFilter{
		Status:     models.TestimonialStatus(req.Status),
		Type:       models.TestimonialType(req.Type),
		PropertyID: req.PropertyID,
		AgencyID:   req.AgencyID,
	}
	testimonials, total, err := s.testimonialRepo.FindTestimonials(db, filter, limit, (page-1)*limit)
	if err != nil {
		return nil, apperrors.InternalError("testimonial", err)
	}

	return &dto.TestimonialListResponse{
		Testimonials: dto.NewTestimonialResponses(testimonials),
		Pagination:   dto.NewPagination(page, limit, total),
	}, nil
}

func (s *testimonialService) UpdateTestimonialStatus(db *gorm.DB, id string, req *dto.UpdateTestimonialStatusRequest) error {
	status := models.TestimonialStatus(req.Status)
	if status != models.TestimonialStatusApproved && status != models.TestimonialStatusRejected {
		return apperrors.ErrInvalidTestimonialStatus
	}

	if err := s.testimonialRepo.UpdateTestimonialStatus(db, id, status); err != nil {
		if errors.Is(err, repositories.ErrTestimonialNotFound) {
			return apperrors.ErrTestimonialNotFound
		}
		return apperrors.InternalError("testimonial", err)
	}
	return nil
}

func (s *testimonialService) DeleteTestimonial(db *gorm.DB, id string) error {
	if err := s.testimonialRepo.DeleteTestimonial(db, id); err != nil {
		if errors.Is(err, repositories.ErrTestimonialNotFound) {
			return apperrors.ErrTestimonialNotFound
		}
		return apperrors.InternalError("testimonial", err)
	}
	return nil
}
