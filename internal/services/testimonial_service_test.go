package services

import (
	"testing"

	"sakanly_backend/internal/models"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestimonialFixture(t *testing.T) (*gorm.DB, TestimonialService) {
	t.Helper()
	db := newTestDB(t)
	return db, NewTestimonialService(repositories.NewTestimonialRepository())
}

func TestCreateTestimonialStartsPending(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	propertyID := "33333333-3333-3333-3333-333333333333"
	resp, err := svc.CreateTestimonial(db, &dto.CreateTestimonialRequest{
		Name:       "منى",
		Text:       "تجربة ممتازة مع الموقع",
		Type:       "property",
		PropertyID: &propertyID,
	})
	require.NoError(t, err)

	assert.Equal(t, string(models.TestimonialStatusPending), resp.Status)
	require.NotNil(t, resp.PropertyID)
	assert.Equal(t, propertyID, *resp.PropertyID)
	assert.Nil(t, resp.AgencyID)
}

func TestCreateTestimonialAgencyType(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	agencyID := "44444444-4444-4444-4444-444444444444"
	propertyID := "33333333-3333-3333-3333-333333333333"
	resp, err := svc.CreateTestimonial(db, &dto.CreateTestimonialRequest{
		Name:     "كريم",
		Text:     "وكالة محترمة",
		Type:     "agency",
		AgencyID: &agencyID,
		// the property id is ignored for agency testimonials
		PropertyID: &propertyID,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.AgencyID)
	assert.Equal(t, agencyID, *resp.AgencyID)
	assert.Nil(t, resp.PropertyID)
}

func TestGetTestimonialsFiltersByStatus(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	seed := []models.Testimonial{
		{Name: "أ", Text: "نص", Type: models.TestimonialTypeProperty, Status: models.TestimonialStatusApproved},
		{Name: "ب", Text: "نص", Type: models.TestimonialTypeProperty, Status: models.TestimonialStatusApproved},
		{Name: "ج", Text: "نص", Type: models.TestimonialTypeAgency, Status: models.TestimonialStatusPending},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	approved, err := svc.GetTestimonials(db, &dto.ListTestimonialsRequest{Status: "approved"})
	require.NoError(t, err)
	assert.Len(t, approved.Testimonials, 2)
	assert.Equal(t, int64(2), approved.Pagination.TotalDocs)

	all, err := svc.GetTestimonials(db, &dto.ListTestimonialsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Testimonials, 3)
	assert.Equal(t, 1, all.Pagination.CurrentPage)
	assert.Equal(t, 10, all.Pagination.ItemsPerPage)

	agencyOnly, err := svc.GetTestimonials(db, &dto.ListTestimonialsRequest{Type: "agency"})
	require.NoError(t, err)
	require.Len(t, agencyOnly.Testimonials, 1)
	assert.Equal(t, "ج", agencyOnly.Testimonials[0].Name)
}

func TestGetTestimonialsFiltersByAssociation(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	propertyID := "33333333-3333-3333-3333-333333333333"
	otherID := "44444444-4444-4444-4444-444444444444"
	seed := []models.Testimonial{
		{Name: "أ", Text: "نص", Type: models.TestimonialTypeProperty, PropertyID: &propertyID},
		{Name: "ب", Text: "نص", Type: models.TestimonialTypeProperty, PropertyID: &otherID},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	matched, err := svc.GetTestimonials(db, &dto.ListTestimonialsRequest{PropertyID: propertyID})
	require.NoError(t, err)
	require.Len(t, matched.Testimonials, 1)
	assert.Equal(t, "أ", matched.Testimonials[0].Name)
}

func TestGetTestimonialsPagination(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	for i := 0; i < 5; i++ {
		tm := models.Testimonial{Name: "زائر", Text: "نص", Type: models.TestimonialTypeProperty, Status: models.TestimonialStatusApproved}
		require.NoError(t, db.Create(&tm).Error)
	}

	page, err := svc.GetTestimonials(db, &dto.ListTestimonialsRequest{Page: 2, Limit: 2})
	require.NoError(t, err)

	assert.Len(t, page.Testimonials, 2)
	assert.Equal(t, int64(5), page.Pagination.TotalDocs)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrev)
}

func TestUpdateTestimonialStatus(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	tm := models.Testimonial{Name: "أ", Text: "نص", Type: models.TestimonialTypeProperty}
	require.NoError(t, db.Create(&tm).Error)

	require.NoError(t, svc.UpdateTestimonialStatus(db, tm.ID, &dto.UpdateTestimonialStatusRequest{Status: "approved"}))

	var stored models.Testimonial
	require.NoError(t, db.First(&stored, "id = ?", tm.ID).Error)
	assert.Equal(t, models.TestimonialStatusApproved, stored.Status)
}

func TestUpdateTestimonialStatusRejectsPending(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	tm := models.Testimonial{Name: "أ", Text: "نص", Type: models.TestimonialTypeProperty}
	require.NoError(t, db.Create(&tm).Error)

	err := svc.UpdateTestimonialStatus(db, tm.ID, &dto.UpdateTestimonialStatusRequest{Status: "pending"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidTestimonialStatus)
}

func TestUpdateTestimonialStatusNotFound(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	err := svc.UpdateTestimonialStatus(db, "55555555-5555-5555-5555-555555555555", &dto.UpdateTestimonialStatusRequest{Status: "rejected"})
	assert.ErrorIs(t, err, apperrors.ErrTestimonialNotFound)
}

func TestDeleteTestimonial(t *testing.T) {
	db, svc := newTestimonialFixture(t)

	tm := models.Testimonial{Name: "أ", Text: "نص", Type: models.TestimonialTypeProperty}
	require.NoError(t, db.Create(&tm).Error)

	require.NoError(t, svc.DeleteTestimonial(db, tm.ID))

	var count int64
	require.NoError(t, db.Model(&models.Testimonial{}).Where("id = ?", tm.ID).Count(&count).Error)
	assert.Zero(t, count)

	assert.ErrorIs(t, svc.DeleteTestimonial(db, tm.ID), apperrors.ErrTestimonialNotFound)
}
