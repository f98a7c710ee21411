package services

import (
	"context"
	"errors"
	"math"
	"net/url"
	"sort"
	"time"

	"sakanly_backend/internal/auth"
	"sakanly_backend/internal/cache"
	"sakanly_backend/internal/email"
	"sakanly_backend/internal/logger"
	"sakanly_backend/internal/models"
	"sakanly_backend/internal/queryfeatures"
	"sakanly_backend/internal/repositories"
	"sakanly_backend/internal/services/dto"
	"sakanly_backend/internal/storage"
	"sakanly_backend/pkg/apperrors"

	"gorm.io/gorm"
)

const (
	mostViewedLimit    = 10
	mostViewedCacheKey = "properties:most-viewed"
	mostViewedCacheTTL = 60 * time.Second

	similarLimit = 4
	// price band for the similarity ranker
	similarPriceTolerance = 0.20
)

type PropertyService interface {
	// Listing operations
	GetAllProperties(db *gorm.DB, params url.Values) (*dto.PropertyListResponse, error)
	SearchProperties(db *gorm.DB, params url.Values) (*dto.PropertyListResponse, error)
	GetPropertyDetails(db *gorm.DB, id string) (*dto.PropertyResponse, error)
	GetMostViewedProperties(ctx context.Context, db *gorm.DB) ([]dto.PropertyCardResponse, error)
	GetUserProperties(db *gorm.DB, ownerID string) ([]dto.PropertyResponse, error)
	GetSimilarProperties(db *gorm.DB, id string) ([]dto.SimilarPropertyResponse, error)

	// Moderation operations
	GetPendingProperties(db *gorm.DB, category string) ([]dto.PropertyResponse, error)
	AddProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, req *dto.CreatePropertyRequest, uploads []dto.UploadedImage) (*dto.PropertyResponse, error)
	UpdateProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, id string, req *dto.UpdatePropertyRequest, uploads []dto.UploadedImage) (*dto.PropertyResponse, error)
	DeleteProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, id string) error
	ApproveProperty(ctx context.Context, db *gorm.DB, moderatorID, id string, req *dto.ApprovePropertyRequest) (*dto.PropertyResponse, error)
	DenyProperty(ctx context.Context, db *gorm.DB, moderatorID, id, reason string) error
}

type propertyService struct {
	propertyRepo repositories.PropertyRepository
	store        storage.Storage
	mailer       email.Provider
	cache        *cache.Cache
	clientURL    string
}

func NewPropertyService(
	propertyRepo repositories.PropertyRepository,
	store storage.Storage,
	mailer email.Provider,
	c *cache.Cache,
	clientURL string,
) PropertyService {
	return &propertyService{
		propertyRepo: propertyRepo,
		store:        store,
		mailer:       mailer,
		cache:        c,
		clientURL:    clientURL,
	}
}

// ---------------- Listing Operations ----------------

func (s *propertyService) GetAllProperties(db *gorm.DB, params url.Values) (*dto.PropertyListResponse, error) {
	features := queryfeatures.New(s.listableScope(db), params).
		Filter().
		Sort().
		LimitFields().
		Paginate()
	return s.runListQuery(db, features)
}

func (s *propertyService) SearchProperties(db *gorm.DB, params url.Values) (*dto.PropertyListResponse, error) {
	features := queryfeatures.New(s.listableScope(db), params).
		Filter().
		Search().
		Sort().
		LimitFields().
		Paginate()
	return s.runListQuery(db, features)
}

func (s *propertyService) runListQuery(db *gorm.DB, features *queryfeatures.Features) (*dto.PropertyListResponse, error) {
	properties, total, err := s.propertyRepo.FindProperties(db, features)
	if err != nil {
		return nil, apperrors.InternalError("property", err)
	}
	return &dto.PropertyListResponse{
		Properties: dto.NewPropertyResponses(properties),
		Pagination: dto.NewPagination(features.Page(), features.Limit(), total),
	}, nil
}

func (s *propertyService) GetPropertyDetails(db *gorm.DB, id string) (*dto.PropertyResponse, error) {
	property, err := s.findProperty(db, id)
	if err != nil {
		return nil, err
	}

	if err := s.propertyRepo.IncrementViews(db, id); err != nil {
		logger.WithError(err).Warn("failed to increment property views", "property_id", id)
	} else {
		property.Views++
	}

	resp := dto.NewPropertyResponse(property)
	return &resp, nil
}

func (s *propertyService) GetMostViewedProperties(ctx context.Context, db *gorm.DB) ([]dto.PropertyCardResponse, error) {
	var cards []dto.PropertyCardResponse
	if hit, err := s.cache.Get(ctx, mostViewedCacheKey, &cards); err != nil {
		logger.WithError(err).Warn("most-viewed cache read failed")
	} else if hit {
		return cards, nil
	}

	properties, err := s.propertyRepo.FindMostViewedProperties(db, mostViewedLimit)
	if err != nil {
		return nil, apperrors.InternalError("property", err)
	}

	cards = make([]dto.PropertyCardResponse, 0, len(properties))
	for i := range properties {
		cards = append(cards, dto.NewPropertyCardResponse(&properties[i]))
	}

	if err := s.cache.Set(ctx, mostViewedCacheKey, cards, mostViewedCacheTTL); err != nil {
		logger.WithError(err).Warn("most-viewed cache write failed")
	}
	return cards, nil
}

func (s *propertyService) GetUserProperties(db *gorm.DB, ownerID string) ([]dto.PropertyResponse, error) {
	properties, err := s.propertyRepo.FindPropertiesByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError("property", err)
	}
	return dto.NewPropertyResponses(properties), nil
}

func (s *propertyService) GetSimilarProperties(db *gorm.DB, id string) ([]dto.SimilarPropertyResponse, error) {
	reference, err := s.findProperty(db, id)
	if err != nil {
		return nil, err
	}

	candidates, err := s.propertyRepo.FindListableProperties(db, id)
	if err != nil {
		return nil, apperrors.InternalError("property", err)
	}

	scored := rankSimilar(reference, candidates, similarLimit)
	out := make([]dto.SimilarPropertyResponse, 0, len(scored))
	for _, match := range scored {
		out = append(out, dto.SimilarPropertyResponse{
			Property: dto.NewPropertyResponse(match.property),
			Score:    match.score,
		})
	}
	return out, nil
}

// ---------------- Moderation Operations ----------------

func (s *propertyService) GetPendingProperties(db *gorm.DB, category string) ([]dto.PropertyResponse, error) {
	cat := models.PropertyCategory(category)
	if category != "" && !cat.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	properties, err := s.propertyRepo.FindPendingProperties(db, cat)
	if err != nil {
		return nil, apperrors.InternalError("property", err)
	}
	return dto.NewPropertyResponses(properties), nil
}

func (s *propertyService) AddProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, req *dto.CreatePropertyRequest, uploads []dto.UploadedImage) (*dto.PropertyResponse, error) {
	category := models.PropertyCategory(req.Category)
	if !category.Valid() {
		return nil, apperrors.ErrInvalidCategory
	}

	property := &models.Property{
		Category:       category,
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		City:           req.City,
		Address:        req.Address,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Type:           req.Type,
		Area:           req.Area,
		Bedrooms:       req.Bedrooms,
		RentPeriod:     req.RentPeriod,
		Furnished:      req.Furnished,
		University:     req.University,
		BedsPerRoom:    req.BedsPerRoom,
		PaymentOptions: req.PaymentOptions,
		OwnerID:        caller.ID,
		ContactName:    req.ContactName,
		ContactEmail:   req.ContactEmail,
		ContactPhone:   req.ContactPhone,
	}

	// Submissions from regular users wait for moderation; privileged roles
	// publish immediately with a self-approval stamp.
	if caller.IsAdmin() || caller.IsAgent() {
		now := time.Now()
		moderatorID := caller.ID
		property.Status = models.PropertyStatusAvailable
		property.IsApproved = true
		property.IsActive = true
		property.ApprovedByID = &moderatorID
		property.ApprovedAt = &now
		if caller.IsAgent() {
			agentID := caller.ID
			property.AgentID = &agentID
		}
	} else {
		property.Status = models.PropertyStatusPending
	}

	property.Images = buildImages(uploads)

	if err := s.propertyRepo.CreateProperty(db, property); err != nil {
		s.cleanupUploads(ctx, uploads)
		return nil, apperrors.InternalError("property", err)
	}

	resp := dto.NewPropertyResponse(property)
	return &resp, nil
}

func (s *propertyService) UpdateProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, id string, req *dto.UpdatePropertyRequest, uploads []dto.UploadedImage) (*dto.PropertyResponse, error) {
	property, err := s.findProperty(db, id)
	if err != nil {
		s.cleanupUploads(ctx, uploads)
		return nil, err
	}
	if !auth.CanModifyProperty(caller, property) {
		s.cleanupUploads(ctx, uploads)
		return nil, apperrors.ErrInsufficientPermissions
	}

	applyPropertyUpdate(property, req)

	images, removed := reconcileImages(property.Images, req.ImagesToDelete, req.Images, uploads)
	if len(removed) > 0 {
		if err := s.store.DeleteMany(ctx, removed); err != nil {
			logger.WithError(err).Warn("failed to delete replaced property images", "property_id", id)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.propertyRepo.UpdateProperty(tx, property); err != nil {
			return err
		}
		return s.propertyRepo.ReplaceImages(tx, id, images)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.InternalError("property", err)
	}

	property.Images = images
	resp := dto.NewPropertyResponse(property)
	return &resp, nil
}

func (s *propertyService) DeleteProperty(ctx context.Context, db *gorm.DB, caller auth.Caller, id string) error {
	property, err := s.findProperty(db, id)
	if err != nil {
		return err
	}
	if !auth.CanModifyProperty(caller, property) {
		return apperrors.ErrInsufficientPermissions
	}

	s.deleteStoredImages(ctx, property.Images)

	if err := s.propertyRepo.DeleteProperty(db, id); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		return apperrors.InternalError("property", err)
	}
	return nil
}

func (s *propertyService) ApproveProperty(ctx context.Context, db *gorm.DB, moderatorID, id string, req *dto.ApprovePropertyRequest) (*dto.PropertyResponse, error) {
	property, err := s.findProperty(db, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	property.Status = models.PropertyStatusAvailable
	property.IsApproved = true
	property.IsActive = true
	if req != nil {
		if req.Status != "" {
			property.Status = models.PropertyStatus(req.Status)
		}
		if req.IsApproved != nil {
			property.IsApproved = *req.IsApproved
		}
		if req.IsActive != nil {
			property.IsActive = *req.IsActive
		}
	}
	property.ApprovedByID = &moderatorID
	property.ApprovedAt = &now

	if err := s.propertyRepo.UpdateProperty(db, property); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.InternalError("property", err)
	}

	s.sendModerationEmail(ctx, property, email.SubjectPropertyApproved, "")

	resp := dto.NewPropertyResponse(property)
	return &resp, nil
}

func (s *propertyService) DenyProperty(ctx context.Context, db *gorm.DB, moderatorID, id, reason string) error {
	property, err := s.findProperty(db, id)
	if err != nil {
		return err
	}

	// The notification goes out before the row disappears; a failed send is
	// logged and the denial proceeds.
	s.sendModerationEmail(ctx, property, email.SubjectPropertyDenied, reason)

	s.deleteStoredImages(ctx, property.Images)

	if err := s.propertyRepo.DeleteProperty(db, id); err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return apperrors.ErrPropertyNotFound
		}
		return apperrors.InternalError("property", err)
	}
	return nil
}

// ---------------- Helpers ----------------

func (s *propertyService) listableScope(db *gorm.DB) *gorm.DB {
	return db.Model(&models.Property{}).
		Where("is_approved = ? AND is_active = ?", true, true)
}

func (s *propertyService) findProperty(db *gorm.DB, id string) (*models.Property, error) {
	property, err := s.propertyRepo.FindPropertyByID(db, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPropertyNotFound) {
			return nil, apperrors.ErrPropertyNotFound
		}
		return nil, apperrors.InternalError("property", err)
	}
	return property, nil
}

func (s *propertyService) sendModerationEmail(ctx context.Context, property *models.Property, subject, reason string) {
	if property.ContactEmail == "" {
		return
	}

	data := email.ModerationData{
		ContactName:   property.ContactName,
		PropertyTitle: property.Title,
		Reason:        reason,
		ClientURL:     s.clientURL,
	}

	var (
		body string
		err  error
	)
	if subject == email.SubjectPropertyApproved {
		body, err = email.RenderApproved(data)
	} else {
		body, err = email.RenderDenied(data)
	}
	if err != nil {
		logger.CtxWithError(ctx, "failed to render moderation email", err, "property_id", property.ID)
		return
	}

	msg := &email.Message{To: property.ContactEmail, Subject: subject, HTML: body}
	if err := s.mailer.Send(msg); err != nil {
		logger.CtxWithError(ctx, "failed to send moderation email", err,
			"property_id", property.ID, "to", property.ContactEmail)
	}
}

func (s *propertyService) deleteStoredImages(ctx context.Context, images []models.PropertyImage) {
	if len(images) == 0 {
		return
	}
	ids := make([]string, 0, len(images))
	for _, img := range images {
		ids = append(ids, img.ExternalID)
	}
	if err := s.store.DeleteMany(ctx, ids); err != nil {
		logger.WithError(err).Warn("failed to delete stored property images")
	}
}

func (s *propertyService) cleanupUploads(ctx context.Context, uploads []dto.UploadedImage) {
	if len(uploads) == 0 {
		return
	}
	ids := make([]string, 0, len(uploads))
	for _, upload := range uploads {
		ids = append(ids, upload.ExternalID)
	}
	if err := s.store.DeleteMany(ctx, ids); err != nil {
		logger.WithError(err).Warn("failed to clean up orphaned uploads")
	}
}

func buildImages(uploads []dto.UploadedImage) []models.PropertyImage {
	images := make([]models.PropertyImage, 0, len(uploads))
	for i, upload := range uploads {
		images = append(images, models.PropertyImage{
			ExternalID: upload.ExternalID,
			URL:        upload.URL,
			IsMain:     i == 0,
			Position:   i,
		})
	}
	return images
}

// reconcileImages merges the caller-managed list, the requested deletions and
// the new uploads into the final image set, guaranteeing exactly one main
// image. It returns that set and the external ids that must be purged from
// the store.
//
// With a managed list, each entry resolves against the fresh uploads first and
// the stored images second (backfilling the stored URL); stored images left
// off the list are removed and unreferenced uploads are appended. Without one,
// the existing images are kept and uploads appended.
func reconcileImages(existing []models.PropertyImage, toDelete []string, managed []dto.ManagedImage, uploads []dto.UploadedImage) ([]models.PropertyImage, []string) {
	deleteSet := make(map[string]bool, len(toDelete))
	for _, id := range toDelete {
		deleteSet[id] = true
	}

	var kept []models.PropertyImage
	var removed []string
	referenced := make(map[string]bool)

	if len(managed) > 0 {
		stored := make(map[string]models.PropertyImage, len(existing))
		for _, img := range existing {
			stored[img.ExternalID] = img
		}
		fresh := make(map[string]dto.UploadedImage, len(uploads))
		for _, upload := range uploads {
			fresh[upload.ExternalID] = upload
		}

		for _, entry := range managed {
			if deleteSet[entry.ExternalID] || referenced[entry.ExternalID] {
				continue
			}
			if upload, ok := fresh[entry.ExternalID]; ok {
				kept = append(kept, models.PropertyImage{
					ExternalID: upload.ExternalID,
					URL:        upload.URL,
					IsMain:     entry.IsMain,
				})
				referenced[entry.ExternalID] = true
				continue
			}
			if img, ok := stored[entry.ExternalID]; ok {
				img.IsMain = entry.IsMain
				kept = append(kept, img)
				referenced[entry.ExternalID] = true
			}
			// unknown ids are dropped
		}

		for _, img := range existing {
			if !referenced[img.ExternalID] {
				removed = append(removed, img.ExternalID)
			}
		}
	} else {
		for _, img := range existing {
			if deleteSet[img.ExternalID] {
				removed = append(removed, img.ExternalID)
				continue
			}
			kept = append(kept, img)
			referenced[img.ExternalID] = true
		}
	}

	for _, upload := range uploads {
		if referenced[upload.ExternalID] {
			continue
		}
		kept = append(kept, models.PropertyImage{
			ExternalID: upload.ExternalID,
			URL:        upload.URL,
		})
	}

	hasMain := false
	for i := range kept {
		kept[i].Position = i
		if kept[i].IsMain {
			if hasMain {
				kept[i].IsMain = false
			}
			hasMain = true
		}
	}
	if !hasMain && len(kept) > 0 {
		kept[0].IsMain = true
	}
	return kept, removed
}

func applyPropertyUpdate(property *models.Property, req *dto.UpdatePropertyRequest) {
	if req.Title != nil {
		property.Title = *req.Title
	}
	if req.Description != nil {
		property.Description = *req.Description
	}
	if req.Price != nil {
		property.Price = *req.Price
	}
	if req.City != nil {
		property.City = *req.City
	}
	if req.Address != nil {
		property.Address = *req.Address
	}
	if req.Latitude != nil {
		property.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		property.Longitude = *req.Longitude
	}
	if req.Type != nil {
		property.Type = *req.Type
	}
	if req.Area != nil {
		property.Area = *req.Area
	}
	if req.Bedrooms != nil {
		property.Bedrooms = *req.Bedrooms
	}
	if req.Status != nil {
		property.Status = models.PropertyStatus(*req.Status)
	}
	if req.RentPeriod != nil {
		property.RentPeriod = *req.RentPeriod
	}
	if req.Furnished != nil {
		property.Furnished = *req.Furnished
	}
	if req.University != nil {
		property.University = *req.University
	}
	if req.BedsPerRoom != nil {
		property.BedsPerRoom = *req.BedsPerRoom
	}
	if req.PaymentOptions != nil {
		property.PaymentOptions = *req.PaymentOptions
	}
	if req.ContactName != nil {
		property.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		property.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		property.ContactPhone = *req.ContactPhone
	}
}

// ---------------- Similarity Ranker ----------------

type similarMatch struct {
	property *models.Property
	score    int
}

// similarityScore counts the matching attributes between the reference and a
// candidate: same city, same type, price within the tolerance band, same area
// and same bedroom count each contribute one point.
func similarityScore(reference, candidate *models.Property) int {
	score := 0
	if candidate.City == reference.City {
		score++
	}
	if candidate.Type == reference.Type {
		score++
	}
	if reference.Price > 0 && math.Abs(candidate.Price-reference.Price) <= reference.Price*similarPriceTolerance {
		score++
	}
	if candidate.Area == reference.Area {
		score++
	}
	if candidate.Bedrooms == reference.Bedrooms {
		score++
	}
	return score
}

// rankSimilar keeps candidates with a positive score, ordered by score
// descending. Ties preserve candidate order, so the sort must be stable.
func rankSimilar(reference *models.Property, candidates []models.Property, limit int) []similarMatch {
	matches := make([]similarMatch, 0, len(candidates))
	for i := range candidates {
		if score := similarityScore(reference, &candidates[i]); score > 0 {
			matches = append(matches, similarMatch{property: &candidates[i], score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
