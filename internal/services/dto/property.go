package dto

import (
	"time"

	"sakanly_backend/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreatePropertyRequest struct {
	Category    string  `form:"category" json:"category" validate:"required,oneof=sale rent student"`
	Title       string  `form:"title" json:"title" validate:"required,max=200"`
	Description string  `form:"description" json:"description" validate:"omitempty,max=5000"`
	Price       float64 `form:"price" json:"price" validate:"required,gt=0"`
	City        string  `form:"city" json:"city" validate:"required,max=100"`
	Address     string  `form:"address" json:"address" validate:"omitempty,max=300"`
	Latitude    float64 `form:"latitude" json:"latitude" validate:"omitempty,min=-90,max=90"`
	Longitude   float64 `form:"longitude" json:"longitude" validate:"omitempty,min=-180,max=180"`
	Type        string  `form:"type" json:"type" validate:"required,max=100"`
	Area        float64 `form:"area" json:"area" validate:"omitempty,gt=0"`
	Bedrooms    int     `form:"bedrooms" json:"bedrooms" validate:"omitempty,min=0,max=50"`

	RentPeriod     string `form:"rentPeriod" json:"rentPeriod" validate:"omitempty,oneof=monthly quarterly yearly"`
	Furnished      bool   `form:"furnished" json:"furnished"`
	University     string `form:"university" json:"university" validate:"omitempty,max=200"`
	BedsPerRoom    int    `form:"bedsPerRoom" json:"bedsPerRoom" validate:"omitempty,min=0,max=20"`
	PaymentOptions string `form:"paymentOptions" json:"paymentOptions" validate:"omitempty,max=200"`

	ContactName  string `form:"contactName" json:"contactName" validate:"omitempty,max=100"`
	ContactEmail string `form:"contactEmail" json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string `form:"contactPhone" json:"contactPhone" validate:"omitempty,max=30"`
}

type UpdatePropertyRequest struct {
	Title       *string  `form:"title" json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string  `form:"description" json:"description,omitempty" validate:"omitempty,max=5000"`
	Price       *float64 `form:"price" json:"price,omitempty" validate:"omitempty,gt=0"`
	City        *string  `form:"city" json:"city,omitempty" validate:"omitempty,max=100"`
	Address     *string  `form:"address" json:"address,omitempty" validate:"omitempty,max=300"`
	Latitude    *float64 `form:"latitude" json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `form:"longitude" json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	Type        *string  `form:"type" json:"type,omitempty" validate:"omitempty,max=100"`
	Area        *float64 `form:"area" json:"area,omitempty" validate:"omitempty,gt=0"`
	Bedrooms    *int     `form:"bedrooms" json:"bedrooms,omitempty" validate:"omitempty,min=0,max=50"`
	Status      *string  `form:"status" json:"status,omitempty" validate:"omitempty,oneof=pending available rented sold inactive"`

	RentPeriod     *string `form:"rentPeriod" json:"rentPeriod,omitempty" validate:"omitempty,oneof=monthly quarterly yearly"`
	Furnished      *bool   `form:"furnished" json:"furnished,omitempty"`
	University     *string `form:"university" json:"university,omitempty" validate:"omitempty,max=200"`
	BedsPerRoom    *int    `form:"bedsPerRoom" json:"bedsPerRoom,omitempty" validate:"omitempty,min=0,max=20"`
	PaymentOptions *string `form:"paymentOptions" json:"paymentOptions,omitempty" validate:"omitempty,max=200"`

	ContactName  *string `form:"contactName" json:"contactName,omitempty" validate:"omitempty,max=100"`
	ContactEmail *string `form:"contactEmail" json:"contactEmail,omitempty" validate:"omitempty,email"`
	ContactPhone *string `form:"contactPhone" json:"contactPhone,omitempty" validate:"omitempty,max=30"`

	// Images is the managed image list: the final ordering and main flags,
	// referencing stored images and fresh uploads by external id. Stored images
	// left off the list are removed. When absent, existing images are kept and
	// new uploads appended.
	Images []ManagedImage `json:"images,omitempty" validate:"omitempty,dive"`

	// ImagesToDelete lists external ids to purge from the image store and
	// drop from the property. New uploads are appended after reconciliation.
	ImagesToDelete []string `form:"imagesToDelete" json:"imagesToDelete,omitempty"`
}

// ManagedImage is one entry of the caller-managed image list.
type ManagedImage struct {
	ExternalID string `json:"externalId" validate:"required"`
	IsMain     bool   `json:"isMain"`
}

// ApprovePropertyRequest carries optional overrides; status defaults to
// available and both flags default to true.
type ApprovePropertyRequest struct {
	Status     string `json:"status" validate:"omitempty,oneof=available rented sold"`
	IsApproved *bool  `json:"isApproved,omitempty"`
	IsActive   *bool  `json:"isActive,omitempty"`
}

type DenyPropertyRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=1000"`
}

// UploadedImage is a file already persisted to the image store.
type UploadedImage struct {
	ExternalID string
	URL        string
}

// ======================
// Response DTOs
// ======================

type PropertyImageResponse struct {
	ExternalID string `json:"externalId"`
	URL        string `json:"url"`
	IsMain     bool   `json:"isMain"`
}

type PropertyResponse struct {
	ID          string  `json:"id"`
	Category    string  `json:"category"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	City        string  `json:"city"`
	Address     string  `json:"address,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Type        string  `json:"type"`
	Area        float64 `json:"area,omitempty"`
	Bedrooms    int     `json:"bedrooms,omitempty"`

	RentPeriod     string `json:"rentPeriod,omitempty"`
	Furnished      bool   `json:"furnished,omitempty"`
	University     string `json:"university,omitempty"`
	BedsPerRoom    int    `json:"bedsPerRoom,omitempty"`
	PaymentOptions string `json:"paymentOptions,omitempty"`

	Status     string `json:"status"`
	IsApproved bool   `json:"isApproved"`
	IsActive   bool   `json:"isActive"`
	Views      int64  `json:"views"`

	OwnerID string  `json:"ownerId"`
	AgentID *string `json:"agentId,omitempty"`

	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`

	Images    []PropertyImageResponse `json:"images"`
	CreatedAt time.Time               `json:"createdAt"`
	UpdatedAt time.Time               `json:"updatedAt"`
}

// PropertyCardResponse is the compact shape used by sliders and rails.
// StatusLabel carries the localized status text.
type PropertyCardResponse struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Price        float64  `json:"price"`
	City         string   `json:"city"`
	Type         string   `json:"type"`
	Category     string   `json:"category"`
	StatusLabel  string   `json:"statusLabel"`
	Views        int64    `json:"views"`
	MainImage    string   `json:"mainImage,omitempty"`
	SliderImages []string `json:"sliderImages,omitempty"`
}

type SimilarPropertyResponse struct {
	Property PropertyResponse `json:"property"`
	Score    int              `json:"score"`
}

type FavoriteStatusResponse struct {
	PropertyID string `json:"propertyId"`
	IsFavorite bool   `json:"isFavorite"`
}

type PropertyListResponse struct {
	Properties []PropertyResponse `json:"properties"`
	Pagination Pagination         `json:"pagination"`
}

// ======================
// Pagination
// ======================

type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalDocs    int64 `json:"totalDocs"`
	ItemsPerPage int   `json:"itemsPerPage"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

func NewPagination(page, limit int, total int64) Pagination {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalDocs:    total,
		ItemsPerPage: limit,
		HasNext:      page < totalPages,
		HasPrev:      page > 1,
	}
}

// ======================
// Mapping helpers
// ======================

func NewPropertyResponse(p *models.Property) PropertyResponse {
	images := make([]PropertyImageResponse, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, PropertyImageResponse{
			ExternalID: img.ExternalID,
			URL:        img.URL,
			IsMain:     img.IsMain,
		})
	}
	return PropertyResponse{
		ID:             p.ID,
		Category:       string(p.Category),
		Title:          p.Title,
		Description:    p.Description,
		Price:          p.Price,
		City:           p.City,
		Address:        p.Address,
		Latitude:       p.Latitude,
		Longitude:      p.Longitude,
		Type:           p.Type,
		Area:           p.Area,
		Bedrooms:       p.Bedrooms,
		RentPeriod:     p.RentPeriod,
		Furnished:      p.Furnished,
		University:     p.University,
		BedsPerRoom:    p.BedsPerRoom,
		PaymentOptions: p.PaymentOptions,
		Status:         string(p.Status),
		IsApproved:     p.IsApproved,
		IsActive:       p.IsActive,
		Views:          p.Views,
		OwnerID:        p.OwnerID,
		AgentID:        p.AgentID,
		ContactName:    p.ContactName,
		ContactEmail:   p.ContactEmail,
		ContactPhone:   p.ContactPhone,
		Images:         images,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func NewPropertyResponses(properties []models.Property) []PropertyResponse {
	out := make([]PropertyResponse, 0, len(properties))
	for i := range properties {
		out = append(out, NewPropertyResponse(&properties[i]))
	}
	return out
}

func NewPropertyCardResponse(p *models.Property) PropertyCardResponse {
	card := PropertyCardResponse{
		ID:          p.ID,
		Title:       p.Title,
		Price:       p.Price,
		City:        p.City,
		Type:        p.Type,
		Category:    string(p.Category),
		StatusLabel: models.TranslateStatus(p.Status),
		Views:       p.Views,
	}
	for _, img := range p.Images {
		card.SliderImages = append(card.SliderImages, img.URL)
	}
	if main := p.MainImage(); main != nil {
		card.MainImage = main.URL
	} else if len(card.SliderImages) > 0 {
		card.MainImage = card.SliderImages[0]
	}
	return card
}
