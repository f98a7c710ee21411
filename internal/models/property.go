package models

import "time"

// Property is a single-table model for all three categories; the category
// column discriminates and the category-specific fields are nullable.
type Property struct {
	BaseModel
	Category    PropertyCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	Title       string           `gorm:"not null" json:"title"`
	Description string           `json:"description"`
	Price       float64          `gorm:"not null;index" json:"price"`

	// Location
	City      string  `gorm:"index" json:"city"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Type is free text and already localized (e.g. شقة, فيلا).
	Type     string `gorm:"index" json:"type"`
	Area     float64 `json:"area"`
	Bedrooms int     `json:"bedrooms"`

	// Category-specific optional fields.
	RentPeriod     string `json:"rentPeriod,omitempty"`     // rent
	Furnished      bool   `json:"furnished,omitempty"`      // rent/student
	University     string `json:"university,omitempty"`     // student
	BedsPerRoom    int    `json:"bedsPerRoom,omitempty"`    // student
	PaymentOptions string `json:"paymentOptions,omitempty"` // sale

	Status     PropertyStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
	IsApproved bool           `gorm:"default:false;index" json:"isApproved"`
	IsActive   bool           `gorm:"default:false;index" json:"isActive"`
	Views      int64          `gorm:"default:0" json:"views"`

	OwnerID      string     `gorm:"type:uuid;not null;index" json:"ownerId"`
	AgentID      *string    `gorm:"type:uuid;index" json:"agentId,omitempty"`
	ApprovedByID *string    `gorm:"type:uuid" json:"approvedById,omitempty"`
	ApprovedAt   *time.Time `json:"approvedAt,omitempty"`

	// Contact address for moderation notifications.
	ContactName  string `json:"contactName,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty"`
	ContactPhone string `json:"contactPhone,omitempty"`

	Images []PropertyImage `gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE" json:"images"`

	// Relations
	Owner      *User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Agent      *User `gorm:"foreignKey:AgentID" json:"agent,omitempty"`
	ApprovedBy *User `gorm:"foreignKey:ApprovedByID" json:"approvedBy,omitempty"`
}

// Listable reports whether the property may appear on public surfaces.
func (p *Property) Listable() bool {
	return p.IsApproved && p.IsActive
}

// MainImage returns the image flagged as main, or nil.
func (p *Property) MainImage() *PropertyImage {
	for i := range p.Images {
		if p.Images[i].IsMain {
			return &p.Images[i]
		}
	}
	return nil
}

// PropertyImage is an ordered media entry stored in the external image store.
// ExternalID is the store identifier used for deletion.
type PropertyImage struct {
	ID         uint   `gorm:"primaryKey" json:"-"`
	PropertyID string `gorm:"type:uuid;not null;index" json:"-"`
	ExternalID string `gorm:"not null" json:"externalId"`
	URL        string `gorm:"not null" json:"url"`
	IsMain     bool   `gorm:"default:false" json:"isMain"`
	Position   int    `gorm:"default:0" json:"-"`
}

// PropertyFavorite is the property-side membership of the favorites relation,
// mirrored by the user's wishlist. Composite key makes writes idempotent.
type PropertyFavorite struct {
	PropertyID string    `gorm:"type:uuid;primaryKey" json:"propertyId"`
	UserID     string    `gorm:"type:uuid;primaryKey" json:"userId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}
