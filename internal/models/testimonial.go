package models

// Testimonial is a visitor opinion attached either to a property or to an
// agency, depending on Type.
type Testimonial struct {
	BaseModel
	Name       string            `gorm:"not null" json:"name"`
	Text       string            `gorm:"not null" json:"text"`
	ImageURL   string            `json:"image,omitempty"`
	Role       string            `json:"role,omitempty"`
	Type       TestimonialType   `gorm:"type:varchar(20);not null;index" json:"type"`
	PropertyID *string           `gorm:"type:uuid;index" json:"propertyId,omitempty"`
	AgencyID   *string           `gorm:"type:uuid;index" json:"agencyId,omitempty"`
	Status     TestimonialStatus `gorm:"type:varchar(20);default:'pending';index" json:"status"`
}
