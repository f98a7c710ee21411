package models

type Agency struct {
	BaseModel
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	IsFeatured  bool   `gorm:"default:false" json:"isFeatured"`
	LogoURL     string `json:"logoUrl,omitempty"`
}
