package models

import "time"

type User struct {
	BaseModel
	UserName     string   `gorm:"not null" json:"userName"`
	Email        string   `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"not null" json:"-"`
	PhoneNumber  string   `json:"phoneNumber,omitempty"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'user'" json:"role"`

	// Relations
	Wishlist   []WishlistItem `gorm:"foreignKey:UserID" json:"wishlist,omitempty"`
	Properties []Property     `gorm:"foreignKey:OwnerID" json:"-"`
}

// WishlistItem is the user-side membership of the favorites relation,
// mirrored by PropertyFavorite on the property side.
type WishlistItem struct {
	UserID     string    `gorm:"type:uuid;primaryKey" json:"userId"`
	PropertyID string    `gorm:"type:uuid;primaryKey" json:"propertyId"`
	AddedAt    time.Time `gorm:"autoCreateTime" json:"addedAt"`
}
