package models

import "time"

// InventoryItem is a perishable item owned by a user. Urgency and the
// day-delta are never stored here: they are derived views recomputed from
// ExpiryDate against now on every read.
type InventoryItem struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `gorm:"index" json:"-"`
	UserID     uint       `gorm:"index;not null" json:"-"`
	User       User       `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name       string     `gorm:"size:255;not null" json:"name"`
	Category   string     `gorm:"size:64;not null" json:"category"` // Fridge, Pantry, Freezer, Leftovers
	Quantity   string     `gorm:"size:64" json:"quantity"`
	Unit       string     `gorm:"size:32" json:"unit"`
	ExpiryDate *time.Time `gorm:"index" json:"expiry_date"`
	Barcode    string     `gorm:"size:64" json:"barcode,omitempty"`
	Brand      string     `gorm:"size:255" json:"brand,omitempty"`
	Image      string     `gorm:"type:text" json:"image,omitempty"` // base64 thumbnail from the client
	AddedDate  time.Time  `gorm:"not null" json:"added_date"`
}
