package models

import "time"

// ShoppingItem is one shopping-list line. IsDuplicate is set at insert time
// when the user's inventory already holds an item with the same name.
type ShoppingItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	UserID      uint      `gorm:"index;not null" json:"-"`
	User        User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Quantity    string    `gorm:"size:64" json:"quantity"`
	Unit        string    `gorm:"size:32" json:"unit"`
	Priority    string    `gorm:"size:32" json:"priority"` // must-buy, optional
	IsDuplicate bool      `gorm:"default:false" json:"is_duplicate"`
	Notes       string    `gorm:"size:255" json:"notes,omitempty"`
	Checked     bool      `gorm:"default:false" json:"checked"`
}
