package models

import "time"

// MealPlan assigns a recipe (by catalog name) to a date slot.
type MealPlan struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	UserID     uint      `gorm:"index;not null" json:"-"`
	User       User      `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Date       string    `gorm:"size:10;not null" json:"date"`      // YYYY-MM-DD
	MealType   string    `gorm:"size:32;not null" json:"meal_type"` // breakfast, lunch, dinner
	RecipeName string    `gorm:"size:255;not null" json:"recipe_name"`
}
