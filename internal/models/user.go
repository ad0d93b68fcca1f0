package models

import "time"

// User represents a store account. Shopkeepers may manage the catalog.
type User struct {
	ID           string    `json:"id" bson:"_id" gorm:"primaryKey;type:varchar(36)"`
	Email        string    `json:"email" bson:"email" gorm:"uniqueIndex;type:varchar(255);not null"`
	Username     string    `json:"username,omitempty" bson:"username,omitempty" gorm:"type:varchar(100)"`
	Password     string    `json:"-" bson:"password" gorm:"type:varchar(255);not null"` // bcrypt hash
	IsShopkeeper bool      `json:"isShopkeeper" bson:"isShopkeeper"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// UserSummary is the admin listing projection of a user.
type UserSummary struct {
	ID           string `json:"id" bson:"_id"`
	Email        string `json:"email" bson:"email"`
	IsShopkeeper bool   `json:"isShopkeeper" bson:"isShopkeeper"`
}
