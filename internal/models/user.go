// Package models contains data structures for the application's domain models.
package models

import "time"

// User is the local record of an identity-provider account. Authentication
// itself happens upstream; Plume only stores what it needs to attribute
// content and subscriptions.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Username    string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	DisplayName string    `gorm:"size:150" json:"display_name,omitempty"`
	IsAdmin     bool      `gorm:"not null;default:false" json:"is_admin"`
	CreatedAt   time.Time `json:"created_at"`

	Posts []Post `gorm:"foreignKey:AuthorID" json:"posts,omitempty"`
}
