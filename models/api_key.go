package models

import (
	"time"
)

// APIKey authenticates service-to-service calls against the country proxy.
type APIKey struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Key       string     `gorm:"unique;not null" json:"key"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	LastUsed  *time.Time `json:"last_used"`
	CreatedAt time.Time  `json:"created_at"`
}
