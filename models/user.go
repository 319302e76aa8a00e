package models

import (
	"time"
)

type User struct {
	ID        uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string     `gorm:"unique;not null" json:"username"`
	Email     string     `gorm:"unique;not null" json:"email"`
	Password  string     `gorm:"not null" json:"-"` // Don't expose password hash in JSON
	Role      string     `gorm:"not null;default:'user';type:varchar(20)" json:"role"` // "user" or "admin"
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	LastLogin *time.Time `json:"last_login"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	Posts     []Post     `gorm:"foreignKey:UserID" json:"-"`
	Comments  []Comment  `gorm:"foreignKey:UserID" json:"-"`
	Reactions []Reaction `gorm:"foreignKey:UserID" json:"-"`
}

// UserSummary is the public shape returned in follower/following lists and
// suggestions.
type UserSummary struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
