package models

import (
	"time"
)

type Post struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"not null;type:text" json:"content"`
	CountryName string    `gorm:"not null;index" json:"country_name"`
	CountryCca3 string    `gorm:"type:varchar(3)" json:"country_cca3"`
	DateOfVisit string    `gorm:"not null;type:varchar(10)" json:"date_of_visit"` // YYYY-MM-DD
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	User        User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Comments  []Comment  `gorm:"foreignKey:PostID" json:"-"`
	Reactions []Reaction `gorm:"foreignKey:PostID" json:"-"`
}
