package models

import (
	"time"
)

const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction is a user's like or dislike on a post. The unique index on
// (post_id, user_id, type) guarantees at most one row per type; mutual
// exclusion between the two types is enforced by the toggle logic.
type Reaction struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user_type" json:"post_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reactions_post_user_type" json:"user_id"`
	Type      string    `gorm:"not null;type:varchar(10);uniqueIndex:idx_reactions_post_user_type" json:"type"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
	Post Post `gorm:"foreignKey:PostID" json:"-"`
}

// OppositeReaction returns the mutually exclusive counterpart of a reaction type.
func OppositeReaction(reactionType string) string {
	if reactionType == ReactionLike {
		return ReactionDislike
	}
	return ReactionLike
}
