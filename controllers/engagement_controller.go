package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementController struct {
	DB *gorm.DB
}

func NewEngagementController(db *gorm.DB) *EngagementController {
	return &EngagementController{DB: db}
}

// toggleReaction flips a like or dislike for the caller. The opposite type is
// always evicted first, then the requested type is toggled. All three steps
// run in one transaction, and the insert is ON CONFLICT DO NOTHING against
// the (post, user, type) unique index: a racing duplicate toggle reads as
// "already active" instead of failing.
func (ec *EngagementController) toggleReaction(c *gin.Context, reactionType string) {
	post, err := requirePost(ec.DB, c)
	if err != nil {
		return
	}
	user := utils.GetUser(c)

	tx := ec.DB.Begin()

	if err := tx.Where("post_id = ? AND user_id = ? AND type = ?",
		post.ID, user.UserID, models.OppositeReaction(reactionType)).
		Delete(&models.Reaction{}).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Reaction Failed", "An error occurred while updating the reaction")
		return
	}

	var isActive bool
	var existing models.Reaction
	findErr := tx.Where("post_id = ? AND user_id = ? AND type = ?",
		post.ID, user.UserID, reactionType).
		First(&existing).Error

	switch {
	case findErr == nil:
		// Same reaction again means un-react.
		if err := tx.Delete(&existing).Error; err != nil {
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Reaction Failed", "An error occurred while updating the reaction")
			return
		}
		isActive = false
	case errors.Is(findErr, gorm.ErrRecordNotFound):
		reaction := models.Reaction{
			PostID: post.ID,
			UserID: user.UserID,
			Type:   reactionType,
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&reaction).Error; err != nil {
			tx.Rollback()
			respondError(c, http.StatusInternalServerError, "Reaction Failed", "An error occurred while updating the reaction")
			return
		}
		isActive = true
	default:
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Reaction Failed", "An error occurred while updating the reaction")
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Reaction Failed", "An error occurred while updating the reaction")
		return
	}

	respondSuccess(c, http.StatusOK, "Post "+reactionType+" toggled", gin.H{"is_active": isActive})
}

func (ec *EngagementController) ToggleLike(c *gin.Context) {
	ec.toggleReaction(c, models.ReactionLike)
}

func (ec *EngagementController) ToggleDislike(c *gin.Context) {
	ec.toggleReaction(c, models.ReactionDislike)
}

func (ec *EngagementController) reactionStatus(c *gin.Context, reactionType string) {
	post, err := requirePost(ec.DB, c)
	if err != nil {
		return
	}
	user := utils.GetUser(c)

	var count int64
	ec.DB.Model(&models.Reaction{}).
		Where("post_id = ? AND user_id = ? AND type = ?", post.ID, user.UserID, reactionType).
		Count(&count)

	respondSuccess(c, http.StatusOK, "Reaction status retrieved", gin.H{"is_active": count > 0})
}

func (ec *EngagementController) GetLikeStatus(c *gin.Context) {
	ec.reactionStatus(c, models.ReactionLike)
}

func (ec *EngagementController) GetDislikeStatus(c *gin.Context) {
	ec.reactionStatus(c, models.ReactionDislike)
}

func (ec *EngagementController) reactionCount(c *gin.Context, reactionType string) {
	post, err := requirePost(ec.DB, c)
	if err != nil {
		return
	}

	var count int64
	ec.DB.Model(&models.Reaction{}).
		Where("post_id = ? AND type = ?", post.ID, reactionType).
		Count(&count)

	respondSuccess(c, http.StatusOK, "Reaction count retrieved", gin.H{"count": count})
}

func (ec *EngagementController) GetLikeCount(c *gin.Context) {
	ec.reactionCount(c, models.ReactionLike)
}

func (ec *EngagementController) GetDislikeCount(c *gin.Context) {
	ec.reactionCount(c, models.ReactionDislike)
}

func (ec *EngagementController) AddComment(c *gin.Context) {
	post, err := requirePost(ec.DB, c)
	if err != nil {
		return
	}
	user := utils.GetUser(c)

	var input struct {
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input.Content) == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Comment content is required")
		return
	}

	comment := models.Comment{
		PostID:  post.ID,
		UserID:  user.UserID,
		Content: input.Content,
	}
	if err := ec.DB.Create(&comment).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Comment Failed", "An error occurred while adding the comment")
		return
	}

	respondSuccess(c, http.StatusCreated, "Comment added successfully", gin.H{
		"id":         comment.ID,
		"post_id":    comment.PostID,
		"user_id":    comment.UserID,
		"username":   user.Username,
		"content":    comment.Content,
		"created_at": comment.CreatedAt,
	})
}

func (ec *EngagementController) GetComments(c *gin.Context) {
	post, err := requirePost(ec.DB, c)
	if err != nil {
		return
	}

	var comments []struct {
		models.Comment
		Username string `json:"username"`
	}
	err = ec.DB.Model(&models.Comment{}).
		Select("comments.*, users.username").
		Joins("JOIN users ON comments.user_id = users.id").
		Where("comments.post_id = ?", post.ID).
		Order("comments.created_at DESC").
		Find(&comments).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching comments")
		return
	}

	respondSuccess(c, http.StatusOK, "Comments retrieved successfully", comments)
}

// DeleteComment scopes the delete to the calling user, so a zero row count
// covers both "no such comment" and "not the author" without revealing which.
func (ec *EngagementController) DeleteComment(c *gin.Context) {
	user := utils.GetUser(c)

	result := ec.DB.Where("id = ? AND user_id = ?", c.Param("commentId"), user.UserID).
		Delete(&models.Comment{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "Comment Deletion Failed", "An error occurred while deleting the comment")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Comment Not Found", "Comment does not exist or does not belong to you")
		return
	}

	respondSuccess(c, http.StatusOK, "Comment deleted successfully", nil)
}
