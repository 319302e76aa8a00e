package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("userId")).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	var followerCount, followingCount int64
	uc.DB.Model(&models.Follow{}).Where("following_id = ?", user.ID).Count(&followerCount)
	uc.DB.Model(&models.Follow{}).Where("follower_id = ?", user.ID).Count(&followingCount)

	respondSuccess(c, http.StatusOK, "Profile retrieved successfully", gin.H{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"created_at":     user.CreatedAt,
		"followerCount":  followerCount,
		"followingCount": followingCount,
	})
}

// GetSuggestedUsers returns users the caller does not yet follow, in random
// order. No relevance ranking is applied.
func (uc *UserController) GetSuggestedUsers(c *gin.Context) {
	user := utils.GetUser(c)

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if err != nil || limit < 1 || limit > 20 {
		respondError(c, http.StatusBadRequest, "Invalid Limit", "Limit must be a number between 1 and 20")
		return
	}

	var suggestions []models.UserSummary
	err = uc.DB.Model(&models.User{}).
		Select("users.id, users.username, users.email, users.created_at").
		Where("users.id != ?", user.UserID).
		Where("users.id NOT IN (SELECT following_id FROM follows WHERE follower_id = ?)", user.UserID).
		Order("RANDOM()").
		Limit(limit).
		Find(&suggestions).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching suggested users")
		return
	}

	respondSuccess(c, http.StatusOK, "Suggested users retrieved successfully", suggestions)
}

func (uc *UserController) UpdateProfile(c *gin.Context) {
	claims := utils.GetUser(c)

	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", err.Error())
		return
	}

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	if input.Email != "" {
		if !emailPattern.MatchString(input.Email) {
			respondError(c, http.StatusBadRequest, "Invalid Email", "Please provide a valid email address")
			return
		}
		user.Email = input.Email
	}
	if input.Username != "" {
		user.Username = input.Username
	}

	if err := uc.DB.Save(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "email") {
			respondError(c, http.StatusConflict, "Email Already Exists", "An account with this email already exists")
			return
		}
		if strings.Contains(msg, "username") {
			respondError(c, http.StatusConflict, "Username Already Exists", "This username is already taken")
			return
		}
		respondError(c, http.StatusInternalServerError, "Update Operation Failed", "An error occurred while updating the profile")
		return
	}

	respondSuccess(c, http.StatusOK, "Profile updated successfully", gin.H{
		"id":         user.ID,
		"username":   user.Username,
		"email":      user.Email,
		"updated_at": user.UpdatedAt,
	})
}

// DeleteAccount hard-deletes the user and everything they own: posts (with
// their comments and reactions from anyone), the user's own comments and
// reactions elsewhere, and both directions of follow edges.
func (uc *UserController) DeleteAccount(c *gin.Context) {
	claims := utils.GetUser(c)

	var user models.User
	if err := uc.DB.First(&user, claims.UserID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	tx := uc.DB.Begin()

	fail := func() {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Delete Operation Failed", "An error occurred while deleting the account")
	}

	if err := tx.Where("post_id IN (SELECT id FROM posts WHERE user_id = ?)", user.ID).Delete(&models.Reaction{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Where("post_id IN (SELECT id FROM posts WHERE user_id = ?)", user.ID).Delete(&models.Comment{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Reaction{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Comment{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Where("user_id = ?", user.ID).Delete(&models.Post{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Where("follower_id = ? OR following_id = ?", user.ID, user.ID).Delete(&models.Follow{}).Error; err != nil {
		fail()
		return
	}
	if err := tx.Delete(&user).Error; err != nil {
		fail()
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Delete Operation Failed", "An error occurred while deleting the account")
		return
	}

	respondSuccess(c, http.StatusOK, "Account deleted successfully", gin.H{"username": user.Username})
}
