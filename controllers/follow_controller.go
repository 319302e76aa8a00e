package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/countryapi"
	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/utils"
	"gorm.io/gorm"
)

type FollowController struct {
	DB      *gorm.DB
	Country *countryapi.Client
}

func NewFollowController(db *gorm.DB, country *countryapi.Client) *FollowController {
	return &FollowController{DB: db, Country: country}
}

// FollowUser creates a directed follow edge. Self-follows are rejected here
// at the service boundary; duplicates surface as a 409.
func (fc *FollowController) FollowUser(c *gin.Context) {
	user := utils.GetUser(c)

	var input struct {
		FollowingID uint `json:"followingId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.FollowingID == 0 {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "User ID to follow is required")
		return
	}

	if input.FollowingID == user.UserID {
		respondError(c, http.StatusBadRequest, "Invalid Operation", "Users cannot follow themselves")
		return
	}

	var following models.User
	if err := fc.DB.First(&following, input.FollowingID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "One or both users do not exist")
		return
	}

	var existing int64
	fc.DB.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", user.UserID, input.FollowingID).
		Count(&existing)
	if existing > 0 {
		respondError(c, http.StatusConflict, "Already Following", "You are already following this user")
		return
	}

	follow := models.Follow{FollowerID: user.UserID, FollowingID: input.FollowingID}
	if err := fc.DB.Create(&follow).Error; err != nil {
		// The unique index may reject a concurrent duplicate.
		respondError(c, http.StatusConflict, "Already Following", "You are already following this user")
		return
	}

	respondSuccess(c, http.StatusCreated, "You are now following "+following.Username, gin.H{
		"followingId": following.ID,
		"username":    following.Username,
	})
}

func (fc *FollowController) UnfollowUser(c *gin.Context) {
	user := utils.GetUser(c)
	followingID := c.Param("followingId")

	var following models.User
	if err := fc.DB.First(&following, followingID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	result := fc.DB.Where("follower_id = ? AND following_id = ?", user.UserID, following.ID).
		Delete(&models.Follow{})
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "Unfollow Operation Failed", "An error occurred while unfollowing the user")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Follow Relationship Not Found", "You are not following this user")
		return
	}

	respondSuccess(c, http.StatusOK, "You have unfollowed "+following.Username, gin.H{
		"followingId": following.ID,
		"username":    following.Username,
	})
}

func (fc *FollowController) neighborList(c *gin.Context, direction string) {
	userID := c.Param("userId")

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	joinOn := "follows.follower_id = users.id"
	filter := "follows.following_id = ?"
	if direction == "following" {
		joinOn = "follows.following_id = users.id"
		filter = "follows.follower_id = ?"
	}

	var neighbors []models.UserSummary
	err := fc.DB.Model(&models.Follow{}).
		Select("users.id, users.username, users.email, users.created_at").
		Joins("JOIN users ON "+joinOn).
		Where(filter, user.ID).
		Order("follows.created_at DESC").
		Find(&neighbors).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching "+direction)
		return
	}

	respondSuccess(c, http.StatusOK, "Retrieved "+direction+" for "+user.Username, neighbors)
}

func (fc *FollowController) GetFollowers(c *gin.Context) {
	fc.neighborList(c, "followers")
}

func (fc *FollowController) GetFollowing(c *gin.Context) {
	fc.neighborList(c, "following")
}

// GetFollowedUsersPosts assembles the personalized feed: posts authored by
// anyone the user follows, newest first, enriched leniently.
func (fc *FollowController) GetFollowedUsersPosts(c *gin.Context) {
	userID := c.Param("userId")
	page, limit := parsePagination(c)

	var user models.User
	if err := fc.DB.First(&user, userID).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "The specified user does not exist")
		return
	}

	followedFilter := "posts.user_id IN (SELECT following_id FROM follows WHERE follower_id = ?)"

	var total int64
	fc.DB.Model(&models.Post{}).Where(followedFilter, user.ID).Count(&total)

	var rows []PostRow
	err := fc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Where(followedFilter, user.ID).
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching posts from followed users")
		return
	}

	enriched := make([]PostResponse, 0, len(rows))
	for _, row := range rows {
		enriched = append(enriched, PostResponse{
			PostRow:    row,
			Enrichment: fc.Country.Enrich(c.Request.Context(), row.CountryName, row.CountryCca3),
		})
	}

	respondPage(c, "Posts from followed users retrieved", enriched, NewPaginationMeta(page, limit, total))
}
