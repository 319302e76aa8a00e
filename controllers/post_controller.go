package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/countryapi"
	"github.com/wander-log/api-go/models"
	"github.com/wander-log/api-go/utils"
	"gorm.io/gorm"
)

type PostController struct {
	DB      *gorm.DB
	Country *countryapi.Client
}

func NewPostController(db *gorm.DB, country *countryapi.Client) *PostController {
	return &PostController{DB: db, Country: country}
}

type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	CountryName string `json:"country_name"`
	CountryCca3 string `json:"country_cca3"`
	DateOfVisit string `json:"date_of_visit"`
}

type UpdatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	CountryName string `json:"country_name"`
	CountryCca3 string `json:"country_cca3"`
	DateOfVisit string `json:"date_of_visit"`
}

// PostRow is a post joined with its author and engagement counts.
type PostRow struct {
	models.Post
	Username     string `json:"username"`
	LikeCount    int64  `json:"like_count"`
	CommentCount int64  `json:"comment_count"`
}

// PostResponse adds the best-effort country enrichment to a PostRow.
type PostResponse struct {
	PostRow
	countryapi.Enrichment
}

const postColumns = `posts.*, users.username,
	(SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.type = 'like') AS like_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count`

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func (pc *PostController) enrichRows(c *gin.Context, rows []PostRow) []PostResponse {
	out := make([]PostResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, PostResponse{
			PostRow:    row,
			Enrichment: pc.Country.Enrich(c.Request.Context(), row.CountryName, row.CountryCca3),
		})
	}
	return out
}

func validateVisitDate(dateStr string) bool {
	_, err := time.Parse("2006-01-02", dateStr)
	return err == nil
}

// CreatePost validates the country strictly before writing: an unknown
// country (or an unreachable country API) blocks the write.
func (pc *PostController) CreatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var req CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", err.Error())
		return
	}
	if req.Title == "" || req.Content == "" || req.CountryName == "" || req.DateOfVisit == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Title, content, country_name, and date_of_visit are required")
		return
	}
	if !validateVisitDate(req.DateOfVisit) {
		respondError(c, http.StatusBadRequest, "Invalid Date", "date_of_visit must be in YYYY-MM-DD format")
		return
	}

	details, err := pc.Country.Validate(c.Request.Context(), req.CountryName)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid Country", "The provided country could not be validated")
		return
	}

	cca3 := req.CountryCca3
	if cca3 == "" {
		cca3 = details.Cca3
	}

	post := models.Post{
		Title:       req.Title,
		Content:     req.Content,
		CountryName: req.CountryName,
		CountryCca3: cca3,
		DateOfVisit: req.DateOfVisit,
		UserID:      user.UserID,
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Post Creation Failed", "An error occurred while creating the post")
		return
	}

	respondSuccess(c, http.StatusCreated, "Post created successfully", PostResponse{
		PostRow: PostRow{Post: post, Username: user.Username},
		Enrichment: countryapi.Enrichment{
			Flag:     optional(details.Flag),
			Currency: optional(details.Currency),
			Capital:  optional(details.Capital),
		},
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (pc *PostController) GetPost(c *gin.Context) {
	var row PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.id = ?", c.Param("id")).
		First(&row).Error
	if err != nil {
		respondError(c, http.StatusNotFound, "Post Not Found", "The requested post does not exist")
		return
	}

	respondSuccess(c, http.StatusOK, "Post retrieved successfully", PostResponse{
		PostRow:    row,
		Enrichment: pc.Country.Enrich(c.Request.Context(), row.CountryName, row.CountryCca3),
	})
}

// UpdatePost re-validates the country only when it changed, mirroring the
// strict-on-write policy of CreatePost.
func (pc *PostController) UpdatePost(c *gin.Context) {
	user := utils.GetUser(c)

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", err.Error())
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Post Not Found", "The requested post does not exist")
		return
	}
	if post.UserID != user.UserID {
		respondError(c, http.StatusForbidden, "Forbidden", "You can only update your own posts")
		return
	}

	if req.CountryName != "" && req.CountryName != post.CountryName {
		details, err := pc.Country.Validate(c.Request.Context(), req.CountryName)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Invalid Country", "The provided country could not be validated")
			return
		}
		post.CountryName = req.CountryName
		if req.CountryCca3 == "" {
			post.CountryCca3 = details.Cca3
		}
	}
	if req.CountryCca3 != "" {
		post.CountryCca3 = req.CountryCca3
	}
	if req.Title != "" {
		post.Title = req.Title
	}
	if req.Content != "" {
		post.Content = req.Content
	}
	if req.DateOfVisit != "" {
		if !validateVisitDate(req.DateOfVisit) {
			respondError(c, http.StatusBadRequest, "Invalid Date", "date_of_visit must be in YYYY-MM-DD format")
			return
		}
		post.DateOfVisit = req.DateOfVisit
	}

	if err := pc.DB.Save(&post).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Post Update Failed", "An error occurred while updating the post")
		return
	}

	respondSuccess(c, http.StatusOK, "Post updated successfully", PostResponse{
		PostRow:    PostRow{Post: post, Username: user.Username},
		Enrichment: pc.Country.Enrich(c.Request.Context(), post.CountryName, post.CountryCca3),
	})
}

// DeletePost removes the post and its comments and reactions in one
// transaction so a feed never sees a half-deleted post.
func (pc *PostController) DeletePost(c *gin.Context) {
	user := utils.GetUser(c)

	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Post Not Found", "The requested post does not exist")
		return
	}
	if post.UserID != user.UserID {
		respondError(c, http.StatusForbidden, "Forbidden", "You can only delete your own posts")
		return
	}

	tx := pc.DB.Begin()

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Reaction{}).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Post Deletion Failed", "An error occurred while deleting the post")
		return
	}
	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Comment{}).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Post Deletion Failed", "An error occurred while deleting the post")
		return
	}
	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		respondError(c, http.StatusInternalServerError, "Post Deletion Failed", "An error occurred while deleting the post")
		return
	}
	if err := tx.Commit().Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Post Deletion Failed", "An error occurred while deleting the post")
		return
	}

	respondSuccess(c, http.StatusOK, "Post deleted successfully", gin.H{"id": post.ID})
}

// GetFeed is the global feed: all posts, newest first.
func (pc *PostController) GetFeed(c *gin.Context) {
	page, limit := parsePagination(c)

	var total int64
	pc.DB.Model(&models.Post{}).Count(&total)

	var rows []PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching posts")
		return
	}

	respondPage(c, "Posts retrieved successfully", pc.enrichRows(c, rows), NewPaginationMeta(page, limit, total))
}

// SearchByCountry matches case-insensitive substrings of the tagged country
// name, so "franc" finds posts about France.
func (pc *PostController) SearchByCountry(c *gin.Context) {
	country := c.Query("country")
	if country == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Query parameter 'country' is required")
		return
	}
	page, limit := parsePagination(c)
	pattern := "%" + country + "%"

	var total int64
	pc.DB.Model(&models.Post{}).
		Where("LOWER(country_name) LIKE LOWER(?)", pattern).
		Count(&total)

	var rows []PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("LOWER(posts.country_name) LIKE LOWER(?)", pattern).
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while searching posts")
		return
	}

	respondPage(c, "Posts retrieved successfully", pc.enrichRows(c, rows), NewPaginationMeta(page, limit, total))
}

func (pc *PostController) SearchByUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Query parameter 'username' is required")
		return
	}
	page, limit := parsePagination(c)
	pattern := "%" + username + "%"

	var total int64
	pc.DB.Model(&models.Post{}).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("LOWER(users.username) LIKE LOWER(?)", pattern).
		Count(&total)

	var rows []PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("LOWER(users.username) LIKE LOWER(?)", pattern).
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while searching posts")
		return
	}

	respondPage(c, "Posts retrieved successfully", pc.enrichRows(c, rows), NewPaginationMeta(page, limit, total))
}

func parseLimit(c *gin.Context, def int) int {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if err != nil || limit < 1 || limit > 100 {
		return def
	}
	return limit
}

func (pc *PostController) GetRecentPosts(c *gin.Context) {
	limit := parseLimit(c, 10)

	var rows []PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Order("posts.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching posts")
		return
	}

	respondSuccess(c, http.StatusOK, "Recent posts retrieved successfully", pc.enrichRows(c, rows))
}

// GetPopularPosts ranks posts by like_count + comment_count - dislike_count,
// ties broken newest-first.
func (pc *PostController) GetPopularPosts(c *gin.Context) {
	limit := parseLimit(c, 10)

	var rows []PostRow
	err := pc.DB.Model(&models.Post{}).
		Select(postColumns + `,
			((SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.type = 'like') +
			 (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) -
			 (SELECT COUNT(*) FROM reactions WHERE reactions.post_id = posts.id AND reactions.type = 'dislike')) AS popularity_score`).
		Joins("JOIN users ON posts.user_id = users.id").
		Order("popularity_score DESC, posts.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching posts")
		return
	}

	respondSuccess(c, http.StatusOK, "Popular posts retrieved successfully", pc.enrichRows(c, rows))
}

// GetMyPosts lists the caller's posts with an optional title/content search.
func (pc *PostController) GetMyPosts(c *gin.Context) {
	user := utils.GetUser(c)
	page, limit := parsePagination(c)
	search := c.Query("search")

	countQuery := pc.DB.Model(&models.Post{}).Where("posts.user_id = ?", user.UserID)
	listQuery := pc.DB.Model(&models.Post{}).
		Select(postColumns).
		Joins("JOIN users ON posts.user_id = users.id").
		Where("posts.user_id = ?", user.UserID)

	if search != "" {
		pattern := "%" + search + "%"
		countQuery = countQuery.Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", pattern, pattern)
		listQuery = listQuery.Where("LOWER(posts.title) LIKE LOWER(?) OR LOWER(posts.content) LIKE LOWER(?)", pattern, pattern)
	}

	var total int64
	countQuery.Count(&total)

	var rows []PostRow
	err := listQuery.
		Order("posts.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while fetching posts")
		return
	}

	respondPage(c, "Posts retrieved successfully", pc.enrichRows(c, rows), NewPaginationMeta(page, limit, total))
}

var errPostNotFound = errors.New("post not found")

// requirePost loads a post or reports the shared 404 shape. Used by the
// engagement endpoints, which all require the post to exist.
func requirePost(db *gorm.DB, c *gin.Context) (*models.Post, error) {
	var post models.Post
	if err := db.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, http.StatusNotFound, "Post Not Found", "The requested post does not exist")
		return nil, errPostNotFound
	}
	return &post, nil
}
