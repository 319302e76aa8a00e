package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/wander-log/api-go/models"
	"gorm.io/gorm"
)

// APIKeyController manages the service keys that gate the country proxy.
type APIKeyController struct {
	DB *gorm.DB
}

func NewAPIKeyController(db *gorm.DB) *APIKeyController {
	return &APIKeyController{DB: db}
}

func (kc *APIKeyController) CreateKey(c *gin.Context) {
	var input struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Name == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "A name for the API key is required")
		return
	}

	key := models.APIKey{
		Name:     input.Name,
		Key:      uuid.NewString(),
		IsActive: true,
	}
	if err := kc.DB.Create(&key).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Key Creation Failed", "An error occurred while creating the API key")
		return
	}

	respondSuccess(c, http.StatusCreated, "API key created successfully", key)
}

func (kc *APIKeyController) ListKeys(c *gin.Context) {
	var keys []models.APIKey
	if err := kc.DB.Order("created_at DESC").Find(&keys).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "Fetch Operation Failed", "An error occurred while listing API keys")
		return
	}

	respondSuccess(c, http.StatusOK, "API keys retrieved successfully", keys)
}

// RevokeKey deactivates a key instead of deleting it so usage history stays
// attributable.
func (kc *APIKeyController) RevokeKey(c *gin.Context) {
	result := kc.DB.Model(&models.APIKey{}).
		Where("id = ?", c.Param("id")).
		Update("is_active", false)
	if result.Error != nil {
		respondError(c, http.StatusInternalServerError, "Key Revocation Failed", "An error occurred while revoking the API key")
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, http.StatusNotFound, "Key Not Found", "The specified API key does not exist")
		return
	}

	respondSuccess(c, http.StatusOK, "API key revoked successfully", nil)
}
