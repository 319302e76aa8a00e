package controllers

import (
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/wander-log/api-go/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (ac *AuthController) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Username, email, and password are required")
		return
	}

	if input.Username == "" || input.Email == "" || input.Password == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Username, email, and password are required")
		return
	}
	if !emailPattern.MatchString(input.Email) {
		respondError(c, http.StatusBadRequest, "Invalid Email", "Please provide a valid email address")
		return
	}
	if len(input.Password) < 8 {
		respondError(c, http.StatusBadRequest, "Weak Password", "Password must be at least 8 characters long")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Registration Failed", "An error occurred during registration")
		return
	}

	user := models.User{
		Username: input.Username,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     "user",
		IsActive: true,
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		msg := strings.ToLower(err.Error())
		if strings.Contains(msg, "email") {
			respondError(c, http.StatusConflict, "Email Already Exists", "An account with this email already exists")
			return
		}
		if strings.Contains(msg, "username") {
			respondError(c, http.StatusConflict, "Username Already Exists", "This username is already taken")
			return
		}
		respondError(c, http.StatusInternalServerError, "Registration Failed", "An error occurred during registration")
		return
	}

	respondSuccess(c, http.StatusCreated, "Account created successfully for "+user.Username, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || input.Password == "" {
		respondError(c, http.StatusBadRequest, "Missing Required Fields", "Email and password are required")
		return
	}

	var user models.User
	if err := ac.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		respondError(c, http.StatusNotFound, "User Not Found", "No account found with this email address")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "Invalid Password", "The password you entered is incorrect")
		return
	}

	if !user.IsActive {
		respondError(c, http.StatusUnauthorized, "Account Inactive", "Your account has been deactivated. Please contact support")
		return
	}

	now := time.Now()
	ac.DB.Model(&user).Update("last_login", &now)

	tokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})

	token, err := tokenBase.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Login Failed", "An error occurred during login")
		return
	}

	respondSuccess(c, http.StatusOK, "Welcome back, "+user.Username+"!", gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}
