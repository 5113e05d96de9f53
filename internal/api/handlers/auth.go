package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/mmandapa/Orchids-Full-Stack-SWE-Assessment/internal/models"
)

// AuthHandler issues tokens and manages accounts. The signing secret is
// injected from config at wiring time.
type AuthHandler struct {
	db     *gorm.DB
	secret []byte
	ttl    time.Duration
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(db *gorm.DB, secret string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 72
	}
	return &AuthHandler{
		db:     db,
		secret: []byte(secret),
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

// Login validates credentials and returns a signed JWT
func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.Users
	if err := h.db.Where("username = ?", input.Username).First(&user).Error; err != nil {
		// Same answer for unknown user and wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.Username,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(h.ttl).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(h.secret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to sign token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"username": user.Username,
		"role":     user.Role,
	})
}

// Register creates a new account. The route is admin-gated, so role
// escalation here is deliberate.
func (h *AuthHandler) Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		Role     string `json:"role"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch input.Role {
	case "":
		input.Role = "listener"
	case "listener", "editor", "admin":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := models.Users{
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         input.Role,
	}

	if err := h.db.Create(&user).Error; err != nil {
		// Username carries a unique index, so a failed insert here is
		// almost always a duplicate.
		c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"username": user.Username,
		"role":     user.Role,
	})
}
