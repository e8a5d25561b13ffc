package handlers

import (
	"net/http"
	"time"

	"signage-command-center/be/config"
	"signage-command-center/be/middleware"
	"signage-command-center/be/models"
	"signage-command-center/be/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type AuthHandler struct {
	users     *services.UserService
	activity  *services.ActivityService
	jwtConfig config.JWTConfig
}

func NewAuthHandler(users *services.UserService, activity *services.ActivityService, jwtConfig config.JWTConfig) *AuthHandler {
	return &AuthHandler{
		users:     users,
		activity:  activity,
		jwtConfig: jwtConfig,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	expiry, err := time.ParseDuration(h.jwtConfig.Expiry)
	if err != nil {
		expiry = 24 * time.Hour
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     string(user.Role),
		"exp":      time.Now().Add(expiry).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.jwtConfig.Secret))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie(middleware.TokenCookie, tokenString, int(expiry.Seconds()), "/", "", false, true)
	h.activity.Record(user.ID, "user_login", "User logged in from "+c.ClientIP(), c.ClientIP(), c.Request.UserAgent())

	c.JSON(http.StatusOK, LoginResponse{
		Token: tokenString,
		User:  toUserResponse(user),
	})
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Register(req.Username, req.Email, req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Registration successful",
		"user":    toUserResponse(user),
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if userID, exists := c.Get("user_id"); exists {
		h.activity.Record(userID.(uint), "user_logout", "User logged out", c.ClientIP(), c.Request.UserAgent())
	}
	c.SetCookie(middleware.TokenCookie, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (h *AuthHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c, h.users)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func toUserResponse(user *models.User) UserResponse {
	return UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		FullName: user.FullName,
		Role:     string(user.Role),
		IsActive: user.IsActive,
	}
}
