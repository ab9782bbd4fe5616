package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/models"
)

// AuthHandler serves admin login.
type AuthHandler struct {
	db     *gorm.DB
	issuer *auth.TokenIssuer
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(db *gorm.DB, issuer *auth.TokenIssuer) *AuthHandler {
	return &AuthHandler{db: db, issuer: issuer}
}

// Login exchanges admin credentials for a token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	var admin models.Admin
	errFind := h.db.WithContext(c.Request.Context()).
		Where("username = ?", strings.TrimSpace(req.Username)).
		First(&admin).Error
	if errFind != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	if !admin.Active || !auth.CheckPassword(admin.Password, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, errIssue := h.issuer.Issue(fmt.Sprint(admin.ID), true)
	if errIssue != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "username": admin.Username})
}
