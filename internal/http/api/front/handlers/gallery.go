package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/ideas"
)

// GalleryHandler serves the creator's saved ideas gallery.
type GalleryHandler struct {
	gallery *ideas.Gallery
}

// NewGalleryHandler constructs a GalleryHandler.
func NewGalleryHandler(gallery *ideas.Gallery) *GalleryHandler {
	return &GalleryHandler{gallery: gallery}
}

// List returns the creator's saved ideas.
func (h *GalleryHandler) List(c *gin.Context) {
	list, errList := h.gallery.List(c.Request.Context(), auth.CreatorID(c))
	if errList != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list gallery failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ideas": list})
}

// Save stores a new idea in the creator's gallery.
func (h *GalleryHandler) Save(c *gin.Context) {
	var req struct {
		Title   string `json:"title" binding:"required"`
		Content string `json:"content" binding:"required"`
		Type    string `json:"type" binding:"required"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, content and type are required"})
		return
	}

	saved, errSave := h.gallery.Save(c.Request.Context(), auth.CreatorID(c), req.Title, req.Content, req.Type)
	if errSave != nil {
		if errors.Is(errSave, ideas.ErrUnknownIdeaType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown idea type"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save idea failed"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"idea": saved})
}

// Delete removes an idea from the creator's gallery.
func (h *GalleryHandler) Delete(c *gin.Context) {
	errDelete := h.gallery.Delete(c.Request.Context(), auth.CreatorID(c), c.Param("id"))
	if errDelete != nil {
		if errors.Is(errDelete, ideas.ErrIdeaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "idea not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete idea failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// Rate sets the star rating of a saved idea.
func (h *GalleryHandler) Rate(c *gin.Context) {
	var req struct {
		Rating int `json:"rating"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "rating is required"})
		return
	}

	rated, errRate := h.gallery.Rate(c.Request.Context(), auth.CreatorID(c), c.Param("id"), req.Rating)
	if errRate != nil {
		if errors.Is(errRate, ideas.ErrIdeaNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "idea not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "rate idea failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"idea": rated})
}
