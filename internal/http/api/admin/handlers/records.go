package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	dbutil "github.com/waveup-app/waveup-api/internal/db"
	"github.com/waveup-app/waveup-api/internal/models"
)

// recordListLimit caps how many records one inspection query returns.
const recordListLimit = 100

// RecordHandler exposes raw key-value records for operational inspection.
type RecordHandler struct {
	db *gorm.DB
}

// NewRecordHandler constructs a RecordHandler.
func NewRecordHandler(db *gorm.DB) *RecordHandler {
	return &RecordHandler{db: db}
}

// List returns stored records, optionally filtered by a case-insensitive
// key search.
func (h *RecordHandler) List(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Model(&models.Record{})

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + dbutil.NormalizeLikePattern(h.db, search) + "%"
		query = query.Where(dbutil.CaseInsensitiveLikeExpr(h.db, "key"), pattern)
	}

	var records []models.Record
	if errFind := query.Order("key ASC").Limit(recordListLimit).Find(&records).Error; errFind != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list records failed"})
		return
	}

	out := make([]gin.H, 0, len(records))
	for _, record := range records {
		out = append(out, gin.H{
			"key":        record.Key,
			"content":    record.Content,
			"updated_at": record.UpdatedAt,
		})
	}
	c.JSON(http.StatusOK, gin.H{"records": out})
}
