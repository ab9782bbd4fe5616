package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/entitlement"
	"github.com/waveup-app/waveup-api/internal/ideas"
	"github.com/waveup-app/waveup-api/internal/security"
	"github.com/waveup-app/waveup-api/internal/settings"
)

// GenerateHandler serves AI idea generation, enforcing the module gate and
// the creator's daily quota.
type GenerateHandler struct {
	svc       *entitlement.Service
	gate      *security.Gate
	generator ideas.Generator
}

// NewGenerateHandler constructs a GenerateHandler. A nil generator means AI
// generation is not configured.
func NewGenerateHandler(svc *entitlement.Service, gate *security.Gate, generator ideas.Generator) *GenerateHandler {
	return &GenerateHandler{svc: svc, gate: gate, generator: generator}
}

// Generate produces ideas for a topic. One quota unit is consumed per call
// before the generator runs; a failed generation does not refund it.
func (h *GenerateHandler) Generate(c *gin.Context) {
	ctx := c.Request.Context()
	creatorID := auth.CreatorID(c)

	var req struct {
		Topic string `json:"topic" binding:"required"`
		Count int    `json:"count"`
	}
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "topic is required"})
		return
	}
	count := req.Count
	if count <= 0 {
		count = settings.DefaultGenerateCount
	}
	if count > settings.MaxGenerateCount {
		count = settings.MaxGenerateCount
	}

	if !h.gate.IsModuleEnabled(ctx, security.ModuleAI) {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "module disabled", "module": security.ModuleAI})
		return
	}
	if h.generator == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation not configured"})
		return
	}

	if errConsume := h.svc.ConsumeOne(ctx, creatorID); errConsume != nil {
		if errors.Is(errConsume, entitlement.ErrQuotaExceeded) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":   "quota exceeded",
				"upgrade": "subscribe to a premium plan for more daily generations",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "consume quota failed"})
		return
	}

	generated, errGenerate := h.generator.GenerateIdeas(ctx, topic, count)
	if errGenerate != nil {
		log.WithError(errGenerate).Error("generate ideas failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "generation failed"})
		return
	}

	tier := h.svc.Status(ctx, creatorID).Tier
	visible := entitlement.VisibleIdeaCount(tier, len(generated))
	c.JSON(http.StatusOK, gin.H{
		"ideas":     generated[:visible],
		"total":     len(generated),
		"truncated": visible < len(generated),
	})
}
