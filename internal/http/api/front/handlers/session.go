package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/waveup-app/waveup-api/internal/auth"
)

// SessionHandler issues creator tokens. Creators are anonymous device
// identities; a missing id mints a fresh one.
type SessionHandler struct {
	issuer *auth.TokenIssuer
}

// NewSessionHandler constructs a SessionHandler.
func NewSessionHandler(issuer *auth.TokenIssuer) *SessionHandler {
	return &SessionHandler{issuer: issuer}
}

// Create issues a token for the given or a freshly minted creator id.
func (h *SessionHandler) Create(c *gin.Context) {
	var req struct {
		CreatorID string `json:"creator_id"`
	}
	// The body is optional.
	_ = c.ShouldBindJSON(&req)

	creatorID := strings.TrimSpace(req.CreatorID)
	if creatorID == "" {
		creatorID = uuid.NewString()
	}

	token, errIssue := h.issuer.Issue(creatorID, false)
	if errIssue != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "issue token failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"creator_id": creatorID, "token": token})
}
