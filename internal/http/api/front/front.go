package front

import (
	"github.com/gin-gonic/gin"

	"github.com/waveup-app/waveup-api/internal/auth"
	"github.com/waveup-app/waveup-api/internal/clock"
	"github.com/waveup-app/waveup-api/internal/entitlement"
	handlers "github.com/waveup-app/waveup-api/internal/http/api/front/handlers"
	"github.com/waveup-app/waveup-api/internal/ideas"
	"github.com/waveup-app/waveup-api/internal/security"
)

// RegisterFrontRoutes registers creator-facing routes, middleware, and
// handlers.
func RegisterFrontRoutes(r *gin.Engine, issuer *auth.TokenIssuer, svc *entitlement.Service, gate *security.Gate, poller *security.Poller, gallery *ideas.Gallery, generator ideas.Generator, clk clock.Clock) {
	if r == nil || issuer == nil || svc == nil || gate == nil {
		return
	}

	frontGroup := r.Group("/v0")

	sessionHandler := handlers.NewSessionHandler(issuer)
	frontGroup.POST("/session", sessionHandler.Create)

	planHandler := handlers.NewPlanHandler()
	frontGroup.GET("/plans", planHandler.List)

	promoHandler := handlers.NewPromoHandler(clk)
	frontGroup.POST("/promo/validate", promoHandler.Validate)

	moduleHandler := handlers.NewModuleHandler(poller)
	frontGroup.GET("/modules", moduleHandler.List)

	authed := frontGroup.Group("")
	authed.Use(auth.CreatorMiddleware(issuer))

	statusHandler := handlers.NewStatusHandler(svc)
	authed.GET("/entitlement", statusHandler.Get)

	generateHandler := handlers.NewGenerateHandler(svc, gate, generator)
	authed.POST("/ideas/generate", generateHandler.Generate)

	galleryHandler := handlers.NewGalleryHandler(gallery)
	authed.GET("/ideas/saved", galleryHandler.List)
	authed.POST("/ideas/saved", galleryHandler.Save)
	authed.DELETE("/ideas/saved/:id", galleryHandler.Delete)
	authed.POST("/ideas/saved/:id/rating", galleryHandler.Rate)

	subscriptionHandler := handlers.NewSubscriptionHandler(svc)
	authed.POST("/subscription", subscriptionHandler.Purchase)
	authed.DELETE("/subscription", subscriptionHandler.Cancel)
}
