package admin

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/waveup-app/waveup-api/internal/auth"
	handlers "github.com/waveup-app/waveup-api/internal/http/api/admin/handlers"
	"github.com/waveup-app/waveup-api/internal/security"
)

// RegisterAdminRoutes registers admin routes, middleware, and handlers.
func RegisterAdminRoutes(r *gin.Engine, db *gorm.DB, issuer *auth.TokenIssuer, gate *security.Gate, poller *security.Poller) {
	if r == nil || db == nil || issuer == nil {
		return
	}

	healthHandler := handlers.NewHealthHandler(db)
	r.GET("/healthz", healthHandler.Healthz)

	adminGroup := r.Group("/v0/admin")

	authHandler := handlers.NewAuthHandler(db, issuer)
	adminGroup.POST("/login", authHandler.Login)

	authed := adminGroup.Group("")
	authed.Use(auth.AdminMiddleware(issuer))

	recordHandler := handlers.NewRecordHandler(db)
	authed.GET("/records", recordHandler.List)

	securityHandler := handlers.NewSecurityHandler(gate, poller)
	authed.GET("/security/state", securityHandler.State)
	authed.POST("/security/anomalies", securityHandler.ReportAnomaly)
	authed.POST("/security/modules/:module/disable", securityHandler.DisableModule)
	authed.POST("/security/lock", securityHandler.Lock)
	authed.DELETE("/security/lock", securityHandler.Unlock)
}
