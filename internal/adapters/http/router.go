package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Vivekkumarprince1/next-complete-vaani/internal/adapters/signal"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/app"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/config"
	"github.com/Vivekkumarprince1/next-complete-vaani/internal/domain"
)

// SetupRouter wires the signaling endpoint and, unless the process runs
// as relay-only, the application surface (static UI + presence/room API).
func SetupRouter(ctx context.Context, cfg *config.Config, ctl *signal.Controller, reg *app.Registry, rooms *app.Directory) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ws/signal", func(c *gin.Context) {
		ctl.HandleWS(ctx, c)
	})

	if cfg.RelayOnly {
		log.Info().Str("module", "adapters.http").Msg("relay-only mode, app surface disabled")
		return r
	}

	r.Static("/static", cfg.StaticPath)
	r.GET("/", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/index.html")
	})

	api := r.Group("/api")

	api.GET("/presence", func(c *gin.Context) {
		online := reg.Online()
		users := make([]gin.H, 0, len(online))
		for _, s := range online {
			users = append(users, gin.H{
				"userId":       s.UserID,
				"username":     s.Username,
				"status":       s.Status,
				"lastActiveAt": s.LastActiveAt,
			})
		}
		c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
	})

	api.GET("/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.List(domain.NamespaceChat)})
	})

	api.GET("/calls/rooms", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"rooms": rooms.List(domain.NamespaceCall)})
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
