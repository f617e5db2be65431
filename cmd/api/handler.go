package api

import (
	channelUsecase "leaguepush/internal/channel/usecase"
	pushUsecase "leaguepush/internal/push/usecase"
	"leaguepush/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase channelUsecase.AuthUsecase
	pushUsecase pushUsecase.PushUsecase
	config      *config.Config
}

func NewHandler(authUc channelUsecase.AuthUsecase, pushUc pushUsecase.PushUsecase, cfg *config.Config) *Handler {
	return &Handler{
		authUsecase: authUc,
		pushUsecase: pushUc,
		config:      cfg,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Setup routes
	SetupRoutes(r, h.authUsecase, h.pushUsecase)

	return r.Run(addr)
}
