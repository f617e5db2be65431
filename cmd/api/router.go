package api

import (
	"net/http"

	channelUsecase "leaguepush/internal/channel/usecase"
	"leaguepush/internal/push/delivery"
	pushUsecase "leaguepush/internal/push/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc channelUsecase.AuthUsecase, pushUc pushUsecase.PushUsecase) {
	pushHandler := delivery.NewPushHandler(authUc, pushUc)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Push routes are POST-only; other verbs get a 405 with an Allow header.
	r.HandleMethodNotAllowed = true
	r.NoMethod(delivery.MethodNotAllowed)

	push := r.Group("/push")
	{
		push.POST("/subscribe", pushHandler.Subscribe)
		push.POST("/unsubscribe", pushHandler.Unsubscribe)
		push.POST("/notify-match", pushHandler.NotifyMatch)
	}
}
