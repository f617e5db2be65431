package delivery

import (
	"log"
	"net/http"

	channelUsecase "leaguepush/internal/channel/usecase"
	"leaguepush/internal/push/dto"
	"leaguepush/internal/push/usecase"

	"github.com/gin-gonic/gin"
)

// Error codes surfaced verbatim to callers. Infrastructure failures are not
// part of the taxonomy; they come back as 500 InternalError.
const (
	errInvalidBody         = "InvalidBody"
	errUnauthorizedChannel = "UnauthorizedChannel"
	errMethodNotAllowed    = "MethodNotAllowed"
	errInternal            = "InternalError"
)

type PushHandler struct {
	authUsecase channelUsecase.AuthUsecase
	pushUsecase usecase.PushUsecase
}

func NewPushHandler(authUsecase channelUsecase.AuthUsecase, pushUsecase usecase.PushUsecase) *PushHandler {
	return &PushHandler{
		authUsecase: authUsecase,
		pushUsecase: pushUsecase,
	}
}

// MethodNotAllowed handles non-POST verbs on the push routes.
func MethodNotAllowed(c *gin.Context) {
	c.Header("Allow", http.MethodPost)
	c.JSON(http.StatusMethodNotAllowed, dto.ErrorResponse{OK: false, Error: errMethodNotAllowed})
}

func (h *PushHandler) Subscribe(c *gin.Context) {
	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: errInvalidBody})
		return
	}

	// Subscribe is the only operation allowed to bootstrap a channel
	// credential: the first device to subscribe establishes it.
	authorized, err := h.authUsecase.VerifyChannelAuth(c.Request.Context(), req.ChannelID, req.AuthToken, true)
	if err != nil {
		h.internalError(c, "subscribe auth", err)
		return
	}
	if !authorized {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{OK: false, Error: errUnauthorizedChannel})
		return
	}

	count, err := h.pushUsecase.Subscribe(c.Request.Context(), &req)
	if err != nil {
		h.internalError(c, "subscribe", err)
		return
	}

	c.JSON(http.StatusOK, dto.SubscribeResponse{OK: true, SubscriptionCount: count})
}

func (h *PushHandler) Unsubscribe(c *gin.Context) {
	var req dto.UnsubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: errInvalidBody})
		return
	}

	authorized, err := h.authUsecase.VerifyChannelAuth(c.Request.Context(), req.ChannelID, req.AuthToken, false)
	if err != nil {
		h.internalError(c, "unsubscribe auth", err)
		return
	}
	if !authorized {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{OK: false, Error: errUnauthorizedChannel})
		return
	}

	if err := h.pushUsecase.Unsubscribe(c.Request.Context(), &req); err != nil {
		h.internalError(c, "unsubscribe", err)
		return
	}

	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func (h *PushHandler) NotifyMatch(c *gin.Context) {
	var req dto.NotifyMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || !req.Valid() {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{OK: false, Error: errInvalidBody})
		return
	}

	// A notify request must never establish a brand-new channel credential.
	authorized, err := h.authUsecase.VerifyChannelAuth(c.Request.Context(), req.ChannelID, req.AuthToken, false)
	if err != nil {
		h.internalError(c, "notify auth", err)
		return
	}
	if !authorized {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{OK: false, Error: errUnauthorizedChannel})
		return
	}

	resp, err := h.pushUsecase.NotifyMatch(c.Request.Context(), &req)
	if err != nil {
		h.internalError(c, "notify", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PushHandler) internalError(c *gin.Context, operation string, err error) {
	log.Printf("[Push] %s failed: %v", operation, err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{OK: false, Error: errInternal})
}
