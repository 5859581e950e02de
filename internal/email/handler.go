package email

import (
	"context"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Sender is the part of Notifier the HTTP layer needs.
type Sender interface {
	SendSellInquiry(ctx context.Context, in SellInquiry) error
	SendBuyInquiry(ctx context.Context, in BuyInquiry) error
}

// Handler struct holds dependencies for email handlers.
type Handler struct {
	sender Sender
	logger *zap.Logger
}

// NewHandler creates a new email handler.
func NewHandler(sender Sender, logger *zap.Logger) *Handler {
	return &Handler{sender: sender, logger: logger.Named("EmailHandler")}
}

// RegisterRoutes sets up the inquiry email routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	emailGroup := router.Group("/email")
	{
		emailGroup.POST("/sell-inquiry", h.sellInquiry)
		emailGroup.POST("/buy-inquiry", h.buyInquiry)
	}
}

func (h *Handler) sellInquiry(c *gin.Context) {
	var req SellInquiry
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Sell inquiry: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	if err := h.sender.SendSellInquiry(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, common.ErrBadGateway.WithMessage("Failed to send inquiry email.").WithCause(err))
		return
	}
	common.RespondOK(c, "Thank you! Your inquiry has been sent. An agent will contact you shortly.", nil)
}

func (h *Handler) buyInquiry(c *gin.Context) {
	var req BuyInquiry
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Buy inquiry: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	if err := h.sender.SendBuyInquiry(c.Request.Context(), req); err != nil {
		common.RespondWithError(c, common.ErrBadGateway.WithMessage("Failed to send inquiry email.").WithCause(err))
		return
	}
	common.RespondOK(c, "Thank you! Your inquiry has been sent. An agent will contact you shortly.", nil)
}
