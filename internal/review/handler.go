package review

import (
	"net/http"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for review handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new review handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("ReviewHandler")}
}

// RegisterRoutes sets up the routes for review operations.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/reviews")
	{
		reviews.GET("", h.listReviews)
		reviews.GET("/stats", h.getStats)
		reviews.GET("/:id", h.getReview)
		reviews.POST("", h.createReview)
		reviews.PUT("/:id", h.updateReview)
		reviews.DELETE("/:id", h.deleteReview)
	}
}

// propertyFilter reads propertyId (or property_id) from the query string.
func propertyFilter(c *gin.Context) (*uuid.UUID, error) {
	raw := strings.TrimSpace(c.Query("propertyId"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("property_id"))
	}
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, common.ErrBadRequest.WithMessage("Invalid property ID format.").WithCause(err)
	}
	return &id, nil
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Invalid review ID format."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) listReviews(c *gin.Context) {
	propertyID, err := propertyFilter(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	reviews, err := h.service.List(c.Request.Context(), propertyID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reviews": ToResponses(reviews),
		"total":   len(reviews),
		"stats":   ComputeStats(reviews),
	})
}

func (h *Handler) getStats(c *gin.Context) {
	propertyID, err := propertyFilter(c)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	stats, err := h.service.Stats(c.Request.Context(), propertyID)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", stats)
}

func (h *Handler) getReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rev, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponse(rev))
}

func (h *Handler) createReview(c *gin.Context) {
	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create review: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	rev, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Review submitted successfully.", ToResponse(rev))
}

func (h *Handler) updateReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Update review: invalid request body", zap.Error(err), zap.String("reviewID", id.String()))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	rev, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Review updated successfully.", ToResponse(rev))
}

func (h *Handler) deleteReview(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Review deleted successfully.", nil)
}
