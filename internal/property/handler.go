package property

import (
	"math"
	"strconv"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/normalize"
	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/review"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for property handlers.
type Handler struct {
	service Service
	logger  *zap.Logger
}

// NewHandler creates a new property handler.
func NewHandler(service Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger.Named("PropertyHandler")}
}

// RegisterRoutes sets up the property and inquiry routes.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	properties := router.Group("/properties")
	{
		properties.GET("", h.listProperties)
		properties.GET("/owner", h.listOwnerProperties)
		properties.GET("/:id", h.getProperty)
		properties.GET("/:id/reviews", h.getPropertyReviews)
		properties.POST("", h.createProperty)
		properties.PUT("/:id", h.updateProperty)
		properties.DELETE("/:id", h.deleteProperty)
	}
	router.POST("/inquiries", h.createInquiry)
}

// listProperties never fails: any store error, including a total outage that
// exhausts the retry policy, yields an empty listing with a message.
func (h *Handler) listProperties(c *gin.Context) {
	filter := parseListFilter(c)
	properties, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Listing degraded to empty result", zap.Error(err))
		common.RespondDegradedList(c, []Response{}, "Properties are temporarily unavailable. Please try again shortly.", err)
		return
	}
	common.RespondList(c, ToResponses(properties), len(properties), "")
}

// parseListFilter ignores values that do not parse.
func parseListFilter(c *gin.Context) ListFilter {
	filter := ListFilter{
		PropertyType: strings.TrimSpace(c.Query("type")),
		Status:       strings.TrimSpace(c.Query("status")),
		City:         strings.TrimSpace(c.Query("city")),
		ListingType:  strings.TrimSpace(firstQuery(c, "listingType", "listing_type")),
	}
	filter.MinPrice = floatQuery(c, "minPrice")
	filter.MaxPrice = floatQuery(c, "maxPrice")
	filter.MinBathrooms = floatQuery(c, "bathrooms")
	// bedrooms are whole numbers, so a fractional minimum rounds up
	if v := floatQuery(c, "bedrooms"); v != nil && math.Abs(*v) <= normalize.MaxInteger {
		n := int(math.Ceil(*v))
		filter.MinBedrooms = &n
	}
	return filter
}

func firstQuery(c *gin.Context, keys ...string) string {
	for _, k := range keys {
		if v := c.Query(k); v != "" {
			return v
		}
	}
	return ""
}

func floatQuery(c *gin.Context, key string) *float64 {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func (h *Handler) listOwnerProperties(c *gin.Context) {
	email := strings.TrimSpace(firstQuery(c, "ownerEmail", "owner_email", "email"))
	if email == "" {
		common.RespondWithError(c, common.NewValidationAPIError("Owner email is required.", map[string]string{
			"ownerEmail": "The ownerEmail query parameter is required.",
		}))
		return
	}
	properties, err := h.service.ListByOwner(c.Request.Context(), email)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondList(c, ToResponses(properties), len(properties), "")
}

func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		common.RespondWithError(c, common.ErrBadRequest.WithMessage("Invalid property ID format."))
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) getProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", ToResponse(p))
}

func (h *Handler) getPropertyReviews(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	reviews, err := h.service.ListReviews(c.Request.Context(), id)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "", review.ToResponses(reviews))
}

func bindBody(c *gin.Context) (normalize.Body, bool) {
	var body normalize.Body
	if err := c.ShouldBindJSON(&body); err != nil || body == nil {
		apiErr := common.ErrBadRequest.WithMessage("Request body must be a JSON object.")
		if err != nil {
			apiErr = apiErr.WithCause(err)
		}
		common.RespondWithError(c, apiErr)
		return nil, false
	}
	return body, true
}

func (h *Handler) createProperty(c *gin.Context) {
	body, ok := bindBody(c)
	if !ok {
		return
	}
	p, err := h.service.Create(c.Request.Context(), body)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Property created successfully.", ToResponse(p))
}

func (h *Handler) updateProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	body, ok := bindBody(c)
	if !ok {
		return
	}
	p, err := h.service.Update(c.Request.Context(), id, body)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property updated successfully.", ToResponse(p))
}

func (h *Handler) deleteProperty(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondOK(c, "Property deleted successfully.", nil)
}

func (h *Handler) createInquiry(c *gin.Context) {
	var req CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Create inquiry: invalid request body", zap.Error(err))
		common.RespondWithError(c, common.BindingError(err))
		return
	}
	inquiry, err := h.service.CreateInquiry(c.Request.Context(), req)
	if err != nil {
		common.RespondWithError(c, err)
		return
	}
	common.RespondCreated(c, "Inquiry submitted successfully.", gin.H{"id": inquiry.ID})
}
