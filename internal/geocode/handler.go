package geocode

import (
	"errors"
	"strings"

	"github.com/SaiYerra0926/pittmetrorealty-sub000/internal/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler struct holds dependencies for geocoding handlers.
type Handler struct {
	geocoder Geocoder
	logger   *zap.Logger
}

// NewHandler creates a new geocoding handler.
func NewHandler(geocoder Geocoder, logger *zap.Logger) *Handler {
	return &Handler{geocoder: geocoder, logger: logger.Named("GeocodeHandler")}
}

// RegisterRoutes sets up the geocoding route.
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/geocode", h.geocode)
}

func (h *Handler) geocode(c *gin.Context) {
	address := strings.TrimSpace(c.Query("address"))
	if address == "" {
		common.RespondWithError(c, common.NewValidationAPIError("Address is required.", map[string]string{
			"address": "The address query parameter is required.",
		}))
		return
	}
	result, err := h.geocoder.Geocode(c.Request.Context(), address)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			common.RespondWithError(c, common.ErrNotFound.WithMessage("No location found for that address."))
			return
		}
		h.logger.Warn("Geocoding failed", zap.String("address", address), zap.Error(err))
		common.RespondWithError(c, common.ErrBadGateway.WithMessage("Geocoding service unavailable.").WithCause(err))
		return
	}
	common.RespondOK(c, "", result)
}
