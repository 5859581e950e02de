package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// CORS allows the configured frontends. Unknown origins are still allowed so
// older deployments of the site keep working, but each one is logged.
func CORS(allowed []string, logger *zap.Logger) gin.HandlerFunc {
	known := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		known[origin] = struct{}{}
	}

	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			if _, ok := known[origin]; !ok {
				logger.Warn("CORS request from unlisted origin allowed", zap.String("origin", origin))
			}
			return true
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	return cors.New(corsConfig)
}
