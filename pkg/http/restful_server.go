package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
	"trinetra.xyz/crowd-alerts/pkg/common"
)

type RestfulServer struct {
	Server           *gin.Engine
	Alerts           *alerts.Alerts
	RateLimiterStore *alerts.RateLimiterStore
}

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameRestfulServer)
}

// ClientKey identifies the caller for rate limiting: the X-Client-ID header
// when present, the remote IP otherwise.
func ClientKey(c *gin.Context) string {
	if id := strings.TrimSpace(c.GetHeader(common.HeaderClientID)); id != "" {
		return id
	}
	return c.ClientIP()
}

func (rs *RestfulServer) GetLimiter(clientKey string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(clientKey)
	}
}

func (rs *RestfulServer) CheckClientLimiter(clientKey string) bool {
	return rs.RateLimiterStore.Allow(clientKey)
}

func (rs *RestfulServer) SetLimiter(clientKey string, clientRate float64, clientBurst int) bool {
	if rs.RateLimiterStore == nil {
		return false
	}
	rs.RateLimiterStore.SetLimiter(clientKey, rate.Limit(clientRate), clientBurst)
	return true
}

func (rs *RestfulServer) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		clientKey := ClientKey(c)
		if !rs.CheckClientLimiter(clientKey) {
			logger().Debug("Rate limited", zap.String("client", clientKey), zap.String("path", c.FullPath()))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}

func (rs *RestfulServer) Setup() {
	rs.Server.GET("/healthz", rs.HealthCheck)

	alertsGroup := rs.Server.Group("/alerts", rs.RateLimit())
	{
		alertsGroup.POST("", rs.PostAlert)
		alertsGroup.GET("", rs.GetAlerts)
		alertsGroup.DELETE("", rs.ClearAlerts)
		alertsGroup.GET("/unread-count", rs.GetUnreadCount)
		alertsGroup.GET("/watch", rs.WatchAlerts)
		alertsGroup.POST("/read", rs.MarkAllAlertsAsRead)
		alertsGroup.POST("/:id/read", rs.MarkAlertAsRead)
		alertsGroup.POST("/:id/status", rs.SetAlertStatus)
		alertsGroup.DELETE("/:id", rs.DeleteAlert)
	}

	rs.Server.POST("/clients/:client_id/limiter", rs.PostLimiter)
}
