package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
	"trinetra.xyz/crowd-alerts/pkg/models"

	z "github.com/Oudwins/zog"
	"github.com/Oudwins/zog/zhttp"
)

const (
	SortRecency  = "recency"
	SortPriority = "priority"

	WatchEventName = "alerts"
)

func writeError(c *gin.Context, err error) {
	var ve *alerts.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error(), "issues": ve.Issues})
	case errors.Is(err, alerts.ErrStoreClosed):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		logger().Error("Request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (rs *RestfulServer) PostAlert(c *gin.Context) {
	var input models.AlertInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation error: " + err.Error()})
		return
	}

	record, err := rs.Alerts.Store.SaveAlert(c.Request.Context(), &input)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

type ListRequest struct {
	Sort   string `json:"sort" query:"sort"`
	Unread bool   `json:"unread" query:"unread"`
}

var listRequestSchema = z.Struct(z.Shape{
	"Sort":   z.String().Default(SortRecency).OneOf([]string{SortRecency, SortPriority}),
	"Unread": z.Bool().Default(false),
})

func (rs *RestfulServer) GetAlerts(c *gin.Context) {
	var req ListRequest
	if err := listRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	records, err := rs.Alerts.Store.GetAllAlerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Unread {
		records = alerts.FilterUnread(records)
	}
	if req.Sort == SortPriority {
		records = alerts.SortByPriority(records)
	} else {
		records = alerts.SortByRecency(records)
	}

	c.JSON(http.StatusOK, records)
}

func (rs *RestfulServer) GetUnreadCount(c *gin.Context) {
	records, err := rs.Alerts.Store.GetAllAlerts(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"unread": alerts.CountUnread(records)})
}

func (rs *RestfulServer) MarkAlertAsRead(c *gin.Context) {
	if err := rs.Alerts.Store.MarkAlertAsRead(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) MarkAllAlertsAsRead(c *gin.Context) {
	if err := rs.Alerts.Store.MarkAllAlertsAsRead(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

type StatusRequest struct {
	Status string `json:"status" zog:"status"`
}

var statusRequestSchema = z.Struct(z.Shape{
	"Status": z.String().Required().OneOf(models.AlertStatuses),
})

func (rs *RestfulServer) SetAlertStatus(c *gin.Context) {
	var req StatusRequest
	if err := statusRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if err := rs.Alerts.Store.SetAlertStatus(c.Request.Context(), c.Param("id"), models.AlertStatus(req.Status)); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) DeleteAlert(c *gin.Context) {
	if err := rs.Alerts.Store.DeleteAlert(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) ClearAlerts(c *gin.Context) {
	if err := rs.Alerts.Store.ClearAllAlerts(c.Request.Context()); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// WatchAlerts streams the full alert list as server-sent events, one
// "alerts" event per change, until the client goes away.
func (rs *RestfulServer) WatchAlerts(c *gin.Context) {
	ch, err := rs.Alerts.Store.Watch(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}

	clientKey := ClientKey(c)
	logger().Info("Watch started", zap.String("client", clientKey))
	defer logger().Info("Watch ended", zap.String("client", clientKey))

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Stream(func(w io.Writer) bool {
		snapshot, ok := <-ch
		if !ok {
			return false
		}
		c.SSEvent(WatchEventName, snapshot)
		return true
	})
}

type LimiterRequest struct {
	Rate  float64 `json:"rate"`
	Burst int     `json:"burst"`
}

var limiterRequestSchema = z.Struct(z.Shape{
	"rate":  z.Float64().Required().GTE(0),
	"burst": z.Int().Required().GTE(0),
})

func (rs *RestfulServer) PostLimiter(c *gin.Context) {
	clientID := c.Param("client_id")

	var req LimiterRequest
	if err := limiterRequestSchema.Parse(zhttp.Request(c.Request), &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err})
		return
	}

	if !rs.SetLimiter(clientID, req.Rate, req.Burst) {
		c.JSON(http.StatusConflict, gin.H{"error": "rate limiter is not enabled"})
		return
	}

	c.Status(http.StatusOK)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
