package grpc

import (
	"golang.org/x/time/rate"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
)

type AlertServer struct {
	Alerts           *alerts.Alerts
	RateLimiterStore *alerts.RateLimiterStore
}

var _ AlertServiceServer = (*AlertServer)(nil)

func (s *AlertServer) GetLimiter(clientKey string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(clientKey)
	}
}

func (s *AlertServer) CheckClientLimiter(clientKey string) bool {
	return s.RateLimiterStore.Allow(clientKey)
}

// LimitedMethods are the methods rate limited per client by default.
var LimitedMethods = []string{
	AlertService_SaveAlert_FullMethodName,
	AlertService_GetAllAlerts_FullMethodName,
	AlertService_MarkAlertAsRead_FullMethodName,
	AlertService_MarkAllAlertsAsRead_FullMethodName,
	AlertService_DeleteAlert_FullMethodName,
	AlertService_ClearAllAlerts_FullMethodName,
	AlertService_SetAlertStatus_FullMethodName,
	AlertService_WatchAlerts_FullMethodName,
}
