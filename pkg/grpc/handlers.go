package grpc

import (
	"context"
	"errors"
	"fmt"

	z "github.com/Oudwins/zog"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"trinetra.xyz/crowd-alerts/pkg/alerts"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

const (
	SortRecency  = "recency"
	SortPriority = "priority"
)

func logger() *zap.Logger {
	return common.GetLoggerWith(common.LoggerNameGrpcServer)
}

func validateAlertID(id *string) z.ZogIssueList {
	var alertIDValidator = z.String().Min(1).Required()
	return alertIDValidator.Validate(id)
}

func respond(v any) (*structpb.Struct, error) {
	s, err := ToStruct(v)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return s, nil
}

func invalid(err any) StatusResponse {
	return failed(fmt.Sprintf("validation error: %v", err))
}

// storeFailure reports a store error in-band. Validation errors already read
// "validation error: ...".
func storeFailure(method string, err error) StatusResponse {
	if !alerts.IsValidationError(err) {
		logger().Error("Request failed", zap.String("method", method), zap.Error(err))
	}
	return failed(err.Error())
}

func (s *AlertServer) SaveAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var input models.AlertInput
	if err := FromStruct(req, &input); err != nil {
		return respond(AlertResponse{Status: invalid(err)})
	}

	record, err := s.Alerts.Store.SaveAlert(ctx, &input)
	if err != nil {
		return respond(AlertResponse{Status: storeFailure("SaveAlert", err)})
	}

	return respond(AlertResponse{Status: ok(), Alert: record})
}

var listRequestValidator = z.Struct(z.Shape{
	"Sort": z.String().Required().OneOf([]string{SortRecency, SortPriority}),
})

func (s *AlertServer) GetAllAlerts(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var listReq ListRequest
	if err := FromStruct(req, &listReq); err != nil {
		return respond(AlertsResponse{Status: invalid(err)})
	}
	if listReq.Sort == "" {
		listReq.Sort = SortRecency
	}
	if err := listRequestValidator.Validate(&listReq); err != nil {
		return respond(AlertsResponse{Status: invalid(err)})
	}

	records, err := s.Alerts.Store.GetAllAlerts(ctx)
	if err != nil {
		return respond(AlertsResponse{Status: storeFailure("GetAllAlerts", err)})
	}

	unread := alerts.CountUnread(records)
	if listReq.Unread {
		records = alerts.FilterUnread(records)
	}
	if listReq.Sort == SortPriority {
		records = alerts.SortByPriority(records)
	} else {
		records = alerts.SortByRecency(records)
	}

	return respond(AlertsResponse{Status: ok(), Alerts: records, Unread: unread})
}

func (s *AlertServer) MarkAlertAsRead(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var idReq AlertIDRequest
	if err := FromStruct(req, &idReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}
	if err := validateAlertID(&idReq.ID); err != nil {
		return respond(Response{Status: invalid(err)})
	}

	if err := s.Alerts.Store.MarkAlertAsRead(ctx, idReq.ID); err != nil {
		return respond(Response{Status: storeFailure("MarkAlertAsRead", err)})
	}

	return respond(Response{Status: ok()})
}

func (s *AlertServer) MarkAllAlertsAsRead(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := s.Alerts.Store.MarkAllAlertsAsRead(ctx); err != nil {
		return respond(Response{Status: storeFailure("MarkAllAlertsAsRead", err)})
	}

	return respond(Response{Status: ok()})
}

func (s *AlertServer) DeleteAlert(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var idReq AlertIDRequest
	if err := FromStruct(req, &idReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}
	if err := validateAlertID(&idReq.ID); err != nil {
		return respond(Response{Status: invalid(err)})
	}

	if err := s.Alerts.Store.DeleteAlert(ctx, idReq.ID); err != nil {
		return respond(Response{Status: storeFailure("DeleteAlert", err)})
	}

	return respond(Response{Status: ok()})
}

func (s *AlertServer) ClearAllAlerts(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	if err := s.Alerts.Store.ClearAllAlerts(ctx); err != nil {
		return respond(Response{Status: storeFailure("ClearAllAlerts", err)})
	}

	return respond(Response{Status: ok()})
}

var statusRequestValidator = z.Struct(z.Shape{
	"ID":     z.String().Min(1).Required(),
	"Status": z.String().Required().OneOf(models.AlertStatuses),
})

func (s *AlertServer) SetAlertStatus(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var statusReq StatusRequest
	if err := FromStruct(req, &statusReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}
	if err := statusRequestValidator.Validate(&statusReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}

	if err := s.Alerts.Store.SetAlertStatus(ctx, statusReq.ID, models.AlertStatus(statusReq.Status)); err != nil {
		return respond(Response{Status: storeFailure("SetAlertStatus", err)})
	}

	return respond(Response{Status: ok()})
}

var limiterRequestValidator = z.Struct(z.Shape{
	"ClientID": z.String().Min(1).Required(),
	"Rate":     z.Float64().Required(),
	"Burst":    z.Int().Required(),
})

func (s *AlertServer) PostLimiter(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var limiterReq LimiterRequest
	if err := FromStruct(req, &limiterReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}
	if err := limiterRequestValidator.Validate(&limiterReq); err != nil {
		return respond(Response{Status: invalid(err)})
	}

	if s.RateLimiterStore == nil {
		return respond(Response{Status: failed("rate limiter is not enabled. No effect.")})
	}

	s.RateLimiterStore.SetLimiter(limiterReq.ClientID, rate.Limit(limiterReq.Rate), limiterReq.Burst)
	return respond(Response{Status: ok()})
}

// WatchAlerts sends the current alert list, then the full list again after
// every change, until the client cancels or the store closes.
func (s *AlertServer) WatchAlerts(_ *emptypb.Empty, stream AlertService_WatchAlertsServer) error {
	ctx := stream.Context()

	ch, err := s.Alerts.Store.Watch(ctx)
	if err != nil {
		if errors.Is(err, alerts.ErrStoreClosed) {
			return status.Error(codes.Unavailable, err.Error())
		}
		return status.Error(codes.Internal, err.Error())
	}

	clientKey := ClientKey(ctx)
	logger().Info("Watch started", zap.String("client", clientKey))
	defer logger().Info("Watch ended", zap.String("client", clientKey))

	for snapshot := range ch {
		msg, err := ToStruct(AlertsResponse{
			Status: ok(),
			Alerts: snapshot,
			Unread: alerts.CountUnread(snapshot),
		})
		if err != nil {
			return status.Error(codes.Internal, err.Error())
		}
		if err := stream.Send(msg); err != nil {
			return err
		}
	}

	return ctx.Err()
}
