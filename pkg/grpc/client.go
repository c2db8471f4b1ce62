package grpc

import (
	"context"
	"io"

	"github.com/pkg/errors"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"trinetra.xyz/crowd-alerts/pkg/common"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

// ErrRequestFailed is returned when the server answered with
// status.success=false. The wrapped message is the server's.
var ErrRequestFailed = errors.New("request failed")

// Client wraps AlertServiceClient with model types and turns in-band
// failures into errors.
type Client struct {
	Raw      AlertServiceClient
	ClientID string
}

func NewClient(cc grpc.ClientConnInterface, clientID string) *Client {
	return &Client{Raw: NewAlertServiceClient(cc), ClientID: clientID}
}

func (c *Client) outgoing(ctx context.Context) context.Context {
	if c.ClientID == "" {
		return ctx
	}
	return metadata.AppendToOutgoingContext(ctx, common.HeaderClientID, c.ClientID)
}

func checkStatus(st StatusResponse) error {
	if !st.Success {
		return errors.Wrap(ErrRequestFailed, st.Message)
	}
	return nil
}

func (c *Client) SaveAlert(ctx context.Context, input *models.AlertInput) (*models.AlertRecord, error) {
	req, err := ToStruct(input)
	if err != nil {
		return nil, err
	}
	resp, err := c.Raw.SaveAlert(c.outgoing(ctx), req)
	if err != nil {
		return nil, err
	}
	var out AlertResponse
	if err := FromStruct(resp, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status); err != nil {
		return nil, err
	}
	return out.Alert, nil
}

func (c *Client) GetAllAlerts(ctx context.Context, listReq ListRequest) (*AlertsResponse, error) {
	req, err := ToStruct(listReq)
	if err != nil {
		return nil, err
	}
	resp, err := c.Raw.GetAllAlerts(c.outgoing(ctx), req)
	if err != nil {
		return nil, err
	}
	var out AlertsResponse
	if err := FromStruct(resp, &out); err != nil {
		return nil, err
	}
	if err := checkStatus(out.Status); err != nil {
		return nil, err
	}
	return &out, nil
}

// done decodes a plain status response.
func done(resp *structpb.Struct, err error) error {
	if err != nil {
		return err
	}
	var out Response
	if err := FromStruct(resp, &out); err != nil {
		return err
	}
	return checkStatus(out.Status)
}

func (c *Client) idRequest(ctx context.Context, id string,
	method func(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error),
) error {
	req, err := ToStruct(AlertIDRequest{ID: id})
	if err != nil {
		return err
	}
	return done(method(c.outgoing(ctx), req))
}

func (c *Client) MarkAlertAsRead(ctx context.Context, id string) error {
	return c.idRequest(ctx, id, c.Raw.MarkAlertAsRead)
}

func (c *Client) DeleteAlert(ctx context.Context, id string) error {
	return c.idRequest(ctx, id, c.Raw.DeleteAlert)
}

func (c *Client) MarkAllAlertsAsRead(ctx context.Context) error {
	return done(c.Raw.MarkAllAlertsAsRead(c.outgoing(ctx), &emptypb.Empty{}))
}

func (c *Client) ClearAllAlerts(ctx context.Context) error {
	return done(c.Raw.ClearAllAlerts(c.outgoing(ctx), &emptypb.Empty{}))
}

func (c *Client) SetAlertStatus(ctx context.Context, id string, alertStatus models.AlertStatus) error {
	req, err := ToStruct(StatusRequest{ID: id, Status: string(alertStatus)})
	if err != nil {
		return err
	}
	return done(c.Raw.SetAlertStatus(c.outgoing(ctx), req))
}

func (c *Client) PostLimiter(ctx context.Context, clientID string, clientRate float64, clientBurst int) error {
	req, err := ToStruct(LimiterRequest{ClientID: clientID, Rate: clientRate, Burst: clientBurst})
	if err != nil {
		return err
	}
	return done(c.Raw.PostLimiter(c.outgoing(ctx), req))
}

// WatchAlerts streams snapshots until ctx ends or the server closes the
// stream. The returned channel is closed afterwards; the error channel
// receives the terminal error, if any.
func (c *Client) WatchAlerts(ctx context.Context) (<-chan []models.AlertRecord, <-chan error, error) {
	stream, err := c.Raw.WatchAlerts(c.outgoing(ctx), &emptypb.Empty{})
	if err != nil {
		return nil, nil, err
	}

	snapshots := make(chan []models.AlertRecord)
	errs := make(chan error, 1)
	go func() {
		defer close(snapshots)
		defer close(errs)
		for {
			msg, err := stream.Recv()
			if err != nil {
				if err != io.EOF {
					errs <- err
				}
				return
			}
			var out AlertsResponse
			if err := FromStruct(msg, &out); err != nil {
				errs <- err
				return
			}
			select {
			case snapshots <- out.Alerts:
			case <-ctx.Done():
				return
			}
		}
	}()

	return snapshots, errs, nil
}
