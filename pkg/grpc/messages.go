package grpc

import (
	"encoding/json"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"trinetra.xyz/crowd-alerts/pkg/models"
)

// Request and response shapes carried inside google.protobuf.Struct. Field
// names follow the REST API.

type StatusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// AlertResponse answers SaveAlert, whose request is a models.AlertInput.
type AlertResponse struct {
	Status StatusResponse      `json:"status"`
	Alert  *models.AlertRecord `json:"alert,omitempty"`
}

type ListRequest struct {
	Sort   string `json:"sort"`
	Unread bool   `json:"unread"`
}

type AlertsResponse struct {
	Status StatusResponse       `json:"status"`
	Alerts []models.AlertRecord `json:"alerts"`
	Unread int                  `json:"unread"`
}

type AlertIDRequest struct {
	ID string `json:"id"`
}

type StatusRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type LimiterRequest struct {
	ClientID string  `json:"client_id"`
	Rate     float64 `json:"rate"`
	Burst    int     `json:"burst"`
}

type Response struct {
	Status StatusResponse `json:"status"`
}

func ok() StatusResponse {
	return StatusResponse{Success: true, Message: "OK"}
}

func failed(message string) StatusResponse {
	return StatusResponse{Success: false, Message: message}
}

// ToStruct converts any JSON-encodable value into a Struct.
func ToStruct(v any) (*structpb.Struct, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encode message")
	}
	s := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, s); err != nil {
		return nil, errors.Wrap(err, "encode message")
	}
	return s, nil
}

// FromStruct decodes s into v. A nil Struct leaves v untouched.
func FromStruct(s *structpb.Struct, v any) error {
	if s == nil {
		return nil
	}
	raw, err := protojson.Marshal(s)
	if err != nil {
		return errors.Wrap(err, "decode message")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(err, "decode message")
	}
	return nil
}
