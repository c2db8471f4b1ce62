package grpc

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"
	"trinetra.xyz/crowd-alerts/pkg/common"
)

// ClientKey identifies the caller for rate limiting: the x-client-id
// metadata when present, the peer address otherwise.
func ClientKey(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		for _, v := range md.Get(strings.ToLower(common.HeaderClientID)) {
			if id := strings.TrimSpace(v); id != "" {
				return id
			}
		}
	}
	if p, ok := peer.FromContext(ctx); ok && p.Addr != nil {
		return p.Addr.String()
	}
	return ""
}

func methodSet(targetMethods []string) map[string]bool {
	return common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)
}

func (s *AlertServer) allow(ctx context.Context, method string) error {
	clientKey := ClientKey(ctx)
	if !s.CheckClientLimiter(clientKey) {
		logger().Debug("Rate limited", zap.String("client", clientKey), zap.String("method", method))
		return status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
	}
	return nil
}

func (s *AlertServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targets := methodSet(targetMethods)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targets[info.FullMethod] {
			if err := s.allow(ctx, info.FullMethod); err != nil {
				return nil, err
			}
		}

		return handler(ctx, req)
	}
}

// CreateStreamRateLimitInterceptor charges one token when a stream opens.
func (s *AlertServer) CreateStreamRateLimitInterceptor(targetMethods []string) grpc.StreamServerInterceptor {
	targets := methodSet(targetMethods)

	return func(
		srv any,
		ss grpc.ServerStream,
		info *grpc.StreamServerInfo,
		handler grpc.StreamHandler,
	) error {
		if targets[info.FullMethod] {
			if err := s.allow(ss.Context(), info.FullMethod); err != nil {
				return err
			}
		}

		return handler(srv, ss)
	}
}
