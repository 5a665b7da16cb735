package handlers

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/upb/cognito-auth-gateway/auth"
	"github.com/upb/cognito-auth-gateway/middleware"
)

// LambdaHandler is the function registered with lambda.Start
type LambdaHandler func(ctx context.Context, raw json.RawMessage) (events.APIGatewayV2HTTPResponse, error)

// NewLambdaHandler adapts gw to the Lambda runtime. Any JSON event is
// accepted; a non-object event is handled as an empty one. The returned error
// is always nil so API Gateway always receives a well-formed response.
func NewLambdaHandler(gw *auth.Gateway) LambdaHandler {
	return func(ctx context.Context, raw json.RawMessage) (events.APIGatewayV2HTTPResponse, error) {
		if lc, ok := lambdacontext.FromContext(ctx); ok && lc.AwsRequestID != "" {
			ctx = middleware.WithRequestID(ctx, lc.AwsRequestID)
		}

		resp := gw.Handle(ctx, decodeEvent(raw))

		return events.APIGatewayV2HTTPResponse{
			StatusCode: resp.StatusCode,
			Headers:    resp.Headers,
			Body:       resp.Body,
		}, nil
	}
}

func decodeEvent(raw json.RawMessage) auth.Event {
	var event auth.Event
	if err := json.Unmarshal(raw, &event); err != nil || event == nil {
		return auth.Event{}
	}
	return event
}
