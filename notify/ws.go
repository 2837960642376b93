// Package notify pushes quiz state out to connected players
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi"
	"github.com/aws/aws-sdk-go/service/apigatewaymanagementapi/apigatewaymanagementapiiface"
)

type Notifier interface {
	Send(ctx context.Context, destination string, body []byte) error
}

// APIGWNotifier posts to websocket connections held by API Gateway
type APIGWNotifier struct {
	c apigatewaymanagementapiiface.ApiGatewayManagementApiAPI
}

// NewAPIGWNotifier builds a notifier for the API's domain and stage
func NewAPIGWNotifier(domain, stage string, sess *session.Session) *APIGWNotifier {
	baseURL := fmt.Sprintf("https://%s/%s/", domain, stage)

	return &APIGWNotifier{
		c: apigatewaymanagementapi.New(sess, aws.NewConfig().WithEndpoint(baseURL)),
	}
}

// NewAPIGWNotifierWithClient wraps an existing management API client
func NewAPIGWNotifierWithClient(c apigatewaymanagementapiiface.ApiGatewayManagementApiAPI) *APIGWNotifier {
	return &APIGWNotifier{c: c}
}

// Send sends a message via API Gateway to the identified connection
func (n *APIGWNotifier) Send(ctx context.Context, destination string, body []byte) error {
	input := &apigatewaymanagementapi.PostToConnectionInput{
		ConnectionId: aws.String(destination),
		Data:         body,
	}

	if _, err := n.c.PostToConnectionWithContext(ctx, input); err != nil {
		return fmt.Errorf("posting to connection %s: %w", destination, err)
	}
	return nil
}
