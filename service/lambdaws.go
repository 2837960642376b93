package service

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/jbarratt/rpsquiz/notify"
)

// NotifierFactory builds a notifier for the API Gateway domain and stage of a request
type NotifierFactory func(domain, stage string) notify.Notifier

type LambdaSvc struct {
	quiz     *QuizSvc
	notifier NotifierFactory
	log      *slog.Logger
}

// NewLambdaSvc returns a new lambda service
func NewLambdaSvc(quiz *QuizSvc, notifier NotifierFactory, log *slog.Logger) *LambdaSvc {
	return &LambdaSvc{
		quiz:     quiz,
		notifier: notifier,
		log:      log,
	}
}

// Handler routes API Gateway websocket events
func (s *LambdaSvc) Handler(ctx context.Context, e events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	switch e.RequestContext.RouteKey {
	case "$connect":
		return s.Connect(ctx, e)
	case "$disconnect":
		return s.Disconnect(ctx, e)
	default:
		return s.Default(ctx, e)
	}
}

// Connect is currently a no-op
func (s *LambdaSvc) Connect(_ context.Context, e events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	s.log.Debug("connected", "connection", e.RequestContext.ConnectionID)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
	}, nil
}

// Disconnect leaves the quiz to expire through the store's TTL,
// the connection could come back and ask for its state.
func (s *LambdaSvc) Disconnect(_ context.Context, e events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	s.log.Debug("disconnected", "connection", e.RequestContext.ConnectionID)
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
	}, nil
}

// Default handles player messages
func (s *LambdaSvc) Default(ctx context.Context, e events.APIGatewayWebsocketProxyRequest) (events.APIGatewayProxyResponse, error) {
	n := s.notifier(e.RequestContext.DomainName, e.RequestContext.Stage)

	_, err := s.quiz.Dispatch(ctx, n, e.RequestContext.ConnectionID, []byte(e.Body))
	switch {
	case err == nil:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusOK}, nil
	case errors.Is(err, ErrBadRequest):
		return events.APIGatewayProxyResponse{StatusCode: http.StatusBadRequest}, nil
	default:
		return events.APIGatewayProxyResponse{StatusCode: http.StatusInternalServerError}, nil
	}
}
