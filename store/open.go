package store

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/jbarratt/rpsquiz/config"
)

// Open builds the store selected by cfg.Backend
func Open(ctx context.Context, cfg *config.Config, sess *session.Session) (GameStore, error) {
	switch cfg.Backend {
	case config.BackendDynamo:
		if sess == nil {
			var err error
			sess, err = session.NewSession(&aws.Config{Region: aws.String(cfg.Region)})
			if err != nil {
				return nil, fmt.Errorf("creating aws session: %w", err)
			}
		}
		return NewDynamo(dynamodb.New(sess), cfg.TableName, cfg.SessionTTL), nil
	case config.BackendRedis:
		r, err := DialRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
		if err != nil {
			return nil, err
		}
		return r, nil
	case config.BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
