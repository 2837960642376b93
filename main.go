package main

import (
	"context"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/jbarratt/rpsquiz/config"
	"github.com/jbarratt/rpsquiz/logger"
	"github.com/jbarratt/rpsquiz/notify"
	"github.com/jbarratt/rpsquiz/service"
	"github.com/jbarratt/rpsquiz/store"
)

func main() {
	cfg, err := config.Load(config.BackendDynamo)
	if err != nil {
		logger.Fatal(logger.Init("error", true), "unable to load config", "err", err)
	}
	log := logger.Init(cfg.LogLevel, cfg.LogJSON)

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.Region),
	})
	if err != nil {
		logger.Fatal(log, "unable to create session", "err", err)
	}

	st, err := store.Open(context.Background(), cfg, sess)
	if err != nil {
		logger.Fatal(log, "unable to open store", "backend", cfg.Backend, "err", err)
	}

	quiz := service.NewQuizSvc(st, cfg.Source(), log)
	svc := service.NewLambdaSvc(quiz, func(domain, stage string) notify.Notifier {
		return notify.NewAPIGWNotifier(domain, stage, sess)
	}, log)

	lambda.Start(svc.Handler)
}
