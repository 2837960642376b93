package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jbarratt/rpsquiz/config"
	"github.com/jbarratt/rpsquiz/devserver"
	"github.com/jbarratt/rpsquiz/logger"
	"github.com/jbarratt/rpsquiz/notify"
	"github.com/jbarratt/rpsquiz/service"
	"github.com/jbarratt/rpsquiz/store"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "devserver"
	app.Usage = "serve the quiz websocket API locally"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "addr",
			Usage: "listen address, overrides DEV_ADDR",
		},
	}
	app.Action = serve

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.Load(config.BackendMemory)
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.DevAddr = addr
	}
	log := logger.Init(cfg.LogLevel, cfg.LogJSON)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(st); err != nil {
			log.Warn("unable to close store", "err", err)
		}
	}()

	quiz := service.NewQuizSvc(st, cfg.Source(), log)
	srv := &http.Server{
		Addr:              cfg.DevAddr,
		Handler:           devserver.New(quiz, notify.NewHub(), log).Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	// closed once Shutdown has returned
	idle := make(chan struct{})
	go func() {
		defer close(idle)
		<-ctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", "err", err)
		}
	}()

	log.Info("server started", "addr", cfg.DevAddr, "store", cfg.Backend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-idle
	return nil
}
