package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jbarratt/rpsquiz/config"
	"github.com/jbarratt/rpsquiz/console"
	"github.com/jbarratt/rpsquiz/game"
	"github.com/jbarratt/rpsquiz/logger"
	"gopkg.in/urfave/cli.v1"
)

func main() {
	app := cli.NewApp()
	app.Name = "quiz"
	app.Usage = "pick the move that wins or loses against the opponent, ten rounds"
	app.Flags = []cli.Flag{
		cli.Int64Flag{
			Name:  "seed",
			Usage: "repeat the same questions by seeding the random draws, overrides RANDOM_SEED",
		},
		cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error, overrides LOG_LEVEL (default warn)",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	// the console keeps no sessions, the store settings are only validated
	cfg, err := config.Load(config.BackendMemory)
	if err != nil {
		return err
	}
	log := logger.New(os.Stderr, logLevel(c.String("log-level"), cfg), cfg.LogJSON)

	return console.New(os.Stdin, os.Stdout, source(c.Int64("seed"), cfg), log).Run(context.Background())
}

// source prefers --seed, then RANDOM_SEED, then secure draws
func source(seed int64, cfg *config.Config) game.Source {
	if seed != 0 {
		return game.NewSeededSource(seed)
	}
	return cfg.Source()
}

// logLevel keeps the terminal quiet unless a level was asked for
func logLevel(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	// Load has already merged .env into the environment
	if os.Getenv("LOG_LEVEL") != "" {
		return cfg.LogLevel
	}
	return "warn"
}
