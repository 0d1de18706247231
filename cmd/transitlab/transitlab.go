package main

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter"
	"github.com/travigo/transitlab/pkg/detectbias"
	"github.com/travigo/transitlab/pkg/integration"
	"github.com/travigo/transitlab/pkg/storage"
	"github.com/travigo/transitlab/pkg/synthesis"
	"github.com/travigo/transitlab/pkg/transformation"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func main() {
	// .env is optional, real environment variables win
	_ = godotenv.Load()

	if os.Getenv("TRANSITLAB_LOG_FORMAT") != "JSON" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	if os.Getenv("TRANSITLAB_DEBUG") == "YES" {
		log.Logger = log.Logger.Level(zerolog.DebugLevel)
	} else {
		log.Logger = log.Logger.Level(zerolog.InfoLevel)
	}

	app := &cli.App{
		Name:        "transitlab",
		Description: "Transit and public data engineering labs - bias detection, integration, synthesis and loading",

		Flags: []cli.Flag{
			config.ConfigFlag,
		},

		Commands: []*cli.Command{
			detectbias.RegisterCLI(),
			transformation.RegisterCLI(),
			integration.RegisterCLI(),
			synthesis.RegisterCLI(),
			storage.RegisterCLI(),
			dataimporter.RegisterCLI(),
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal().Err(err).Send()
	}
}
