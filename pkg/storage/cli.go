package storage

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/census"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/travigo/transitlab/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "storage",
		Usage: "Load datasets into a relational database",
		Subcommands: []*cli.Command{
			{
				Name:  "load",
				Usage: "Load ACS census tracts into a table",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "census",
						Usage:    "ACS census tract CSV file, URL or dataset:<id>",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "driver",
						Usage: "Database driver (postgres, sqlite)",
					},
					&cli.StringFlag{
						Name:  "dsn",
						Usage: "Database connection string",
					},
					&cli.StringFlag{
						Name:  "table",
						Usage: "Table to (re)create",
					},
					&cli.StringFlag{
						Name:  "method",
						Usage: "Load method (insert, copy)",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.FromCLI(c)
					if err != nil {
						return err
					}

					for flag, value := range map[string]*string{
						"driver": &conf.Storage.Driver,
						"dsn":    &conf.Storage.DSN,
						"table":  &conf.Storage.Table,
						"method": &conf.Storage.Method,
					} {
						if c.IsSet(flag) {
							*value = c.String(flag)
						}
					}
					if err := config.Validate(conf); err != nil {
						return err
					}

					datasetManager, err := manager.New(conf.Datasets, conf.DatasetDirectory)
					if err != nil {
						return err
					}

					file := &census.TractFile{}
					if err := datasetManager.Parse(c.Context, c.String("census"), file); err != nil {
						return err
					}

					collector := metrics.NewCollector("storage-load")
					collector.ObserveRows("census", file.Counts())

					store, err := Connect(c.Context, conf.Storage.Driver, conf.Storage.DSN)
					if err != nil {
						return err
					}
					defer store.Close(c.Context)

					result, err := Load(c.Context, store, conf.Storage.Table, file.Tracts, conf.Storage.Method)
					if err != nil {
						return err
					}
					fmt.Fprintf(os.Stdout, "Loaded %d rows in %s\n", result.Rows, result.Elapsed)

					validation, err := store.Validate(c.Context, conf.Storage.Table)
					if err != nil {
						return err
					}
					validation.Write(os.Stdout)

					log.Info().Str("table", conf.Storage.Table).Int64("states", validation.States).Msg("Validated census table")

					return collector.WriteTextfile(conf.Metrics.Textfile)
				},
			},
		},
	}
}
