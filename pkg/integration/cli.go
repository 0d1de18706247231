package integration

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "integrate",
		Usage: "Join public datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "covid",
				Usage: "Join county COVID cases and deaths with ACS census data",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "cases",
						Usage:    "USAFacts confirmed cases CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "deaths",
						Usage:    "USAFacts deaths CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "census",
						Usage:    "ACS county census CSV",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "date-column",
						Usage: "Cumulative count column to use",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.FromCLI(c)
					if err != nil {
						return err
					}

					dateColumn := conf.Integration.DateColumn
					if c.IsSet("date-column") {
						dateColumn = c.String("date-column")
					}

					datasetManager, err := manager.New(conf.Datasets, conf.DatasetDirectory)
					if err != nil {
						return err
					}

					cases, err := datasetManager.Open(c.Context, c.String("cases"))
					if err != nil {
						return err
					}
					defer cases.Close()

					deaths, err := datasetManager.Open(c.Context, c.String("deaths"))
					if err != nil {
						return err
					}
					defer deaths.Close()

					census, err := datasetManager.Open(c.Context, c.String("census"))
					if err != nil {
						return err
					}
					defer census.Close()

					result, err := Integrate(cases, deaths, census, Options{
						DateColumn: dateColumn,
						Out:        os.Stdout,
					})
					if err != nil {
						return err
					}

					log.Info().Int("rows", result.Joined.Nrow()).Str("date", dateColumn).Msg("Integrated COVID and census data")

					return nil
				},
			},
		},
	}
}
