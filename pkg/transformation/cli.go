package transformation

import (
	"os"

	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/trips"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/travigo/transitlab/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "transform",
		Usage: "Clean and enrich trip breadcrumb data",
		Subcommands: []*cli.Command{
			{
				Name:  "speed",
				Usage: "Derive vehicle speed from a trip breadcrumb CSV",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "trips",
						Usage:    "Trip breadcrumb CSV file, URL or dataset:<id>",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.FromCLI(c)
					if err != nil {
						return err
					}

					datasetManager, err := manager.New(conf.Datasets, conf.DatasetDirectory)
					if err != nil {
						return err
					}

					file := &trips.File{}
					if err := datasetManager.Parse(c.Context, c.String("trips"), file); err != nil {
						return err
					}

					collector := metrics.NewCollector("transform-speed")
					collector.ObserveRows("trips", file.Counts())

					SummariseSpeed(DeriveSpeed(file.Readings)).Write(os.Stdout)

					return collector.WriteTextfile(conf.Metrics.Textfile)
				},
			},
		},
	}
}
