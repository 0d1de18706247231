package detectbias

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/travigo/transitlab/pkg/metrics"
	"github.com/travigo/transitlab/pkg/publish"
	"github.com/travigo/transitlab/pkg/stats"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "detect-bias",
		Usage: "Find vehicles whose boarding or GPS data deviates from the fleet",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "Run the boarding and GPS bias detectors",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "stops",
						Usage:    "Stop events HTML file, URL or dataset:<id>",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "breadcrumbs",
						Usage: "Breadcrumb relpos CSV file, URL or dataset:<id>",
					},
					&cli.StringFlag{
						Name:  "service-date",
						Usage: "Service date of the stop events (YYYY-MM-DD)",
					},
					&cli.Float64Flag{
						Name:  "boarding-alpha",
						Usage: "Significance threshold for the boarding detector",
					},
					&cli.Float64Flag{
						Name:  "gps-alpha",
						Usage: "Significance threshold for the GPS detector",
					},
					&cli.StringFlag{
						Name:  "alternative",
						Usage: "Binomial alternative hypothesis (two-sided, two-sided-likelihood, less, greater)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Vehicles tested in parallel",
					},
					&cli.StringFlag{
						Name:  "stops-out",
						Usage: "Write the cleaned stop events CSV here",
					},
					&cli.StringFlag{
						Name:  "gps-out",
						Usage: "Write the biased GPS vehicles CSV here",
					},
					&cli.StringFlag{
						Name:  "json-dir",
						Usage: "Write detailed JSON reports into this directory",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.FromCLI(c)
					if err != nil {
						return err
					}

					detectConfig := conf.DetectBias
					if c.IsSet("service-date") {
						detectConfig.ServiceDate = c.String("service-date")
					}
					if c.IsSet("boarding-alpha") {
						detectConfig.BoardingAlpha = c.Float64("boarding-alpha")
					}
					if c.IsSet("gps-alpha") {
						detectConfig.GPSAlpha = c.Float64("gps-alpha")
					}
					if c.IsSet("alternative") {
						detectConfig.Alternative = c.String("alternative")
					}
					if c.IsSet("workers") {
						detectConfig.Workers = c.Int("workers")
					}
					if c.IsSet("stops-out") {
						detectConfig.StopsOutput = c.String("stops-out")
					}
					if c.IsSet("gps-out") {
						detectConfig.GPSOutput = c.String("gps-out")
					}

					conf.DetectBias = detectConfig
					if err := config.Validate(conf); err != nil {
						return err
					}

					serviceDate, err := time.Parse(time.DateOnly, detectConfig.ServiceDate)
					if err != nil {
						return err
					}
					alternative, err := stats.ParseAlternative(detectConfig.Alternative)
					if err != nil {
						return err
					}

					datasetManager, err := manager.New(conf.Datasets, conf.DatasetDirectory)
					if err != nil {
						return err
					}

					collector := metrics.NewCollector("detect-bias")
					pipeline := &Pipeline{
						Manager: datasetManager,
						Out:     os.Stdout,
						Metrics: collector,
					}

					if conf.NATS.URL != "" {
						publisher, err := publish.NewNATSPublisher(conf.NATS.URL, conf.NATS.Subject, collector)
						if err != nil {
							return err
						}
						defer publisher.Close()

						pipeline.Publisher = publisher
					} else {
						log.Debug().Msg("No NATS URL configured, reports will not be published")
					}

					_, err = pipeline.Run(c.Context, Options{
						StopEvents:    c.String("stops"),
						Breadcrumbs:   c.String("breadcrumbs"),
						ServiceDate:   serviceDate,
						BoardingAlpha: detectConfig.BoardingAlpha,
						GPSAlpha:      detectConfig.GPSAlpha,
						Alternative:   alternative,
						Workers:       detectConfig.Workers,
						Spotlights:    detectConfig.Spotlights,
						StopsOutput:   detectConfig.StopsOutput,
						GPSOutput:     detectConfig.GPSOutput,
						JSONDir:       c.String("json-dir"),
					})
					if err != nil {
						return err
					}

					return collector.WriteTextfile(conf.Metrics.Textfile)
				},
			},
		},
	}
}
