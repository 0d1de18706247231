package synthesis

import (
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/employees"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/travigo/transitlab/pkg/metrics"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "synthesize",
		Usage: "Generate synthetic datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "employees",
				Usage: "Generate a fake employee dataset with a biased sample and a perturbed copy",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "departments",
						Usage:    "Departments CSV with each department's share of employees",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "roles",
						Usage:    "Roles CSV with each role's salary range",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "employees",
						Usage: "Number of employees to generate",
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "Write the generated employees CSV here",
					},
				},
				Action: func(c *cli.Context) error {
					conf, err := config.FromCLI(c)
					if err != nil {
						return err
					}

					synthesisConfig := conf.Synthesis
					if c.IsSet("employees") {
						synthesisConfig.Employees = c.Int("employees")
					}
					if c.IsSet("seed") {
						synthesisConfig.Seed = c.Int64("seed")
					}
					if c.IsSet("output") {
						synthesisConfig.Output = c.String("output")
					}

					referenceDate, err := time.Parse(time.DateOnly, synthesisConfig.ReferenceDate)
					if err != nil {
						return err
					}
					maxHireDate, err := time.Parse(time.DateOnly, synthesisConfig.MaxHireDate)
					if err != nil {
						return err
					}

					datasetManager, err := manager.New(conf.Datasets, conf.DatasetDirectory)
					if err != nil {
						return err
					}

					departments := &employees.DepartmentsFile{}
					if err := datasetManager.Parse(c.Context, c.String("departments"), departments); err != nil {
						return err
					}
					roles := &employees.RolesFile{}
					if err := datasetManager.Parse(c.Context, c.String("roles"), roles); err != nil {
						return err
					}

					started := time.Now()
					collector := metrics.NewCollector("synthesize-employees")

					generated, err := Generate(Options{
						Employees:     synthesisConfig.Employees,
						Seed:          synthesisConfig.Seed,
						ReferenceDate: referenceDate,
						MaxHireDate:   maxHireDate,
					}, departments.Departments, roles.Roles)
					if err != nil {
						return err
					}

					if err := WriteCSVFile(synthesisConfig.Output, generated); err != nil {
						return err
					}
					log.Info().Str("path", synthesisConfig.Output).Msg("Saved employees")

					sample, err := BiasedSample(generated, SampleOptions{
						Size:          synthesisConfig.SampleSize,
						Seed:          synthesisConfig.Seed + 1,
						AgeMin:        synthesisConfig.BiasedAgeMin,
						AgeMax:        synthesisConfig.BiasedAgeMax,
						Weight:        synthesisConfig.BiasedWeight,
						ReferenceDate: referenceDate,
					})
					if err != nil {
						return err
					}

					perturbed, err := Perturb(generated, synthesisConfig.NoiseFraction, synthesisConfig.Seed+2)
					if err != nil {
						return err
					}

					err = Summarize(os.Stdout,
						[]string{"employees", "biased sample", "perturbed"},
						[][]Employee{generated, sample, perturbed},
						referenceDate,
					)
					if err != nil {
						return err
					}

					collector.ObserveRun(started)

					return collector.WriteTextfile(conf.Metrics.Textfile)
				},
			},
		},
	}
}
