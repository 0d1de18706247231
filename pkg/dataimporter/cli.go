package dataimporter

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/datasets"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "datasets",
		Usage: "Inspect and download the registered lab datasets",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List registered datasets",
				Action: func(c *cli.Context) error {
					datasetManager, err := managerFromCLI(c)
					if err != nil {
						return err
					}

					return WriteDatasets(os.Stdout, datasetManager.Datasets())
				},
			},
			{
				Name:  "fetch",
				Usage: "Download a registered dataset to a local file",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "output",
						Usage:    "Local path to write the dataset to",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					datasetManager, err := managerFromCLI(c)
					if err != nil {
						return err
					}

					dataset, err := datasetManager.GetDataset(c.String("id"))
					if err != nil {
						return err
					}

					source, err := datasetManager.Open(c.Context, "dataset:"+dataset.Identifier)
					if err != nil {
						return err
					}
					defer source.Close()

					output, err := os.Create(c.String("output"))
					if err != nil {
						return err
					}
					defer output.Close()

					written, err := io.Copy(output, source)
					if err != nil {
						return err
					}

					log.Info().Str("id", dataset.Identifier).Int64("bytes", written).Str("output", c.String("output")).Msg("Fetched dataset")

					return output.Close()
				},
			},
		},
	}
}

func managerFromCLI(c *cli.Context) (*manager.Manager, error) {
	conf, err := config.FromCLI(c)
	if err != nil {
		return nil, err
	}

	return manager.New(conf.Datasets, conf.DatasetDirectory)
}

func WriteDatasets(w io.Writer, registered []datasets.DataSet) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "IDENTIFIER\tFORMAT\tPROVIDER\tSOURCE")
	for _, dataset := range registered {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dataset.Identifier, dataset.Format, dataset.Provider.Name, dataset.Source)
	}

	return tw.Flush()
}
