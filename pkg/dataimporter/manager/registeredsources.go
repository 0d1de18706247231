package manager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/datasets"
	"gopkg.in/yaml.v3"
)

// GetRegisteredDataSets walks directory for YAML data source files. A file may
// hold several YAML documents, one data source each.
func GetRegisteredDataSets(directory string) ([]datasets.DataSet, error) {
	var registeredDatasets []datasets.DataSet

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() || filepath.Ext(path) != ".yaml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasources file")

			datasourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

			for {
				var datasource datasets.DataSource
				if err := decoder.Decode(&datasource); err != nil {
					if errors.Is(err, io.EOF) {
						break
					}
					return fmt.Errorf("decoding %s: %w", path, err)
				}

				for _, dataset := range datasource.Datasets {
					dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
					dataset.DataSourceRef = datasource.Identifier
					dataset.Provider = datasource.Provider

					if datasource.SourceAuthentication != nil && len(dataset.SourceAuthentication.Header) == 0 && len(dataset.SourceAuthentication.Query) == 0 {
						dataset.SourceAuthentication = *datasource.SourceAuthentication
					}

					registeredDatasets = append(registeredDatasets, dataset)
				}
			}

			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("loading datasources directory: %w", err)
	}

	return registeredDatasets, nil
}
