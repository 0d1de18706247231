package manager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/dataimporter/datasets"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
)

const datasetReferencePrefix = "dataset:"

var ErrDatasetNotFound = errors.New("dataset could not be found")

type Manager struct {
	datasets []datasets.DataSet
	client   *http.Client
}

// New registers the configured datasets plus any found in directory
func New(configured []datasets.DataSet, directory string) (*Manager, error) {
	registered := append([]datasets.DataSet{}, configured...)

	if directory != "" {
		fromDirectory, err := GetRegisteredDataSets(directory)
		if err != nil {
			return nil, err
		}

		registered = append(registered, fromDirectory...)
	}

	return &Manager{
		datasets: registered,
		client:   &http.Client{},
	}, nil
}

func (m *Manager) Datasets() []datasets.DataSet {
	return m.datasets
}

func (m *Manager) GetDataset(identifier string) (datasets.DataSet, error) {
	for _, dataset := range m.datasets {
		if dataset.Identifier == identifier {
			return dataset, nil
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, identifier)
}

// Open resolves source to a readable stream. Source can be a registered
// dataset reference (dataset:<id>), a URL or a local path.
func (m *Manager) Open(ctx context.Context, source string) (io.ReadCloser, error) {
	var authentication datasets.SourceAuthentication

	if identifier, isReference := strings.CutPrefix(source, datasetReferencePrefix); isReference {
		dataset, err := m.GetDataset(identifier)
		if err != nil {
			return nil, err
		}

		log.Debug().Str("dataset", dataset.Identifier).Str("source", dataset.Source).Msg("Resolved dataset")

		source = dataset.Source
		authentication = dataset.SourceAuthentication
	}

	if isValidUrl(source) {
		tempFile, err := m.tempDownloadFile(ctx, source, authentication)
		if err != nil {
			return nil, err
		}

		return &removeOnClose{File: tempFile}, nil
	}

	return os.Open(source)
}

// Parse opens source and hands it to format
func (m *Manager) Parse(ctx context.Context, source string, format formats.Format) error {
	file, err := m.Open(ctx, source)
	if err != nil {
		return err
	}
	defer file.Close()

	log.Info().Str("source", source).Msg("Loading file")

	if err := format.ParseFile(file); err != nil {
		return fmt.Errorf("parsing %s: %w", source, err)
	}

	return nil
}

func isValidUrl(toTest string) bool {
	_, err := url.ParseRequestURI(toTest)
	if err != nil {
		return false
	}

	u, err := url.Parse(toTest)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return false
	}

	return true
}

func (m *Manager) tempDownloadFile(ctx context.Context, source string, authentication datasets.SourceAuthentication) (*os.File, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "curl/7.54.1")

	for key, value := range authentication.Header {
		req.Header.Set(key, value)
	}
	if len(authentication.Query) > 0 {
		query := req.URL.Query()
		for key, value := range authentication.Query {
			query.Set(key, value)
		}
		req.URL.RawQuery = query.Encode()
	}

	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading %s: %w", source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading %s: unexpected status %s", source, resp.Status)
	}

	tmpFile, err := os.CreateTemp(os.TempDir(), "transitlab-data-importer-")
	if err != nil {
		return nil, fmt.Errorf("creating temporary file: %w", err)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, fmt.Errorf("downloading %s: %w", source, err)
	}

	if _, err := tmpFile.Seek(0, io.SeekStart); err != nil {
		tmpFile.Close()
		os.Remove(tmpFile.Name())
		return nil, err
	}

	return tmpFile, nil
}

type removeOnClose struct {
	*os.File
}

func (r *removeOnClose) Close() error {
	err := r.File.Close()
	os.Remove(r.File.Name())

	return err
}
