package detectbias

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/bias"
	"github.com/travigo/transitlab/pkg/config"
	"github.com/travigo/transitlab/pkg/dataimporter/datasets"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/breadcrumbs"
	"github.com/travigo/transitlab/pkg/dataimporter/formats/stopevents"
	"github.com/travigo/transitlab/pkg/dataimporter/manager"
	"github.com/travigo/transitlab/pkg/metrics"
	"github.com/travigo/transitlab/pkg/report"
	"github.com/travigo/transitlab/pkg/stats"
	"github.com/travigo/transitlab/pkg/transit"
	"github.com/travigo/transitlab/pkg/util"
)

var ErrNoStopEvents = errors.New("no stop events to analyse")

type ReportPublisher interface {
	PublishReport(ctx context.Context, report *bias.Report) error
}

type Options struct {
	// StopEvents is required, Breadcrumbs skips the GPS pass when empty
	StopEvents  string
	Breadcrumbs string
	ServiceDate time.Time

	BoardingAlpha float64
	GPSAlpha      float64
	Alternative   stats.Alternative
	Workers       int
	Spotlights    []config.Spotlight

	StopsOutput string
	GPSOutput   string
	JSONDir     string
}

type Pipeline struct {
	Manager *manager.Manager
	Out     io.Writer

	// Optional
	Metrics   *metrics.Collector
	Publisher ReportPublisher
}

type Result struct {
	RunID      string
	Summary    Summary
	Spotlights []SpotlightSummary

	Boarding *bias.Report
	GPS      *bias.Report

	GPSFileWritten bool
}

func (p *Pipeline) Run(ctx context.Context, options Options) (*Result, error) {
	started := time.Now()
	result := &Result{RunID: uuid.NewString()}

	log.Info().Str("run", result.RunID).Str("stops", options.StopEvents).Msg("Starting bias detection")

	events, err := p.loadStopEvents(ctx, options, result.RunID)
	if err != nil {
		return nil, err
	}

	if options.StopsOutput != "" {
		if err := writeStops(options.StopsOutput, events); err != nil {
			return nil, err
		}
	}

	result.Summary = Summarize(events)
	result.Summary.Write(p.Out)

	for _, spotlight := range options.Spotlights {
		summary, err := EvaluateSpotlight(spotlight, events)
		if err != nil {
			return nil, err
		}

		summary.Write(p.Out)
		result.Spotlights = append(result.Spotlights, summary)
	}

	result.Boarding, err = p.detectBoarding(events, options, result.RunID)
	if err != nil {
		return nil, err
	}

	if options.Breadcrumbs != "" {
		result.GPS, err = p.detectPositions(ctx, options, result.RunID)
		if err != nil {
			return nil, err
		}

		result.GPSFileWritten, err = report.WriteCSVFile(options.GPSOutput, result.GPS.Results)
		if err != nil {
			return nil, fmt.Errorf("writing %s: %w", options.GPSOutput, err)
		}
		if result.GPSFileWritten {
			log.Info().Str("path", options.GPSOutput).Int("vehicles", len(result.GPS.Results)).Msg("Saved biased GPS vehicles")
		}
	} else {
		log.Info().Msg("No breadcrumbs given, skipping GPS bias detection")
	}

	for _, biasReport := range result.Reports() {
		if err := p.emit(ctx, biasReport, options); err != nil {
			return nil, err
		}
	}

	if p.Metrics != nil {
		p.Metrics.ObserveRun(started)
	}

	log.Info().Str("run", result.RunID).Dur("elapsed", time.Since(started)).Msg("Bias detection complete")

	return result, nil
}

// Reports returns the reports the run produced, boarding first
func (r *Result) Reports() []*bias.Report {
	var reports []*bias.Report
	for _, biasReport := range []*bias.Report{r.Boarding, r.GPS} {
		if biasReport != nil {
			reports = append(reports, biasReport)
		}
	}

	return reports
}

func (p *Pipeline) loadStopEvents(ctx context.Context, options Options, runID string) ([]transit.StopEvent, error) {
	if options.StopEvents == "" {
		return nil, fmt.Errorf("%w: no stop events source given", ErrNoStopEvents)
	}

	document := &stopevents.Document{
		ServiceDate: options.ServiceDate,
		DataSource: &transit.DataSource{
			OriginalFormat: string(datasets.DataSetFormatTriMetStopEvents),
			Dataset:        options.StopEvents,
			Identifier:     runID,
		},
	}

	if err := p.Manager.Parse(ctx, options.StopEvents, document); err != nil {
		return nil, err
	}

	if p.Metrics != nil {
		p.Metrics.ObserveRows("stopevents", document.Counts())
	}

	if len(document.Events) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoStopEvents, options.StopEvents)
	}

	return document.Events, nil
}

func (p *Pipeline) detectBoarding(events []transit.StopEvent, options Options, runID string) (*bias.Report, error) {
	baseline, err := bias.BoardingBaseline(events)
	if err != nil {
		return nil, err
	}

	detector := bias.NewBoardingDetector()
	detector.Alpha = options.BoardingAlpha
	detector.Alternative = options.Alternative
	detector.Workers = options.Workers
	detector.RunID = runID

	biasReport, err := detector.Detect(util.GroupBy(events, transit.StopEventVehicle), baseline)
	if err != nil {
		return nil, err
	}

	err = report.PrintTable(p.Out,
		fmt.Sprintf("Vehicles with biased boarding (p < %g):", biasReport.Alpha),
		"No biased boarding vehicles found.",
		biasReport.Results,
	)

	return biasReport, err
}

func (p *Pipeline) detectPositions(ctx context.Context, options Options, runID string) (*bias.Report, error) {
	file := &breadcrumbs.File{}
	if err := p.Manager.Parse(ctx, options.Breadcrumbs, file); err != nil {
		return nil, err
	}

	if p.Metrics != nil {
		p.Metrics.ObserveRows("breadcrumbs", file.Counts())
	}

	detector := bias.NewPositionDetector()
	detector.Alpha = options.GPSAlpha
	detector.Workers = options.Workers
	detector.RunID = runID

	biasReport, err := detector.Detect(transit.PositionsByVehicle(file.Samples), transit.Positions(file.Samples))
	if err != nil {
		return nil, err
	}

	err = report.PrintTable(p.Out,
		fmt.Sprintf("Vehicles with biased GPS (p < %g):", biasReport.Alpha),
		"No GPS bias found.",
		biasReport.Results,
	)

	return biasReport, err
}

func (p *Pipeline) emit(ctx context.Context, biasReport *bias.Report, options Options) error {
	if p.Metrics != nil {
		p.Metrics.ObserveReport(biasReport)
	}

	if options.JSONDir != "" {
		path := filepath.Join(options.JSONDir, biasReport.Detector+"_report.json")
		if err := writeJSON(path, biasReport); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if p.Publisher != nil {
		if err := p.Publisher.PublishReport(ctx, biasReport); err != nil {
			return err
		}
	}

	return nil
}

func writeStops(path string, events []transit.StopEvent) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := stopevents.WriteCSV(file, events); err != nil {
		return err
	}

	log.Info().Str("path", path).Int("events", len(events)).Msg("Saved cleaned stop events")

	return file.Close()
}

func writeJSON(path string, biasReport *bias.Report) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	if err := report.WriteJSON(file, biasReport, report.GroupDetailed); err != nil {
		return err
	}

	return file.Close()
}
