package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/bias"
	"github.com/travigo/transitlab/pkg/dataimporter/formats"
)

type Collector struct {
	reg *prometheus.Registry

	RowsLoaded  *prometheus.CounterVec // dataset label
	RowsDropped *prometheus.CounterVec // dataset label

	VehiclesTested  *prometheus.CounterVec // detector label
	VehiclesFlagged *prometheus.CounterVec // detector label
	VehiclesSkipped *prometheus.CounterVec // detector, reason labels

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter

	RunDuration prometheus.Gauge
}

func NewCollector(command string) *Collector {
	reg := prometheus.NewRegistry()
	constLabels := prometheus.Labels{"command": command}

	c := &Collector{
		reg: reg,
		RowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "transitlab_rows_loaded_total",
			Help:        "Rows accepted by the dataset parsers.",
			ConstLabels: constLabels,
		}, []string{"dataset"}),
		RowsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "transitlab_rows_dropped_total",
			Help:        "Rows dropped by the dataset parsers for missing or invalid fields.",
			ConstLabels: constLabels,
		}, []string{"dataset"}),
		VehiclesTested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "transitlab_vehicles_tested_total",
			Help:        "Vehicles with a p-value from a detector.",
			ConstLabels: constLabels,
		}, []string{"detector"}),
		VehiclesFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "transitlab_vehicles_flagged_total",
			Help:        "Vehicles under the detector significance threshold.",
			ConstLabels: constLabels,
		}, []string{"detector"}),
		VehiclesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "transitlab_vehicles_skipped_total",
			Help:        "Vehicles a detector could not test.",
			ConstLabels: constLabels,
		}, []string{"detector", "reason"}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "transitlab_nats_published_total",
			Help:        "Reports published to NATS.",
			ConstLabels: constLabels,
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "transitlab_nats_publish_errors_total",
			Help:        "Report publishes to NATS that failed.",
			ConstLabels: constLabels,
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "transitlab_run_duration_seconds",
			Help:        "Wall time of the last run.",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		c.RowsLoaded, c.RowsDropped,
		c.VehiclesTested, c.VehiclesFlagged, c.VehiclesSkipped,
		c.NATSPublished, c.NATSPublishErrs,
		c.RunDuration,
	)

	return c
}

func (c *Collector) Registry() *prometheus.Registry { return c.reg }

func (c *Collector) ObserveRows(dataset string, counts formats.RowCounts) {
	c.RowsLoaded.WithLabelValues(dataset).Add(float64(counts.Parsed))
	c.RowsDropped.WithLabelValues(dataset).Add(float64(counts.Dropped))
}

func (c *Collector) ObserveReport(report *bias.Report) {
	c.VehiclesTested.WithLabelValues(report.Detector).Add(float64(report.Tested))
	c.VehiclesFlagged.WithLabelValues(report.Detector).Add(float64(len(report.Results)))

	for reason, count := range report.Skipped {
		c.VehiclesSkipped.WithLabelValues(report.Detector, reason).Add(float64(count))
	}
}

func (c *Collector) ObserveRun(started time.Time) {
	c.RunDuration.Set(time.Since(started).Seconds())
}

func (c *Collector) NATSPublishedInc()  { c.NATSPublished.Inc() }
func (c *Collector) NATSPublishErrInc() { c.NATSPublishErrs.Inc() }

// WriteTextfile persists the registry for the node exporter textfile collector.
// An empty path is a no-op.
func (c *Collector) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}

	if err := prometheus.WriteToTextfile(path, c.reg); err != nil {
		return err
	}

	log.Info().Str("path", path).Msg("Wrote metrics textfile")

	return nil
}
