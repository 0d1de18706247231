package publish

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
	"github.com/travigo/transitlab/pkg/bias"
	"github.com/travigo/transitlab/pkg/report"
)

type PublisherMetrics interface {
	NATSPublishedInc()
	NATSPublishErrInc()
}

type NATSPublisher struct {
	nc      *nats.Conn
	prefix  string
	metrics PublisherMetrics
}

func NewNATSPublisher(url string, prefix string, m PublisherMetrics) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.Name("transitlab"),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			log.Warn().Err(err).Msg("NATS disconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			log.Debug().Msg("NATS connection closed")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS at %s: %w", url, err)
	}

	return &NATSPublisher{nc: nc, prefix: prefix, metrics: m}, nil
}

func (p *NATSPublisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		p.nc.Close()
	}
}

// PublishReport sends the detailed JSON report to <prefix>.<detector> and waits for the flush
func (p *NATSPublisher) PublishReport(ctx context.Context, biasReport *bias.Report) error {
	subject := Subject(p.prefix, biasReport.Detector)

	payload, err := Payload(biasReport)
	if err != nil {
		return err
	}

	err = p.nc.Publish(subject, payload)
	if err == nil {
		err = p.nc.FlushWithContext(ctx)
	}

	if p.metrics != nil {
		if err != nil {
			p.metrics.NATSPublishErrInc()
		} else {
			p.metrics.NATSPublishedInc()
		}
	}
	if err != nil {
		return fmt.Errorf("publishing to %s: %w", subject, err)
	}

	log.Info().Str("subject", subject).Int("results", len(biasReport.Results)).Msg("Published report")

	return nil
}

func Payload(biasReport *bias.Report) ([]byte, error) {
	var buffer bytes.Buffer
	if err := report.WriteJSON(&buffer, biasReport, report.GroupDetailed); err != nil {
		return nil, err
	}

	return buffer.Bytes(), nil
}

func Subject(prefix string, detector string) string {
	return fmt.Sprintf("%s.%s", strings.TrimSuffix(prefix, "."), subjectToken(detector))
}

func subjectToken(s string) string {
	s = strings.TrimSpace(s)
	// NATS tokens cannot contain whitespace, wildcards or dots
	s = strings.NewReplacer(" ", "_", ".", "_", ">", "_", "*", "_", "\t", "_").Replace(s)
	if s == "" {
		s = "_"
	}

	return s
}
