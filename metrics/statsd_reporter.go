package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/statsd"
	"github.com/tutumagi/crossaoi/config"
	"github.com/tutumagi/crossaoi/logger"
)

// Client is the interface to required dogstatsd functions
type Client interface {
	Count(name string, value int64, tags []string, rate float64) error
	Gauge(name string, value float64, tags []string, rate float64) error
	TimeInMilliseconds(name string, value float64, tags []string, rate float64) error
}

// StatsdReporter sends application metrics to statsd
type StatsdReporter struct {
	client      Client
	rate        float64
	serverType  string
	defaultTags []string
}

// NewStatsdReporter returns an instance of statsd reporter and an
// error if something fails
func NewStatsdReporter(
	cfg *config.Config,
	serverType string,
	tagsMap map[string]string,
	clientOrNil ...Client,
) (*StatsdReporter, error) {
	return newStatsdReporter(
		cfg.GetString("aoi.metrics.statsd.host"),
		cfg.GetString("aoi.metrics.statsd.prefix"),
		cfg.GetFloat64("aoi.metrics.statsd.rate"),
		serverType,
		tagsMap,
		clientOrNil...)
}

func newStatsdReporter(
	statsdAddr, prefix string,
	rate float64,
	serverType string,
	tagsMap map[string]string,
	clientOrNil ...Client) (*StatsdReporter, error) {
	sr := &StatsdReporter{
		rate:       rate,
		serverType: serverType,
	}

	sr.buildDefaultTags(tagsMap)

	if len(clientOrNil) > 0 {
		sr.client = clientOrNil[0]
	} else {
		c, err := statsd.New(statsdAddr, statsd.WithNamespace(prefix))
		if err != nil {
			return nil, fmt.Errorf("create statsd client %s: %w", statsdAddr, err)
		}
		sr.client = c
	}
	return sr, nil
}

func (s *StatsdReporter) buildDefaultTags(tagsMap map[string]string) {
	defaultTags := make([]string, len(tagsMap)+1)

	defaultTags[0] = fmt.Sprintf("serverType:%s", s.serverType)

	idx := 1
	for k, v := range tagsMap {
		defaultTags[idx] = fmt.Sprintf("%s:%s", k, v)
		idx++
	}

	s.defaultTags = defaultTags
}

func (s *StatsdReporter) fullTags(tagsMap map[string]string) []string {
	fullTags := make([]string, 0, len(s.defaultTags)+len(tagsMap))
	fullTags = append(fullTags, s.defaultTags...)
	for k, v := range tagsMap {
		fullTags = append(fullTags, fmt.Sprintf("%s:%s", k, v))
	}
	return fullTags
}

// ReportCount sends count reports to statsd
func (s *StatsdReporter) ReportCount(metric string, tagsMap map[string]string, count float64) error {
	err := s.client.Count(metric, int64(count), s.fullTags(tagsMap), s.rate)
	if err != nil {
		logger.Errorf("failed to report count: %q", err)
	}
	return err
}

// ReportGauge sents the gauge value and reports to statsd
func (s *StatsdReporter) ReportGauge(metric string, tagsMap map[string]string, value float64) error {
	err := s.client.Gauge(metric, value, s.fullTags(tagsMap), s.rate)
	if err != nil {
		logger.Errorf("failed to report gauge: %q", err)
	}
	return err
}

// ReportSummary observes the summary value and reports to statsd
func (s *StatsdReporter) ReportSummary(metric string, tagsMap map[string]string, value float64) error {
	err := s.client.TimeInMilliseconds(metric, value, s.fullTags(tagsMap), s.rate)
	if err != nil {
		logger.Errorf("failed to report summary: %q", err)
	}
	return err
}
