package resilient

import (
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	logger "github.com/sirupsen/logrus"
)

const metricsNamespace = "lakegate"

// Metrics counts traffic to the versioning server.
type Metrics struct {
	Attempts *prometheus.CounterVec
	Requests *prometheus.CounterVec
}

// NewMetrics registers the client counters on registerer. Registering twice
// on the same registry reuses the existing collectors.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	attempts, err := registerCounter(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_attempts_total",
		Help:      "HTTP attempts sent to the versioning server, retries included.",
	}, []string{"method"}))
	if err != nil {
		return nil, err
	}

	requests, err := registerCounter(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "http_requests_total",
		Help:      "Logical requests to the versioning server by final outcome.",
	}, []string{"method", "outcome"}))
	if err != nil {
		return nil, err
	}

	return &Metrics{Attempts: attempts, Requests: requests}, nil
}

func registerCounter(
	registerer prometheus.Registerer,
	counter *prometheus.CounterVec,
) (*prometheus.CounterVec, error) {
	if registerer == nil {
		return counter, nil
	}
	if err := registerer.Register(counter); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			if existing, ok := already.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing, nil
			}
		}
		return nil, err
	}
	return counter, nil
}

// Summary maps each recorded client series, written as name{label=value,...},
// to its counter value.
type Summary map[string]float64

// Summarize gathers the client counters from gatherer. Series that were
// never incremented are absent.
func Summarize(gatherer prometheus.Gatherer) (Summary, error) {
	families, err := gatherer.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather client metrics: %w", err)
	}

	summary := make(Summary)
	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), metricsNamespace+"_") {
			continue
		}
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, pair := range metric.GetLabel() {
				labels = append(labels, pair.GetName()+"="+pair.GetValue())
			}
			series := family.GetName()
			if len(labels) > 0 {
				series += "{" + strings.Join(labels, ",") + "}"
			}
			summary[series] = metric.GetCounter().GetValue()
		}
	}
	return summary, nil
}

// LogSummary logs the versioning server traffic recorded so far. Nothing is
// logged when no request was sent.
func LogSummary(gatherer prometheus.Gatherer) {
	if gatherer == nil {
		return
	}
	summary, err := Summarize(gatherer)
	if err != nil {
		logger.Warnf("Unable to report client metrics: %s", err)
		return
	}
	if len(summary) == 0 {
		return
	}

	fields := make(logger.Fields, len(summary))
	for series, value := range summary {
		fields[series] = value
	}
	logger.WithFields(fields).Info("Versioning server traffic")
}
