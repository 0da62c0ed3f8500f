package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const metricsPrefix = "graphexec_"

// writeMetrics writes the executor's metric families in the Prometheus text
// exposition format.
func writeMetrics(out io.Writer, gatherer prometheus.Gatherer) error {
	families, err := gatherer.Gather()
	if err != nil {
		return fmt.Errorf("unable to gather metrics: %w", err)
	}

	for _, family := range families {
		if !strings.HasPrefix(family.GetName(), metricsPrefix) {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(out, family); err != nil {
			return fmt.Errorf("unable to write metric %s: %w", family.GetName(), err)
		}
	}
	return nil
}
