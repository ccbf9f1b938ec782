package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJobName = "ut2tracker"

func SetupPrometheus() *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	// Add Go module build info and runtime metrics.
	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
	)

	return promRegistry
}

// Push sends everything gathered by g to a Prometheus Pushgateway.
// The tracker is a short-lived process, nothing is around to be scraped.
func Push(ctx context.Context, pushgatewayURL string, g prometheus.Gatherer) error {
	if pushgatewayURL == "" {
		return nil
	}
	if err := push.New(pushgatewayURL, pushJobName).Gatherer(g).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics to %s: %w", pushgatewayURL, err)
	}
	return nil
}
