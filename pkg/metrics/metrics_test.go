package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMetricsOptions(t *testing.T) {
	Convey("Given metrics options", t, func() {
		Convey("When creating options", func() {
			namespaceOpt := WithNamespace("test-namespace")
			subsystemOpt := WithSubsystem("test-subsystem")
			metricPrefixOpt := WithMetricPrefix("test-prefix")
			histogramBucketsOpt := WithHistogramBuckets([]float64{0.1, 0.5, 1.0})
			metricsEnabledOpt := WithMetricsEnabled(true)
			refreshIntervalOpt := WithRefreshInterval(5 * time.Second)
			customLabelsOpt := WithCustomLabels(map[string]string{"env": "test"})

			Convey("Then they should be valid functions", func() {
				So(namespaceOpt, ShouldNotBeNil)
				So(subsystemOpt, ShouldNotBeNil)
				So(metricPrefixOpt, ShouldNotBeNil)
				So(histogramBucketsOpt, ShouldNotBeNil)
				So(metricsEnabledOpt, ShouldNotBeNil)
				So(refreshIntervalOpt, ShouldNotBeNil)
				So(customLabelsOpt, ShouldNotBeNil)
			})
		})
	})
}

func TestManagerCreation(t *testing.T) {
	Convey("Given manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithPrometheusRegistry(registry))

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test-namespace"),
				WithSubsystem("test-subsystem"),
				WithMetricPrefix("test-prefix"),
				WithHistogramBuckets([]float64{0.1, 0.5, 1.0}),
				WithMetricsEnabled(true),
				WithRefreshInterval(10*time.Second),
				WithCustomLabels(map[string]string{"env": "test", "version": "1.0"}),
				WithPrometheusRegistry(registry),
			)

			Convey("Then it should be created successfully", func() {
				So(manager, ShouldNotBeNil)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given metrics recording", t, func() {
		Convey("When recording decision metrics", func() {
			Convey("Then it should record decisions by tier and outcome", func() {
				So(func() {
					RecordDecision("Prime", true)
					RecordDecision("Near-Prime", true)
					RecordDecision("High Risk", false)
				}, ShouldNotPanic)
			})

			Convey("And it should record credit scores", func() {
				So(func() {
					RecordCreditScore(760)
					RecordCreditScore(540)
					RecordCreditScore(850)
				}, ShouldNotPanic)
			})

			Convey("And it should record scoring latency", func() {
				So(func() {
					RecordScoringLatency(1.0)
					RecordScoringLatency(2.5)
				}, ShouldNotPanic)
			})

			Convey("And it should record pipeline errors", func() {
				So(func() {
					RecordValidationError()
					RecordScoringError()
				}, ShouldNotPanic)
			})
		})

		Convey("When recording recorder metrics", func() {
			Convey("Then queue counters and gauges should accept values", func() {
				So(func() {
					RecordQueued()
					RecordWritten()
					RecordDropped()
					RecordWriteError()
					RecordWriteLatency(3.0)
					UpdateRecordQueueSize(12)
					UpdateRecordQueueCapacity(1024)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording HTTP metrics", func() {
			Convey("Then it should record requests and durations", func() {
				So(func() {
					RecordHTTPRequest("/predict", "POST", "200")
					RecordHTTPRequest("/health", "GET", "200")
					RecordHTTPRequestDuration("/predict", "POST", "200", 12.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When recording error metrics", func() {
			Convey("Then it should record errors by component, type and endpoint", func() {
				So(func() {
					RecordErrorByComponent("recorder", "write_error")
					RecordErrorByType("server_error", "high")
					RecordErrorByEndpoint("/predict", "POST", "client_error")
					RecordErrorLatency("http", "client_error", 4.0)
				}, ShouldNotPanic)
			})
		})

		Convey("When updating system metrics", func() {
			Convey("Then it should accept system readings", func() {
				So(func() {
					UpdateSystemMemoryUsage(1024 * 1024)
					UpdateSystemGoroutineCount(42)
					RecordSystemGCPauseTime(0.5)
				}, ShouldNotPanic)
			})
		})
	})
}

func TestGetRegistry(t *testing.T) {
	Convey("Given the package-level registry", t, func() {
		Convey("When fetching it", func() {
			registry := GetRegistry()

			Convey("Then it should be gatherable", func() {
				So(registry, ShouldNotBeNil)
				_, err := registry.Gather()
				So(err, ShouldBeNil)
			})
		})
	})
}
