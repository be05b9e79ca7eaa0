package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	. "github.com/smartystreets/goconvey/convey"
)

func value(m prometheus.Metric) float64 {
	var pb dto.Metric
	if err := m.Write(&pb); err != nil {
		return -1
	}
	if pb.Counter != nil {
		return pb.Counter.GetValue()
	}
	return pb.Gauge.GetValue()
}

func TestMetricsManagerCreation(t *testing.T) {
	Convey("Given metrics manager creation", t, func() {
		Convey("When creating with default options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(WithRegisterer(registry))

			Convey("Then it should use the service namespace", func() {
				So(manager, ShouldNotBeNil)
				So(manager.namespace, ShouldEqual, "expertlens")
				So(manager.refreshInterval, ShouldEqual, defaultRefreshInterval)
			})
		})

		Convey("When creating with custom options", func() {
			registry := prometheus.NewRegistry()
			manager := NewManager(
				WithNamespace("test_namespace"),
				WithSubsystem("test_subsystem"),
				WithMetricPrefix("test_"),
				WithLatencyBuckets([]float64{0.1, 0.5, 1.0}),
				WithEnabled(true),
				WithRefreshInterval(5*time.Second),
				WithConstLabels(map[string]string{"env": "test"}),
				WithRegisterer(registry),
			)
			manager.uploads.WithLabelValues("ok").Inc()

			Convey("Then the options shape the registered metrics", func() {
				So(manager.refreshInterval, ShouldEqual, 5*time.Second)
				families, err := registry.Gather()
				So(err, ShouldBeNil)
				found := false
				for _, f := range families {
					if f.GetName() == "test_namespace_test_subsystem_test_uploads_total" {
						found = true
						So(f.GetMetric()[0].GetLabel(), ShouldHaveLength, 2)
					}
				}
				So(found, ShouldBeTrue)
			})
		})

		Convey("When creating two managers on separate registries", func() {
			Convey("Then neither registration panics", func() {
				So(func() {
					NewManager(WithRegisterer(prometheus.NewRegistry()))
					NewManager(WithRegisterer(prometheus.NewRegistry()))
				}, ShouldNotPanic)
			})
		})
	})
}

func TestMetricsRecording(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("When recording business metrics", func() {
			before := value(globalManager.uploads.WithLabelValues("success"))
			RecordUpload("success")
			RecordIDsIngested(3)
			RecordProfilesGenerated("mock", 3)
			RecordQualityLabel("risk")
			RecordRiskLevel("high")

			Convey("Then counters advance", func() {
				So(value(globalManager.uploads.WithLabelValues("success")), ShouldEqual, before+1)
				So(value(globalManager.profilesGenerated.WithLabelValues("mock")), ShouldBeGreaterThanOrEqualTo, 3)
			})
		})

		Convey("When updating session gauges", func() {
			UpdateActiveSessions(7)

			Convey("Then the gauge holds the last value", func() {
				So(value(globalManager.activeSessions), ShouldEqual, 7)
			})
		})

		Convey("When recording latencies and errors", func() {
			Convey("Then nothing panics", func() {
				So(func() {
					RecordGenerationLatency(1.5)
					RecordAggregationLatency(0.2)
					RecordSessionStoreLatency("get", 0.01)
					RecordSessionsEvicted("expired", 2)
					RecordSessionsEvicted("capacity", 0)
					RecordHTTPRequest("/api/health", "GET", "200")
					RecordHTTPRequestDuration("/api/health", "GET", "200", 1)
					RecordErrorByComponent("api", "bad_request")
					RecordErrorByType("bad_request", "warning")
					RecordErrorByEndpoint("/api/upload", "POST", "bad_request")
					UpdateSystemMemoryUsage(1024)
					UpdateSystemGoroutineCount(10)
					RecordSystemGCPauseTime(0.3)
				}, ShouldNotPanic)
			})
		})

		Convey("Then the registry is exposed", func() {
			So(GetRegistry(), ShouldEqual, customRegistry)
			So(RefreshInterval(), ShouldEqual, defaultRefreshInterval)
		})
	})
}
