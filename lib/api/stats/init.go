package stats

import (
	"time"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/typecast/typecast-go/lib/db"
	"github.com/typecast/typecast-go/lib/document"
	"github.com/typecast/typecast-go/lib/session"
	"github.com/typecast/typecast-go/lib/settings"
)

var (
	typecastActiveReplays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "active_replays",
			Help:      "Number of currently running replay sessions",
		},
	)

	typecastCompletedReplays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "completed_replays",
			Help:      "Total number of replay sessions that ran to completion",
		},
	)

	typecastCancelledReplays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "cancelled_replays",
			Help:      "Total number of replay sessions cancelled mid-flight",
		},
	)

	typecastFailedReplays = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "failed_replays",
			Help:      "Total number of replay sessions that ended with an error",
		},
	)

	typecastCharactersTyped = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "characters_typed",
			Help:      "Total number of buffer mutations applied by replays",
		},
	)

	typecastLiveDocuments = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "typecast",
			Name:      "live_documents",
			Help:      "Number of documents held in the live registry",
		},
	)
)

func Init(c *fiber.App, store db.DataStore, manager *session.Manager,
	registry *document.Registry, retrievedSettings settings.Settings) {

	checks := []Checker{
		DBChecker{store},
		ReplayChecker{manager},
	}

	version, releaseID := settings.BuildInfo()
	c.Get("/health", Handler(
		version,
		releaseID,
		"typecast-api",
		checks,
	))

	if retrievedSettings.EnableMetrics {
		go func() {
			ticker := time.NewTicker(10 * time.Second)
			defer ticker.Stop()

			for range ticker.C {
				stats, err := manager.GetStats()
				if err != nil {
					continue
				}

				typecastActiveReplays.Set(float64(stats.ActiveReplays))
				typecastCompletedReplays.Set(float64(stats.CompletedReplays))
				typecastCancelledReplays.Set(float64(stats.CancelledReplays))
				typecastFailedReplays.Set(float64(stats.FailedReplays))
				typecastCharactersTyped.Set(float64(stats.CharactersTyped))
				typecastLiveDocuments.Set(float64(registry.Count()))
			}
		}()
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			typecastActiveReplays,
			typecastCompletedReplays,
			typecastCancelledReplays,
			typecastFailedReplays,
			typecastCharactersTyped,
			typecastLiveDocuments,
		)
		handler := promhttp.HandlerFor(
			reg,
			promhttp.HandlerOpts{},
		)
		c.Get("/metrics", adaptor.HTTPHandler(handler))
	}
}
