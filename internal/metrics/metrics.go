package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

var (
	ErrorsCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "harvester_errors_total",
			Help: "Total number of occurred errors.",
		},
		[]string{"type"},
	)
	HarvestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "harvester_run_duration_seconds",
			Help:    "Duration of each full harvest pass in seconds.",
			Buckets: []float64{60, 300, 900, 1800, 3600},
		},
	)
	CompanyStepDuration = prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       "harvester_company_step_duration_seconds",
			Help:       "Duration of each step while harvesting one company.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step"},
	)
	SyncedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_jobs_synced_total",
			Help: "Total number of postings upserted into the store.",
		},
	)
	ExpiredJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_jobs_marked_expired_total",
			Help: "Total number of postings flipped to inactive.",
		},
	)
	DeletedJobsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "harvester_jobs_deleted_total",
			Help: "Total number of postings purged past the retention window.",
		},
	)
)

func StartMetricsServer() {

	prometheus.MustRegister(ErrorsCounter)
	prometheus.MustRegister(HarvestDuration)
	prometheus.MustRegister(CompanyStepDuration)
	prometheus.MustRegister(SyncedJobsCounter)
	prometheus.MustRegister(ExpiredJobsCounter)
	prometheus.MustRegister(DeletedJobsCounter)

	http.Handle("/metrics", promhttp.Handler())
	go func() {
		log.Fatal(http.ListenAndServe(":8080", nil))
	}()
}
