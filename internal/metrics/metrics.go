// Package metrics регистрирует метрики Prometheus сервиса регистрации.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Исходы отправки формы.
const (
	OutcomeCreated    = "created"
	OutcomeInvalid    = "invalid"
	OutcomeInProgress = "in_progress"
	OutcomeUpload     = "upload_failed"
	OutcomeStore      = "store_failed"
)

var (
	// HTTPRequestDuration — длительность HTTP-запросов по маршруту и статусу.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// Submissions — число отправок формы по исходу.
	Submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trd_registration_submissions_total",
			Help: "Registration submissions by outcome",
		},
		[]string{"outcome"},
	)

	// PhotosUploaded — число успешно загруженных фотографий.
	PhotosUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trd_photos_uploaded_total",
			Help: "Photos stored in object storage",
		},
	)

	// EventsPublished — публикации событий регистрации по результату.
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trd_registration_events_total",
			Help: "user.registered events by publish result",
		},
		[]string{"result"},
	)
)

// RecordSubmission увеличивает счётчик отправок с указанным исходом.
func RecordSubmission(outcome string) {
	Submissions.WithLabelValues(outcome).Inc()
}
