package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const Namespace = "guardian_bot"

var (
	BotActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "bot_actions_total",
		Help:      "Total number of bot actions",
	}, []string{"action"})

	DeletedMessages = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "deleted_messages_total",
		Help:      "Total number of deleted messages",
	}, []string{"reason"})

	WarningsIssued = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "warnings_issued_total",
		Help:      "Total number of warnings issued by admins",
	})

	Escalations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "warning_escalations_total",
		Help:      "Total number of users that crossed the warning limit",
	})

	UpdateProcessingDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "update_processing_duration_seconds",
		Help:      "Duration of update processing",
		Buckets:   prometheus.DefBuckets,
	}, []string{"type", "status"})

	RateWindows = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "rate_limiter_windows",
		Help:      "Number of per-user flood windows currently tracked",
	})
)

func IncBotAction(action string) {
	BotActions.WithLabelValues(action).Inc()
}

func IncDeletedMessages(reason string) {
	DeletedMessages.WithLabelValues(reason).Inc()
}

func SetRateWindows(count float64) {
	RateWindows.Set(count)
}

func ObserveUpdateProcessing(updateType string, duration float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	UpdateProcessingDuration.WithLabelValues(updateType, status).Observe(duration)
}
