// File: /metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PublishesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaevents_publishes_total",
		Help: "Publish pipeline outcomes.",
	}, []string{"result"})

	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaevents_notifications_total",
		Help: "Best-effort marketing notification outcomes.",
	}, []string{"tag", "result"})

	SyncUpsertsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "aquaevents_sync_upserts_total",
		Help: "External event sync upsert outcomes.",
	}, []string{"result"})
)
