// Package metrics holds Prometheus instruments that are used across the
// service.  All collectors are registered with the global registry, so
// importing this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ApplicationsStored = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "applications_stored",
			Help: "Number of accepted applications currently held in memory.",
		})

	ApplicationsAcceptedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "applications_accepted_total",
			Help: "Cumulative number of applications accepted into the store.",
		})

	ValidationRejectsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "validation_rejects_total",
			Help: "Cumulative number of submissions rejected by field validation.",
		})

	RateLimitDeniesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_denies_total",
			Help: "Cumulative number of submissions denied by the cooldown limiter.",
		})

	RateLimitEvictTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rate_limit_evict_total",
			Help: "Cumulative number of expired cooldown entries swept from the map.",
		})

	WebhookDeliveriesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_deliveries_total",
			Help: "Cumulative number of successful webhook notifications.",
		})

	WebhookErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_errors_total",
			Help: "Cumulative number of failed webhook notification attempts.",
		})
)

func init() {
	prometheus.MustRegister(
		ApplicationsStored,
		ApplicationsAcceptedTotal,
		ValidationRejectsTotal,
		RateLimitDeniesTotal,
		RateLimitEvictTotal,
		WebhookDeliveriesTotal,
		WebhookErrorsTotal,
	)
}
