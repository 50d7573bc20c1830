// Package metrics registra os coletores Prometheus da aplicação
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "lead_tracker"

// Resultados possíveis de um evento recebido
const (
	OutcomeApplied     = "applied"
	OutcomeSynthesized = "synthesized"
	OutcomeDuplicate   = "duplicate"
	OutcomeDropped     = "dropped"
	OutcomeInvalid     = "invalid"
	OutcomeFailed      = "failed"
	OutcomeIgnored     = "ignored"
)

var (
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "events_total",
		Help:      "Eventos de lead recebidos, por tipo e resultado.",
	}, []string{"event_type", "outcome"})

	RetentionDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "retention_deleted_events_total",
		Help:      "Eventos brutos removidos pela rotina de retenção.",
	})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duração das requisições HTTP.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// RecordEvent incrementa o contador de eventos
func RecordEvent(eventType, outcome string) {
	if eventType == "" {
		eventType = "unknown"
	}
	EventsTotal.WithLabelValues(eventType, outcome).Inc()
}

// ObserveRequest registra a duração de uma requisição
func ObserveRequest(method, route string, status int, elapsed time.Duration) {
	httpRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}

// Handler expõe o registro padrão no formato Prometheus
func Handler() http.Handler {
	return promhttp.Handler()
}
