package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insurance_client",
			Name:      "requests_total",
			Help:      "API calls by method and outcome (ok, client_error, server_error, transport_error).",
		},
		[]string{"method", "outcome"},
	)

	retriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "insurance_client",
			Name:      "retries_total",
			Help:      "Retried read-only API calls.",
		},
		[]string{"method"},
	)
)

func observeRequest(method string, err error) {
	requestsTotal.WithLabelValues(method, outcomeOf(err)).Inc()
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	if apiErr, ok := AsAPIError(err); ok {
		if apiErr.StatusCode >= 500 {
			return "server_error"
		}
		return "client_error"
	}
	return "transport_error"
}
