package client

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	resultSuccess = "success"
	resultFailure = "failure"
)

// Metrics counts the requests and announcements of a SiriusAPI and the messages of a Listener. A nil *Metrics
// records nothing.
type Metrics struct {
	requests         *prometheus.CounterVec
	announcements    *prometheus.CounterVec
	listenerMessages *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registerer. A nil registerer leaves them unregistered.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	metrics := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_client_requests_total",
			Help: "Requests sent to the node, by route and result.",
		}, []string{"route", "result"}),
		announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_client_announcements_total",
			Help: "Transactions and cosignatures announced to the node, by route and result.",
		}, []string{"route", "result"}),
		listenerMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sirius_client_listener_messages_total",
			Help: "Messages received by the WebSocket listener, by channel.",
		}, []string{"channel"}),
	}

	if registerer != nil {
		for _, collector := range []prometheus.Collector{metrics.requests, metrics.announcements, metrics.listenerMessages} {
			if err := registerer.Register(collector); err != nil {
				return nil, err
			}
		}
	}

	return metrics, nil
}

func (m *Metrics) countRequest(route string, err error) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(route, result(err)).Inc()
}

func (m *Metrics) countAnnounce(route string, err error) {
	if m == nil {
		return
	}
	m.announcements.WithLabelValues(route, result(err)).Inc()
}

func (m *Metrics) countListenerMessage(channel string) {
	if m == nil {
		return
	}
	m.listenerMessages.WithLabelValues(channel).Inc()
}

func result(err error) string {
	if err != nil {
		return resultFailure
	}

	return resultSuccess
}
