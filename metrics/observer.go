// Package metrics counts logged messages per severity with Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/trickstertwo/logkit"
)

// Observer is a logkit.Observer that increments
// logkit_messages_total{severity="..."} once per logged message.
type Observer struct {
	messages *prometheus.CounterVec
	bySev    map[logkit.Severity]prometheus.Counter
}

// NewObserver registers the counter on reg (prometheus.DefaultRegisterer when
// nil). Registering twice on the same registry reuses the existing collector.
func NewObserver(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	vec := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "logkit",
		Name:      "messages_total",
		Help:      "Messages logged, by severity.",
	}, []string{"severity"})

	if err := reg.Register(vec); err != nil {
		are, ok := err.(prometheus.AlreadyRegisteredError)
		if !ok {
			return nil, err
		}
		vec = are.ExistingCollector.(*prometheus.CounterVec)
	}

	o := &Observer{messages: vec, bySev: make(map[logkit.Severity]prometheus.Counter, len(logkit.Severities))}
	// Pre-resolve label values so OnLog does no label lookups and every series
	// is exported at zero.
	for _, sev := range logkit.Severities {
		o.bySev[sev] = vec.WithLabelValues(sev.String())
	}
	return o, nil
}

// OnLog implements logkit.Observer.
func (o *Observer) OnLog(sev logkit.Severity, _ string) {
	if c, ok := o.bySev[sev]; ok {
		c.Inc()
		return
	}
	o.messages.WithLabelValues(sev.String()).Inc()
}
