package metrics

import "github.com/prometheus/client_golang/prometheus"

// PaymentMetrics records payment intent lifecycle counters.
type PaymentMetrics struct {
	intentsCreated   prometheus.Counter
	intentsConfirmed prometheus.Counter
	intentsFailed    *prometheus.CounterVec
}

// NewPaymentMetrics registers the payment metrics on the provided registerer.
func NewPaymentMetrics(reg prometheus.Registerer) *PaymentMetrics {
	if reg == nil {
		return &PaymentMetrics{}
	}
	created := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_intents_created_total",
		Help: "Payment intents successfully created.",
	})
	confirmed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "payment_intents_confirmed_total",
		Help: "Payment intents confirmed as succeeded.",
	})
	failed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_intents_failed_total",
		Help: "Payment operations that failed, labelled by stage.",
	}, []string{"stage"})
	reg.MustRegister(created, confirmed, failed)
	return &PaymentMetrics{
		intentsCreated:   created,
		intentsConfirmed: confirmed,
		intentsFailed:    failed,
	}
}

// IncCreated increments the created counter.
func (p *PaymentMetrics) IncCreated() {
	if p == nil || p.intentsCreated == nil {
		return
	}
	p.intentsCreated.Inc()
}

// IncConfirmed increments the confirmed counter.
func (p *PaymentMetrics) IncConfirmed() {
	if p == nil || p.intentsConfirmed == nil {
		return
	}
	p.intentsConfirmed.Inc()
}

// IncFailed increments the failure counter for the named stage.
func (p *PaymentMetrics) IncFailed(stage string) {
	if p == nil || p.intentsFailed == nil {
		return
	}
	if stage == "" {
		stage = "unknown"
	}
	p.intentsFailed.WithLabelValues(stage).Inc()
}
