package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// CheckoutMetrics records outcomes of the point-of-sale flow.
type CheckoutMetrics struct {
	completed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	failed    prometheus.Counter
	amount    *prometheus.HistogramVec
}

// NewCheckoutMetrics registers the checkout metrics on reg. A nil registerer
// yields a no-op recorder.
func NewCheckoutMetrics(reg prometheus.Registerer) *CheckoutMetrics {
	if reg == nil {
		return &CheckoutMetrics{}
	}

	completed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_sales_completed_total",
		Help: "Sales recorded in the ledger, by payment method.",
	}, []string{"method"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "checkout_rejected_total",
		Help: "Checkout actions rejected by validation, by reason.",
	}, []string{"reason"})
	failed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "checkout_commit_failures_total",
		Help: "Paid sales that could not be written to the ledger.",
	})
	amount := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "checkout_sale_total_rupiah",
		Help:    "Grand total of recorded sales in rupiah.",
		Buckets: prometheus.ExponentialBuckets(10_000, 2.5, 10),
	}, []string{"method"})

	reg.MustRegister(completed, rejected, failed, amount)

	return &CheckoutMetrics{
		completed: completed,
		rejected:  rejected,
		failed:    failed,
		amount:    amount,
	}
}

// ObserveSale counts a recorded sale and its grand total.
func (m *CheckoutMetrics) ObserveSale(method string, total int64) {
	if m == nil || m.completed == nil {
		return
	}

	method = normalizeLabel(method)
	m.completed.WithLabelValues(method).Inc()
	m.amount.WithLabelValues(method).Observe(float64(total))
}

func (m *CheckoutMetrics) IncRejected(reason string) {
	if m == nil || m.rejected == nil {
		return
	}

	m.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func (m *CheckoutMetrics) IncCommitFailure() {
	if m == nil || m.failed == nil {
		return
	}

	m.failed.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}

	return v
}
