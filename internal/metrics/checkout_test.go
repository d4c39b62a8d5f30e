package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutMetrics_Exports(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewCheckoutMetrics(reg)

	m.ObserveSale("cash", 140970)
	m.ObserveSale("cash", 111000)
	m.ObserveSale("transfer", 55500)
	m.IncRejected("payment_insufficient")
	m.IncRejected("")
	m.IncCommitFailure()

	mfs, err := reg.Gather()
	require.NoError(t, err)

	assert.InDelta(t, 2, counterValue(t, mfs, "checkout_sales_completed_total", "method", "cash"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "checkout_sales_completed_total", "method", "transfer"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "checkout_rejected_total", "reason", "payment_insufficient"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "checkout_rejected_total", "reason", "unknown"), 0)
	assert.InDelta(t, 1, counterValue(t, mfs, "checkout_commit_failures_total", "", ""), 0)

	h := findMetric(t, mfs, "checkout_sale_total_rupiah", "method", "cash").GetHistogram()
	assert.Equal(t, uint64(2), h.GetSampleCount())
	assert.InDelta(t, 251970, h.GetSampleSum(), 0)
}

func TestCheckoutMetrics_NilSafe(t *testing.T) {
	var nilMetrics *CheckoutMetrics

	assert.NotPanics(t, func() {
		nilMetrics.ObserveSale("cash", 1)
		nilMetrics.IncRejected("x")
		nilMetrics.IncCommitFailure()

		m := NewCheckoutMetrics(nil)
		m.ObserveSale("cash", 1)
		m.IncRejected("x")
		m.IncCommitFailure()
	})
}

func counterValue(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) float64 {
	t.Helper()
	return findMetric(t, mfs, name, label, value).GetCounter().GetValue()
}

func findMetric(t *testing.T, mfs []*dto.MetricFamily, name, label, value string) *dto.Metric {
	t.Helper()

	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}

		for _, metric := range mf.GetMetric() {
			if label == "" {
				return metric
			}

			for _, lp := range metric.GetLabel() {
				if lp.GetName() == label && lp.GetValue() == value {
					return metric
				}
			}
		}
	}

	require.Failf(t, "metric not found", "%s{%s=%q}", name, label, value)

	return nil
}
