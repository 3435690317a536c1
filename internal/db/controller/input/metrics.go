package input

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var reconciledRows = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "input_reconcile_rows_total",
	Help: "Input rows written by bulk reconciliation, by action.",
}, []string{"action"})

func observe(res *ReconcileResult) {
	reconciledRows.WithLabelValues("inserted").Add(float64(len(res.Inserted)))
	reconciledRows.WithLabelValues("updated").Add(float64(len(res.Updated)))
	reconciledRows.WithLabelValues("soft_deleted").Add(float64(len(res.SoftDeleted)))
}
