package cart

import "github.com/prometheus/client_golang/prometheus"

const (
	opAdd    = "add"
	opRemove = "remove"

	resultOK       = "ok"
	resultNotFound = "not_found"
	resultError    = "error"
)

type Metrics struct {
	Items      prometheus.Gauge
	Operations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	m := &Metrics{
		Items: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cart_items",
			Help:      "Line items currently in the cart",
		}),
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cart_operations_total",
				Help:      "Cart mutations by operation and result",
			},
			[]string{"op", "result"},
		),
	}

	reg.MustRegister(m.Items, m.Operations)
	return m
}

// observe counts one operation and moves the item gauge by delta. Gauge adds
// commute, so concurrent mutations cannot leave it stale.
func (m *Metrics) observe(op, result string, delta int) {
	if m == nil {
		return
	}
	m.Operations.WithLabelValues(op, result).Inc()
	if delta != 0 {
		m.Items.Add(float64(delta))
	}
}

func (m *Metrics) reset(size int) {
	if m == nil {
		return
	}
	m.Items.Set(float64(size))
}
