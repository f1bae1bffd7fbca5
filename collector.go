package tempo

import "github.com/prometheus/client_golang/prometheus"

// Collector exposes a Registry's accumulated timings as Prometheus
// metrics, one series per timer name:
//
//	prometheus.MustRegister(tempo.NewCollector(tempo.Default()))
type Collector struct {
	registry *Registry
	wall     *prometheus.Desc
	cpu      *prometheus.Desc
	calls    *prometheus.Desc
}

// NewCollector returns a collector reading from the given registry.
func NewCollector(r *Registry) *Collector {
	return &Collector{
		registry: r,
		wall: prometheus.NewDesc(
			"tempo_timer_wall_seconds",
			"Accumulated wall-clock time per timer",
			[]string{"timer"}, nil,
		),
		cpu: prometheus.NewDesc(
			"tempo_timer_cpu_seconds",
			"Accumulated CPU time per timer",
			[]string{"timer"}, nil,
		),
		calls: prometheus.NewDesc(
			"tempo_timer_calls_total",
			"Completed start/stop cycles per timer",
			[]string{"timer"}, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.wall
	ch <- c.cpu
	ch <- c.calls
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	for name, snap := range c.registry.Collect() {
		ch <- prometheus.MustNewConstMetric(c.wall, prometheus.GaugeValue, snap.WallSeconds, name)
		ch <- prometheus.MustNewConstMetric(c.cpu, prometheus.GaugeValue, snap.CPUSeconds, name)
		ch <- prometheus.MustNewConstMetric(c.calls, prometheus.CounterValue, float64(snap.Calls), name)
	}
}
