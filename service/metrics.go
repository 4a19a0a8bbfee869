package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 指标名
const (
	MetricRankingsTotal     = "powerrank_rankings_total"
	MetricRankingDuration   = "powerrank_ranking_duration_seconds"
	MetricRankingIterations = "powerrank_ranking_iterations"
	MetricLastParticipants  = "powerrank_last_participants"
)

// 请求结果状态（rankings_total 的 status 标签）
const (
	StatusOK                = "ok"
	StatusInsufficientData  = "insufficient_data"
	StatusInvalidParameter  = "invalid_parameter"
	StatusFailedConvergence = "failed_convergence"
	StatusError             = "error"
)

// Metrics 是排名服务的 Prometheus 指标，可并发使用。
// 创建后不会自动注册，需调用 Register。
type Metrics struct {
	rankingsTotal     *prometheus.CounterVec
	rankingDuration   prometheus.Histogram
	rankingIterations prometheus.Histogram
	lastParticipants  *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	return &Metrics{
		rankingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRankingsTotal,
			Help: "Total number of ranking requests by result status",
		}, []string{"status"}),
		rankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankingDuration,
			Help:    "Histogram of ranking request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		}),
		rankingIterations: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankingIterations,
			Help:    "Histogram of power iterations used per ranking",
			Buckets: []float64{1, 5, 10, 20, 40, 60, 80, 100},
		}),
		lastParticipants: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: MetricLastParticipants,
			Help: "Number of participants in the last ranking of each scope",
		}, []string{"scope"}),
	}
}

// Register 把全部指标注册到 reg。
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors 返回全部 collector。
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.rankingsTotal,
		m.rankingDuration,
		m.rankingIterations,
		m.lastParticipants,
	}
}

func (m *Metrics) IncRankings(status string) {
	m.rankingsTotal.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveDuration(seconds float64) {
	m.rankingDuration.Observe(seconds)
}

func (m *Metrics) ObserveIterations(n int) {
	m.rankingIterations.Observe(float64(n))
}

func (m *Metrics) SetLastParticipants(scope string, n int) {
	m.lastParticipants.WithLabelValues(scope).Set(float64(n))
}
