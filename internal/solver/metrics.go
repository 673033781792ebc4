package solver

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the solver's prometheus instruments. A nil *Metrics records nothing.
type Metrics struct {
	sessions   *prometheus.CounterVec
	guesses    prometheus.Counter
	rejections prometheus.Counter
	rows       prometheus.Histogram
	poolSize   prometheus.Histogram
}

// NewMetrics creates the instruments and registers them with reg (if non-nil).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sessions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wordle_solver",
			Name:      "sessions_total",
			Help:      "Finished solver sessions by outcome.",
		}, []string{"outcome"}),
		guesses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordle_solver",
			Name:      "guesses_total",
			Help:      "Accepted guesses.",
		}),
		rejections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "wordle_solver",
			Name:      "rejections_total",
			Help:      "Guesses rejected by the game and removed from the dictionary.",
		}),
		rows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordle_solver",
			Name:      "rows_used",
			Help:      "Rows used by solved sessions.",
			Buckets:   []float64{1, 2, 3, 4, 5, 6},
		}),
		poolSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "wordle_solver",
			Name:      "pool_size",
			Help:      "Candidate pool size after each accepted guess.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.sessions, m.guesses, m.rejections, m.rows, m.poolSize)
	}
	return m
}

func (m *Metrics) observeGuess(poolSize int) {
	if m == nil {
		return
	}
	m.guesses.Inc()
	m.poolSize.Observe(float64(poolSize))
}

func (m *Metrics) observeRejection() {
	if m == nil {
		return
	}
	m.rejections.Inc()
}

func (m *Metrics) observeSession(res SessionResult, err error) {
	if m == nil {
		return
	}
	outcome := "lost"
	switch {
	case err != nil:
		outcome = "error"
	case res.Solved:
		outcome = "won"
		m.rows.Observe(float64(len(res.Rows)))
	}
	m.sessions.WithLabelValues(outcome).Inc()
}
