package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/lernwerk/compass/internal/domain/compatibility"
)

// Scoring and quiz Prometheus metrics.
var (
	ScoreBatchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_batches_total",
			Help:      "Total number of scored candidate batches",
		},
		[]string{"mode", "status"},
	)

	ScoreBatchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score_batch_duration_seconds",
			Help:      "Candidate batch scoring duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1},
		},
		[]string{"mode"},
	)

	ScoreCandidatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "score_candidates_total",
			Help:      "Candidates seen by the scorer, by outcome",
		},
		[]string{"mode", "outcome"}, // "ranked" / "dropped" / "rejected"
	)

	QuizOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_operations_total",
			Help:      "Quiz session operations by result",
		},
		[]string{"operation", "status"},
	)

	QuizCompletedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "quiz_completed_total",
			Help:      "Completed quiz sessions by final level",
		},
		[]string{"level"},
	)
)

var registerEngine sync.Once

// RegisterEngineMetrics registers the scoring and quiz metrics with the
// default registerer. Safe to call more than once.
func RegisterEngineMetrics() {
	registerEngine.Do(func() {
		prometheus.MustRegister(
			ScoreBatchesTotal,
			ScoreBatchDuration,
			ScoreCandidatesTotal,
			QuizOperationsTotal,
			QuizCompletedTotal,
		)
	})
}

// Recorder feeds the engine metrics. It satisfies the recorder contracts of
// the scoring and quiz services.
type Recorder struct{}

// ObserveBatch records one scored batch.
func (Recorder) ObserveBatch(
	mode compatibility.Mode, status string, candidates, ranked, rejected int, d time.Duration,
) {
	m := string(mode)
	ScoreBatchesTotal.WithLabelValues(m, status).Inc()
	if status != "ok" {
		return
	}
	ScoreBatchDuration.WithLabelValues(m).Observe(d.Seconds())
	ScoreCandidatesTotal.WithLabelValues(m, "ranked").Add(float64(ranked))
	ScoreCandidatesTotal.WithLabelValues(m, "rejected").Add(float64(rejected))
	if dropped := candidates - ranked - rejected; dropped > 0 {
		ScoreCandidatesTotal.WithLabelValues(m, "dropped").Add(float64(dropped))
	}
}

// ObserveQuizOp records one quiz session operation.
func (Recorder) ObserveQuizOp(operation, status string) {
	QuizOperationsTotal.WithLabelValues(operation, status).Inc()
}

// ObserveQuizCompleted records a session reaching the complete phase.
func (Recorder) ObserveQuizCompleted(level int) {
	QuizCompletedTotal.WithLabelValues(strconv.Itoa(level)).Inc()
}
