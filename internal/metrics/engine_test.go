package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/lernwerk/compass/internal/domain/compatibility"
)

func TestRecorder_ObserveBatch(t *testing.T) {
	var r Recorder
	mode := string(compatibility.ModeColdStart)
	before := testutil.ToFloat64(ScoreBatchesTotal.WithLabelValues(mode, "ok"))
	ranked := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "ranked"))
	dropped := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "dropped"))

	r.ObserveBatch(compatibility.ModeColdStart, "ok", 10, 5, 2, 3*time.Millisecond)

	if got := testutil.ToFloat64(ScoreBatchesTotal.WithLabelValues(mode, "ok")); got != before+1 {
		t.Errorf("score_batches_total = %v, want %v", got, before+1)
	}
	if got := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "ranked")); got != ranked+5 {
		t.Errorf("ranked = %v, want %v", got, ranked+5)
	}
	if got := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "dropped")); got != dropped+3 {
		t.Errorf("dropped = %v, want %v", got, dropped+3)
	}
	if testutil.CollectAndCount(ScoreBatchDuration) == 0 {
		t.Error("expected score_batch_duration_seconds observations")
	}
}

func TestRecorder_ObserveBatchFailureSkipsCandidates(t *testing.T) {
	var r Recorder
	mode := string(compatibility.ModeFull)
	ranked := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "ranked"))

	r.ObserveBatch(compatibility.ModeFull, "invalid", 10, 0, 0, 0)

	if got := testutil.ToFloat64(ScoreBatchesTotal.WithLabelValues(mode, "invalid")); got < 1 {
		t.Errorf("invalid batches = %v", got)
	}
	if got := testutil.ToFloat64(ScoreCandidatesTotal.WithLabelValues(mode, "ranked")); got != ranked {
		t.Errorf("ranked changed on invalid batch: %v -> %v", ranked, got)
	}
}

func TestRecorder_Quiz(t *testing.T) {
	var r Recorder
	before := testutil.ToFloat64(QuizOperationsTotal.WithLabelValues("toggle", "conflict"))
	r.ObserveQuizOp("toggle", "conflict")
	if got := testutil.ToFloat64(QuizOperationsTotal.WithLabelValues("toggle", "conflict")); got != before+1 {
		t.Errorf("quiz_operations_total = %v, want %v", got, before+1)
	}

	r.ObserveQuizCompleted(3)
	if got := testutil.ToFloat64(QuizCompletedTotal.WithLabelValues("3")); got < 1 {
		t.Errorf("quiz_completed_total{level=3} = %v", got)
	}
}

func TestRegisterEngineMetrics_Idempotent(t *testing.T) {
	RegisterEngineMetrics()
	RegisterEngineMetrics()
}
