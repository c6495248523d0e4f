package scoring

import (
	"time"

	"github.com/lernwerk/compass/internal/domain/compatibility"
)

// Recorder receives one observation per ScoreBatch call.
type Recorder interface {
	ObserveBatch(mode compatibility.Mode, status string, candidates, ranked, rejected int, d time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveBatch(compatibility.Mode, string, int, int, int, time.Duration) {}
