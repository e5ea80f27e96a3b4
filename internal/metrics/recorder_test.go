package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNoopRecorderSatisfiesInterface(t *testing.T) {
	var r Recorder = NoopRecorder{}
	require.NotPanics(t, func() {
		r.ObserveStageDuration("load", time.Millisecond)
		r.ObserveBuildDuration(time.Millisecond)
		r.IncStageResult("load", ResultSuccess)
		r.IncBuildOutcome(BuildOutcomeFailed)
		r.SetPages("post", 1)
		r.AddSourceFiles(1, 0)
	})
}

var _ Recorder = (*PrometheusRecorder)(nil)
