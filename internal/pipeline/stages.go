package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
	"git.home.luguber.info/inful/sitebuilder/internal/metrics"
)

// StageName identifies a build stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoad      StageName = "load"
	StageParse     StageName = "parse"
	StageGenerate  StageName = "generate"
	StageAggregate StageName = "aggregate"
	StageWrite     StageName = "write"
	StageStatic    StageName = "static"
)

// StageErrorKind classifies why a stage stopped the build.
type StageErrorKind string

const (
	StageErrorFatal    StageErrorKind = "fatal"
	StageErrorCanceled StageErrorKind = "canceled"
)

// StageError wraps the error that stopped the build with the stage it came from.
type StageError struct {
	Kind  StageErrorKind
	Stage StageName
	Err   error
}

func (e *StageError) Error() string { return fmt.Sprintf("%s stage %s: %v", e.Kind, e.Stage, e.Err) }
func (e *StageError) Unwrap() error { return e.Err }

type stageFn func(bs *buildState) error

type stageDef struct {
	name StageName
	fn   stageFn
}

// runStages executes stages in order, recording timing and stopping on the
// first error. Cancellation is only observed between stages.
func runStages(ctx context.Context, bs *buildState, stages []stageDef) error {
	for _, st := range stages {
		select {
		case <-ctx.Done():
			bs.report.StageResults[st.name] = metrics.ResultCanceled
			bs.recorder.IncStageResult(string(st.name), metrics.ResultCanceled)
			return &StageError{Kind: StageErrorCanceled, Stage: st.name, Err: ctx.Err()}
		default:
		}

		bs.logger.Debug("Stage started", logfields.Stage(string(st.name)))
		t0 := time.Now()
		err := st.fn(bs)
		dur := time.Since(t0)

		bs.report.StageDurations[st.name] = dur
		bs.recorder.ObserveStageDuration(string(st.name), dur)

		if err != nil {
			bs.report.StageResults[st.name] = metrics.ResultFatal
			bs.recorder.IncStageResult(string(st.name), metrics.ResultFatal)
			bs.logger.Debug("Stage failed",
				logfields.Stage(string(st.name)),
				slog.String("category", string(errors.GetCategory(err))),
				logfields.DurationMS(float64(dur.Microseconds())/1000),
				logfields.Error(err))
			return &StageError{Kind: StageErrorFatal, Stage: st.name, Err: err}
		}

		bs.report.StageResults[st.name] = metrics.ResultSuccess
		bs.recorder.IncStageResult(string(st.name), metrics.ResultSuccess)
		bs.logger.Debug("Stage completed",
			logfields.Stage(string(st.name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}

