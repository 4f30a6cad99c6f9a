package metrics

import "time"

// ResultLabel enumerates page result categories for counters.
type ResultLabel string

const (
	ResultSuccess ResultLabel = "success"
	ResultFailed  ResultLabel = "failed"
	ResultSkipped ResultLabel = "skipped"
)

// OutcomeLabel is the final status of a generation run.
type OutcomeLabel string

const (
	OutcomeSuccess  OutcomeLabel = "success"
	OutcomeFailed   OutcomeLabel = "failed"
	OutcomeCanceled OutcomeLabel = "canceled"
)

// Recorder defines observability hooks for wiki generation.
type Recorder interface {
	ObservePageDuration(kind string, d time.Duration)
	IncPageResult(kind string, result ResultLabel)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	SetEntities(n int)
	SetBrokenLinks(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePageDuration(string, time.Duration) {}
func (NoopRecorder) IncPageResult(string, ResultLabel)         {}
func (NoopRecorder) ObserveRunDuration(time.Duration)          {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                {}
func (NoopRecorder) SetEntities(int)                           {}
func (NoopRecorder) SetBrokenLinks(int)                        {}
