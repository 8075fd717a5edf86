package compiler

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stage names one pipeline pass in progress events.
type Stage string

const (
	// StageCheck validates the decoded trees.
	StageCheck Stage = "check"
	// StageDeclarations registers variables and node titles.
	StageDeclarations Stage = "declarations"
	// StageStrings builds the string table.
	StageStrings Stage = "strings"
	// StageCodegen lowers statements to instructions.
	StageCodegen Stage = "codegen"
)

// Status captures progress within a stage or a whole job.
type Status string

const (
	// StatusQueued indicates the job is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage or job finished cleanly.
	StatusDone Status = "done"
	// StatusError indicates the job finished with error diagnostics.
	StatusError Status = "error"
)

// Event reports progress for one stage of a job, or for the whole job
// when Stage is empty.
type Event struct {
	Job     string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events. Batch compilation calls
// OnEvent from multiple goroutines, so implementations must be safe
// for concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// BatchOptions tune CompileAll.
type BatchOptions struct {
	// Jobs bounds how many compilations run at once; <= 0 means one
	// per available CPU.
	Jobs int
	// MaxDiagnostics caps each job's diagnostic list; 0 is unbounded.
	MaxDiagnostics int
	// Sink receives progress events from every job when set.
	Sink ProgressSink
	// Labels names jobs in events, index-matched to the jobs slice.
	// A missing label falls back to "job N".
	Labels []string
}

func (o BatchOptions) label(i int) string {
	if i < len(o.Labels) && o.Labels[i] != "" {
		return o.Labels[i]
	}
	return fmt.Sprintf("job %d", i+1)
}

// CompileAll compiles independent jobs concurrently. Results come
// back indexed like the input; jobs share nothing, so a diagnostic in
// one never shows up in another. The only error CompileAll itself can
// return is the context's.
func CompileAll(ctx context.Context, jobs []*Job, opts BatchOptions) ([]Result, error) {
	if len(jobs) == 0 {
		return nil, nil
	}

	limit := opts.Jobs
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}

	// Result slots are indexed per job, so no mutex is needed.
	results := make([]Result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(limit, len(jobs)))

	for i, job := range jobs {
		label := opts.label(i)
		notifyJob(opts.Sink, label, StatusQueued, nil, 0)

		g.Go(func(i int, job *Job, label string) func() error {
			return func() error {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}

				start := time.Now()
				r := CompileWithOptions(job, Options{
					MaxDiagnostics: opts.MaxDiagnostics,
					Sink:           opts.Sink,
					Label:          label,
				})
				results[i] = r

				if r.HasErrors() {
					err := fmt.Errorf("%d error(s)", r.ErrorCount())
					notifyJob(opts.Sink, label, StatusError, err, time.Since(start))
				} else {
					notifyJob(opts.Sink, label, StatusDone, nil, time.Since(start))
				}
				return nil
			}
		}(i, job, label))
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func notifyJob(sink ProgressSink, label string, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Job: label, Status: status, Err: err, Elapsed: elapsed})
}
