package main

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"skein/internal/compiler"
	"skein/internal/syntax"
	"skein/internal/ui"
)

type batchOutcome struct {
	results []compiler.Result
	err     error
}

// awaitOutcome waits for the compile goroutine while draining any
// progress events the TUI no longer consumes. Without the drain a
// full events buffer would block every worker inside the sink and
// the outcome would never arrive.
func awaitOutcome(events <-chan compiler.Event, outcomeCh <-chan batchOutcome) batchOutcome {
	for {
		select {
		case _, ok := <-events:
			if !ok {
				return <-outcomeCh
			}
		case outcome := <-outcomeCh:
			return outcome
		}
	}
}

// compileBatch compiles each tree as its own job under a progress
// TUI. Every job's diagnostics print after the TUI exits, in input
// order, so the interleaved live view never garbles them.
func compileBatch(cmd *cobra.Command, inputs []treeInput, jobType compiler.JobType, jobLimit, maxDiagnostics int, asJSON, colorOn bool) error {
	jobs := make([]*compiler.Job, len(inputs))
	labels := make([]string, len(inputs))
	for i, in := range inputs {
		jobs[i] = &compiler.Job{Files: []syntax.File{in.File}, Type: jobType}
		labels[i] = in.Path
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan compiler.Event, 256)
	outcomeCh := make(chan batchOutcome, 1)

	go func() {
		results, err := compiler.CompileAll(ctx, jobs, compiler.BatchOptions{
			Jobs:           jobLimit,
			MaxDiagnostics: maxDiagnostics,
			Sink:           compiler.ChannelSink{Ch: events},
			Labels:         labels,
		})
		outcomeCh <- batchOutcome{results: results, err: err}
		close(events)
	}()

	model := ui.NewProgressModel("compiling dialogue", labels, events)
	teaProgram := tea.NewProgram(model, tea.WithOutput(cmd.OutOrStdout()))
	_, uiErr := teaProgram.Run()

	// The TUI may exit before compilation finishes (ctrl+c). Cancel
	// pending jobs and keep draining events so in-flight workers never
	// block on a full channel.
	cancel()
	outcome := awaitOutcome(events, outcomeCh)
	if uiErr != nil {
		return uiErr
	}
	if errors.Is(outcome.err, context.Canceled) {
		return fmt.Errorf("compilation interrupted")
	}
	if outcome.err != nil {
		return outcome.err
	}

	errJobs := 0
	for i, r := range outcome.results {
		if len(r.Diagnostics) > 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s:\n", labels[i])
			printDiagnostics(cmd, r.Diagnostics, asJSON, colorOn, maxDiagnostics)
		}
		if r.HasErrors() {
			errJobs++
		}
	}
	if errJobs > 0 {
		return fmt.Errorf("%d of %d job(s) failed", errJobs, len(jobs))
	}
	return nil
}
