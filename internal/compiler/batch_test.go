package compiler

import (
	"context"
	"errors"
	"strings"
	"testing"

	"skein/internal/syntax"
	"skein/internal/testkit"
)

func greetJob(node string) *Job {
	f := testkit.NewFile(node+".skein",
		testkit.NewNode(node, testkit.Line("Hi.", "line:greet")))
	return &Job{Files: []syntax.File{f}}
}

func brokenJob() *Job {
	f := testkit.NewFile("broken.skein",
		testkit.NewNode("Broken", testkit.CallStmt(testkit.Call("no_such_fn"))))
	return &Job{Files: []syntax.File{f}}
}

func TestCompileAllKeepsInputOrder(t *testing.T) {
	jobs := []*Job{greetJob("Alpha"), greetJob("Beta"), greetJob("Gamma")}

	results, err := CompileAll(context.Background(), jobs, BatchOptions{Jobs: 2})
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	if len(results) != len(jobs) {
		t.Fatalf("results = %d, want %d", len(results), len(jobs))
	}
	for i, want := range []string{"Alpha", "Beta", "Gamma"} {
		r := results[i]
		if r.HasErrors() || r.Program == nil {
			t.Fatalf("job %d failed: %v", i, r.Diagnostics)
		}
		if names := r.Program.NodeNames(); len(names) != 1 || names[0] != want {
			t.Fatalf("job %d compiled %v, want [%s]", i, names, want)
		}
	}
}

func TestCompileAllEmptyInput(t *testing.T) {
	results, err := CompileAll(context.Background(), nil, BatchOptions{})
	if err != nil || results != nil {
		t.Fatalf("got %v, %v", results, err)
	}
}

func TestCompileAllEmitsLifecycleEvents(t *testing.T) {
	ch := make(chan Event, 64)
	opts := BatchOptions{
		Sink:   ChannelSink{Ch: ch},
		Labels: []string{"alpha", "beta"},
	}

	_, err := CompileAll(context.Background(), []*Job{greetJob("A"), greetJob("B")}, opts)
	if err != nil {
		t.Fatalf("CompileAll: %v", err)
	}
	close(ch)

	byJob := map[string][]Event{}
	for evt := range ch {
		byJob[evt.Job] = append(byJob[evt.Job], evt)
	}

	for _, label := range []string{"alpha", "beta"} {
		events := byJob[label]
		if len(events) == 0 {
			t.Fatalf("no events for %s; jobs seen: %v", label, keys(byJob))
		}
		first, last := events[0], events[len(events)-1]
		if first.Stage != "" || first.Status != StatusQueued {
			t.Fatalf("%s first event = %+v, want queued", label, first)
		}
		if last.Stage != "" || last.Status != StatusDone {
			t.Fatalf("%s last event = %+v, want job done", label, last)
		}

		done := map[Stage]bool{}
		for _, evt := range events {
			if evt.Stage != "" && evt.Status == StatusDone {
				done[evt.Stage] = true
			}
		}
		for _, stage := range []Stage{StageCheck, StageDeclarations, StageStrings, StageCodegen} {
			if !done[stage] {
				t.Fatalf("%s never finished stage %s: %+v", label, stage, events)
			}
		}
	}
}

func keys(m map[string][]Event) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestCompileAllJobErrorsStayPerJob(t *testing.T) {
	ch := make(chan Event, 64)
	opts := BatchOptions{
		Sink:   ChannelSink{Ch: ch},
		Labels: []string{"good", "bad"},
	}

	results, err := CompileAll(context.Background(), []*Job{greetJob("Good"), brokenJob()}, opts)
	if err != nil {
		t.Fatalf("job diagnostics must not fail the batch: %v", err)
	}
	close(ch)

	if results[0].HasErrors() {
		t.Fatalf("good job polluted: %v", results[0].Diagnostics)
	}
	if !results[1].HasErrors() {
		t.Fatal("bad job reported no errors")
	}

	var failure *Event
	for evt := range ch {
		if evt.Job == "bad" && evt.Status == StatusError {
			failure = &evt
		}
	}
	if failure == nil {
		t.Fatal("no error event for the failing job")
	}
	if failure.Err == nil || !strings.Contains(failure.Err.Error(), "error(s)") {
		t.Fatalf("error event = %+v", failure)
	}
}

func TestCompileAllHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := CompileAll(ctx, []*Job{greetJob("A"), greetJob("B")}, BatchOptions{Jobs: 1})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestDefaultLabels(t *testing.T) {
	opts := BatchOptions{Labels: []string{"named"}}
	if got := opts.label(0); got != "named" {
		t.Fatalf("label(0) = %q", got)
	}
	if got := opts.label(1); got != "job 2" {
		t.Fatalf("label(1) = %q", got)
	}
}
