package compiler

import (
	"fmt"
	"time"

	"skein/internal/diag"
	"skein/internal/library"
	"skein/internal/observ"
	"skein/internal/source"
	"skein/internal/syntax"
)

// Options tune one Compile call without changing its semantics.
type Options struct {
	// Timer, when set, records per-pass durations.
	Timer *observ.Timer
	// MaxDiagnostics caps the diagnostic list; 0 means unbounded.
	MaxDiagnostics int
	// Sink receives a pair of events per pass when set. Label names
	// the job in those events.
	Sink  ProgressSink
	Label string
}

// Compile runs the full pipeline over a job.
func Compile(job *Job) Result {
	return CompileWithOptions(job, Options{})
}

// CompileWithOptions is Compile with explicit options.
func CompileWithOptions(job *Job, opts Options) Result {
	st := newState(job, opts)

	passes := []struct {
		stage Stage
		run   func(*state, Result) Result
	}{
		{StageCheck, checkTrees},
		{StageDeclarations, registerDeclarations},
		{StageStrings, buildStringTable},
		{StageCodegen, generateCode},
	}

	result := Result{FileTags: make(map[string][]string)}
	for _, p := range passes {
		if p.stage == StageCodegen && job.Type != FullCompilation {
			break
		}
		opts.notify(p.stage, StatusWorking, nil, 0)
		start := time.Now()
		idx := -1
		if opts.Timer != nil {
			idx = opts.Timer.Begin(string(p.stage))
		}
		result = p.run(st, result)
		if idx >= 0 {
			opts.Timer.End(idx, "")
		}
		opts.notify(p.stage, StatusDone, nil, time.Since(start))
	}

	return finalize(st, result)
}

func (o Options) notify(stage Stage, status Status, err error, elapsed time.Duration) {
	if o.Sink == nil {
		return
	}
	o.Sink.OnEvent(Event{
		Job:     o.Label,
		Stage:   stage,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

// state carries pass-to-pass context that is not part of the Result:
// the resolved library, the tracking set, and bookkeeping that lets
// later passes point diagnostics at earlier definitions.
type state struct {
	job  *Job
	opts Options
	bag  *diag.Bag

	// lib is the standard library with the job's functions merged in.
	lib *library.Library

	// decls indexes declarations by variable name.
	decls map[string]Declaration
	// declOrder preserves registration order for the Result.
	declOrder []string

	// nodes indexes node titles to their first definition site.
	nodes map[string]nodeSite

	// tracking names the nodes that need visit instrumentation.
	tracking map[string]struct{}

	// warned holds variable names already reported as undeclared, so
	// each name warns once per job rather than once per use.
	warned map[string]struct{}

	// lineIDs carries the id assigned to each line statement and
	// option from the strings pass into codegen, keyed by pointer
	// into the job's own trees.
	stmtIDs map[*syntax.Stmt]string
	optIDs  map[*syntax.Option]string
}

type nodeSite struct {
	file string
	span source.Span
}

func newState(job *Job, opts Options) *state {
	lib := library.Standard()
	lib.Merge(job.Library)
	return &state{
		job:      job,
		opts:     opts,
		bag:      diag.NewBag(opts.MaxDiagnostics),
		lib:      lib,
		decls:    make(map[string]Declaration),
		nodes:    make(map[string]nodeSite),
		tracking: make(map[string]struct{}),
		warned:   make(map[string]struct{}),
		stmtIDs:  make(map[*syntax.Stmt]string),
		optIDs:   make(map[*syntax.Option]string),
	}
}

func (st *state) declare(d Declaration) {
	if _, exists := st.decls[d.Name]; !exists {
		st.declOrder = append(st.declOrder, d.Name)
	}
	st.decls[d.Name] = d
}

func (st *state) declarations() []Declaration {
	out := make([]Declaration, 0, len(st.declOrder))
	for _, name := range st.declOrder {
		out = append(out, st.decls[name])
	}
	return out
}

// finalize orders diagnostics, applies the error policy for programs
// and checks internal invariants on what codegen produced.
func finalize(st *state, r Result) Result {
	st.bag.Dedup()
	r.Diagnostics = st.bag.Items()

	if r.Program != nil {
		for _, n := range r.Program.Nodes {
			if err := n.ValidateLabels(); err != nil {
				panic(fmt.Errorf("compiler produced invalid bytecode: %w", err))
			}
		}
	}
	if r.HasErrors() {
		r.Program = nil
	}
	return r
}
