package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skein/internal/artifact"
	"skein/internal/compiler"
	"skein/internal/diag"
	"skein/internal/diagfmt"
	"skein/internal/observ"
	"skein/internal/program"
	"skein/internal/stringtable"
)

var compileCmd = &cobra.Command{
	Use:   "compile [flags] [trees...]",
	Short: "Compile dialogue trees into a bytecode program",
	Long: "Compile syntax-tree exports (.skt.json) into a bytecode program and a\n" +
		"localization string table. With no arguments the inputs come from skein.toml.",
	RunE: compileExecution,
}

func init() {
	compileCmd.Flags().Bool("type-check-only", false, "run declaration and string passes without generating code")
	compileCmd.Flags().Bool("json", false, "print diagnostics as JSON")
	compileCmd.Flags().String("emit-asm", "", "write a program disassembly to the given file (- for stdout)")
	compileCmd.Flags().String("emit-strings", "", "write the string table CSV to the given file")
	compileCmd.Flags().Bool("timings", false, "show per-pass timing information")
	compileCmd.Flags().Bool("cache", false, "reuse cached programs when inputs are unchanged")
	compileCmd.Flags().String("ui", "off", "interactive batch progress (auto|on|off); compiles each tree as its own job")
	compileCmd.Flags().Int("jobs", 0, "how many batch jobs run at once (0 = one per CPU)")
}

func compileExecution(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	typeCheckOnly, _ := flags.GetBool("type-check-only")
	asJSON, _ := flags.GetBool("json")
	emitASM, _ := flags.GetString("emit-asm")
	emitStrings, _ := flags.GetString("emit-strings")
	showTimings, _ := flags.GetBool("timings")
	useCache, _ := flags.GetBool("cache")
	uiValue, _ := flags.GetString("ui")
	jobs, _ := flags.GetInt("jobs")
	quiet, _ := flags.GetBool("quiet")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")

	colorOn, err := resolveColor(cmd)
	if err != nil {
		return err
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	paths, err := resolveTreePaths(args)
	if err != nil {
		return err
	}
	inputs, err := readTrees(paths)
	if err != nil {
		return err
	}

	jobType := compiler.FullCompilation
	if typeCheckOnly {
		jobType = compiler.TypeCheckOnly
	}

	if shouldUseTUI(uiModeValue) && len(inputs) > 1 {
		return compileBatch(cmd, inputs, jobType, jobs, maxDiagnostics, asJSON, colorOn)
	}

	var cache *artifact.DiskCache
	if useCache {
		cache, err = artifact.OpenDefault("skeinc")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
	}

	job := &compiler.Job{Files: filesOf(inputs), Type: jobType}
	key := cacheKey(inputs, jobType)

	if cache != nil && jobType == compiler.FullCompilation {
		var payload artifact.Payload
		if hit, err := cache.Get(key, &payload); err == nil && hit {
			prog, perr := payload.Program()
			if perr == nil {
				if !quiet {
					fmt.Fprintf(cmd.ErrOrStderr(), "cache hit: %d node(s), %d string(s)\n",
						len(prog.Nodes), len(payload.Table()))
				}
				return emitOutputs(cmd, prog, payload.Table(), emitASM, emitStrings)
			}
			// A corrupt payload is a miss; recompile over it.
		}
	}

	var timer *observ.Timer
	if showTimings {
		timer = observ.NewTimer()
	}
	result := compiler.CompileWithOptions(job, compiler.Options{
		Timer:          timer,
		MaxDiagnostics: maxDiagnostics,
	})

	printDiagnostics(cmd, result.Diagnostics, asJSON, colorOn, maxDiagnostics)
	if timer != nil {
		fmt.Fprint(cmd.ErrOrStderr(), timer.Summary())
	}

	if result.HasErrors() {
		return fmt.Errorf("%d error(s)", result.ErrorCount())
	}

	if cache != nil && cacheWorthy(result) {
		payload := artifact.NewPayload(key, result.Program, result.StringTable, result.DebugInfo, result.FileTags)
		if err := cache.Put(key, payload); err != nil && !quiet {
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to store cache entry: %v\n", err)
		}
	}

	if !quiet {
		nodes := 0
		if result.Program != nil {
			nodes = len(result.Program.Nodes)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "compiled %d file(s): %d node(s), %d string(s)\n",
			len(inputs), nodes, len(result.StringTable))
		if result.ContainsImplicitStringTags {
			fmt.Fprintln(cmd.ErrOrStderr(), "note: some lines have generated ids; add #line: tags before exporting strings")
		}
	}

	return emitOutputs(cmd, result.Program, result.StringTable, emitASM, emitStrings)
}

// cacheWorthy reports whether a result may be stored in the artifact
// cache. A cache hit skips diagnostic printing entirely, so a stored
// payload carrying warnings or infos would silence them on every warm
// run. Only spotless results qualify.
func cacheWorthy(r compiler.Result) bool {
	return r.Program != nil && len(r.Diagnostics) == 0
}

// cacheKey digests every input's path and content plus the job type,
// so renames and flag changes miss.
func cacheKey(inputs []treeInput, jobType compiler.JobType) artifact.Digest {
	parts := make([]artifact.Digest, 0, 2*len(inputs)+1)
	for _, in := range inputs {
		parts = append(parts, artifact.HashString(in.Path), artifact.HashContent(in.Raw))
	}
	parts = append(parts, artifact.HashString(jobType.String()))
	return artifact.Combine(parts...)
}

func emitOutputs(cmd *cobra.Command, prog *program.Program, table stringtable.Table, emitASM, emitStrings string) error {
	if emitASM != "" && prog != nil {
		asm := program.Disassemble(prog)
		if emitASM == "-" {
			fmt.Fprint(cmd.OutOrStdout(), asm)
		} else if err := os.WriteFile(emitASM, []byte(asm), 0o644); err != nil {
			return fmt.Errorf("failed to write %q: %w", emitASM, err)
		}
	}
	if emitStrings != "" {
		f, err := os.Create(emitStrings)
		if err != nil {
			return fmt.Errorf("failed to write %q: %w", emitStrings, err)
		}
		defer f.Close()
		if err := stringtable.ExportCSVUnchecked(f, table); err != nil {
			return err
		}
	}
	return nil
}

func printDiagnostics(cmd *cobra.Command, items []diag.Diagnostic, asJSON, colorOn bool, maxDiagnostics int) {
	if len(items) == 0 {
		return
	}
	if asJSON {
		_ = diagfmt.JSON(cmd.OutOrStdout(), items, diagfmt.JSONOpts{
			Max:          maxDiagnostics,
			IncludeNotes: true,
		})
		return
	}
	diagfmt.Pretty(cmd.ErrOrStderr(), items, diagfmt.PrettyOpts{
		Color:     colorOn,
		ShowNotes: true,
	})
}
