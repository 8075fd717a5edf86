package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"skein/internal/compiler"
	"skein/internal/diagfmt"
	"skein/internal/program"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [flags] [trees...]",
	Short: "Show what dialogue trees compile to",
	Long: "Compile trees and print a per-node disassembly: labels, instructions and\n" +
		"debug positions. --tree prints the decoded syntax trees instead.",
	RunE: inspectExecution,
}

func init() {
	inspectCmd.Flags().Bool("tree", false, "print the decoded syntax trees instead of bytecode")
	inspectCmd.Flags().Bool("debug", false, "include instruction-to-source position tables")
	inspectCmd.Flags().StringSlice("node", nil, "only show the named node(s)")
}

func inspectExecution(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	showTree, _ := flags.GetBool("tree")
	showDebug, _ := flags.GetBool("debug")
	only, _ := flags.GetStringSlice("node")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")

	colorOn, err := resolveColor(cmd)
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

	out := cmd.OutOrStdout()

	if showTree {
		for i := range inputs {
			if i > 0 {
				fmt.Fprintln(out)
			}
			diagfmt.Tree(out, &inputs[i].File)
		}
		return nil
	}

	job := &compiler.Job{Files: filesOf(inputs), Type: compiler.FullCompilation}
	result := compiler.CompileWithOptions(job, compiler.Options{MaxDiagnostics: maxDiagnostics})

	printDiagnostics(cmd, result.Diagnostics, false, colorOn, maxDiagnostics)
	if result.Program == nil {
		return fmt.Errorf("%d error(s)", result.ErrorCount())
	}

	keep := make(map[string]bool, len(only))
	for _, name := range only {
		keep[name] = true
	}

	var sb strings.Builder
	first := true
	for _, name := range result.Program.NodeNames() {
		if len(keep) > 0 && !keep[name] {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		program.DisassembleNode(&sb, result.Program.Nodes[name])
		if showDebug {
			writeDebugTable(&sb, result.DebugInfo, name)
		}
	}
	fmt.Fprint(out, sb.String())
	return nil
}

func writeDebugTable(sb *strings.Builder, infos []program.DebugInfo, node string) {
	for _, di := range infos {
		if di.NodeName != node || len(di.LinePositions) == 0 {
			continue
		}
		offsets := make([]int, 0, len(di.LinePositions))
		for off := range di.LinePositions {
			offsets = append(offsets, off)
		}
		sort.Ints(offsets)
		fmt.Fprintf(sb, "  debug (%s):\n", di.FileName)
		for _, off := range offsets {
			pos := di.LinePositions[off]
			fmt.Fprintf(sb, "    %04d -> %d:%d\n", off, pos.Line, pos.Character)
		}
	}
}
