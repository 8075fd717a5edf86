package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"skein/internal/compiler"
	"skein/internal/stringtable"
)

var stringsCmd = &cobra.Command{
	Use:   "strings [flags] [trees...]",
	Short: "Export the localization string table",
	Long: "Run a strings-only job and export the table as CSV for localization\n" +
		"tooling. Lines without authored #line: ids fail the export; run compile\n" +
		"first to see which nodes need tagging.",
	RunE: stringsExecution,
}

func init() {
	stringsCmd.Flags().StringP("output", "o", "", "output file (default from skein.toml, - for stdout)")
	stringsCmd.Flags().Bool("json", false, "print diagnostics as JSON")
}

func stringsExecution(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	output, _ := flags.GetString("output")
	asJSON, _ := flags.GetBool("json")
	quiet, _ := flags.GetBool("quiet")
	maxDiagnostics, _ := flags.GetInt("max-diagnostics")

	colorOn, err := resolveColor(cmd)
	if err != nil {
		return err
	}

	if output == "" {
		if manifest, found, merr := loadProjectManifest("."); merr == nil && found {
			output = manifest.Config.Strings.Output
		}
	}
	if output == "" {
		output = "-"
	}

	paths, err := resolveTreePaths(args)
	if err != nil {
		return err
	}
	inputs, err := readTrees(paths)
	if err != nil {
		return err
	}

	job := &compiler.Job{Files: filesOf(inputs), Type: compiler.StringsOnly}
	result := compiler.CompileWithOptions(job, compiler.Options{MaxDiagnostics: maxDiagnostics})

	printDiagnostics(cmd, result.Diagnostics, asJSON, colorOn, maxDiagnostics)
	if result.HasErrors() {
		return fmt.Errorf("%d error(s)", result.ErrorCount())
	}

	var err2 error
	if output == "-" {
		err2 = stringtable.ExportCSV(cmd.OutOrStdout(), result.StringTable)
	} else {
		var f *os.File
		f, err2 = os.Create(output)
		if err2 != nil {
			return fmt.Errorf("failed to write %q: %w", output, err2)
		}
		defer f.Close()
		err2 = stringtable.ExportCSV(f, result.StringTable)
	}
	if err2 != nil {
		return err2
	}

	if !quiet && output != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "exported %d string(s) to %s\n", len(result.StringTable), output)
	}
	return nil
}
