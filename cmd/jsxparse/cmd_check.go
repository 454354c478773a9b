package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jsxparse/conformance"

	"github.com/spf13/cobra"
)

func newCheckCmd(g *globals) *cobra.Command {
	var extensions []string
	var workers int
	var reportDir string

	cmd := &cobra.Command{
		Use:   "check <should-parse-dir> <should-fail-dir>",
		Short: "Check that files parse or fail to parse as their directory says",
		Long: `Parse every source file in two directories. Files in the first must
parse without problems, files in the second must not.

A summary is printed. When any file ends up in the wrong bucket a JSON
report named jsxparse-test-report-YYYYMMDD-HHMMSS.json is written to the
report directory and the command fails.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			proj := *g.project
			if cmd.Flags().Changed("extensions") {
				proj.SetExtensions(extensions)
			}
			if workers > 0 {
				proj.Workers = workers
			}
			if reportDir != "" {
				proj.ReportDir = reportDir
			}

			fmt.Printf("Testing file extensions: %v\n", proj.Extensions)
			report, err := conformance.NewRunner(&proj).Run(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			report.PrintSummary(os.Stdout)

			path, err := report.WriteReport(proj.ReportDir)
			if err != nil {
				return err
			}
			if path == "" {
				return nil
			}
			fmt.Printf("\nDetailed report saved to: %s\n", path)
			return fmt.Errorf("%d files did not match their directory", len(report.FailedTests))
		},
	}

	cmd.Flags().StringSliceVarP(&extensions, "extensions", "e", nil, "file extensions to test (default .js .jsx .mjs .cjs)")
	cmd.Flags().IntVarP(&workers, "jobs", "j", 0, "number of files parsed in parallel (default from project, else CPU count)")
	cmd.Flags().StringVar(&reportDir, "report-dir", "", "directory for the JSON report (default project root)")

	return cmd
}
