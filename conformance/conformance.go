// Package conformance runs the parser over a directory of files that must
// parse and a directory of files that must not, and reports mismatches.
package conformance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dhamidi/jsxparse/javascript/parser"
	"github.com/dhamidi/jsxparse/project"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
)

var log = commonlog.GetLogger("jsxparse.conformance")

// ReportPrefix starts the name of every report file.
const ReportPrefix = "jsxparse-test-report-"

// samples is the number of mismatching files listed per bucket in the
// summary.
const samples = 5

type Expectation int

const (
	ShouldParse Expectation = iota
	ShouldFail
)

func (e Expectation) String() string {
	if e == ShouldParse {
		return "pass"
	}
	return "fail"
}

// Result is the outcome of parsing one file. A file parses when its error
// list is empty.
type Result struct {
	Path     string
	Expected Expectation
	Parsed   bool
	Problems parser.ErrorList
	ReadErr  error
}

func (r Result) Passed() bool {
	return r.ReadErr == nil && r.Parsed == (r.Expected == ShouldParse)
}

type Stats struct {
	Total  int `json:"total"`
	Passed int `json:"passed"`
	Failed int `json:"failed"`
}

// Rate is the percentage of passed files, or zero for an empty bucket.
func (s Stats) Rate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Passed) / float64(s.Total) * 100
}

type FailedTest struct {
	File     string `json:"file"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Problem  string `json:"problem,omitempty"`
}

type Report struct {
	Timestamp string `json:"timestamp"`
	Stats     struct {
		ShouldParse Stats `json:"should_pass"`
		ShouldFail  Stats `json:"should_fail"`
	} `json:"stats"`
	FailedTests []FailedTest `json:"failed_tests"`
}

// Overall sums both buckets.
func (r *Report) Overall() Stats {
	p, f := r.Stats.ShouldParse, r.Stats.ShouldFail
	return Stats{Total: p.Total + f.Total, Passed: p.Passed + f.Passed, Failed: p.Failed + f.Failed}
}

type Runner struct {
	project *project.Project
	now     func() time.Time
}

func NewRunner(p *project.Project) *Runner {
	return &Runner{project: p, now: time.Now}
}

// Run parses every source file under parseDir and failDir. The returned
// report lists the files whose outcome did not match their directory.
func (r *Runner) Run(ctx context.Context, parseDir, failDir string) (*Report, error) {
	report := &Report{Timestamp: r.now().Format("20060102-150405")}

	parsed, err := r.runDir(ctx, parseDir, ShouldParse)
	if err != nil {
		return nil, err
	}
	failed, err := r.runDir(ctx, failDir, ShouldFail)
	if err != nil {
		return nil, err
	}

	report.Stats.ShouldParse = collect(report, parsed)
	report.Stats.ShouldFail = collect(report, failed)
	return report, nil
}

func (r *Runner) runDir(ctx context.Context, dir string, expected Expectation) ([]Result, error) {
	if _, err := os.Stat(dir); err != nil {
		return nil, fmt.Errorf("test directory: %w", err)
	}
	files, err := r.project.SourceFiles(dir)
	if err != nil {
		return nil, err
	}
	log.Infof("testing %d files in %s", len(files), dir)

	results := make([]Result, len(files))
	sem := make(chan struct{}, max(r.project.Workers, 1))
	g, gctx := errgroup.WithContext(ctx)

	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			select {
			case sem <- struct{}{}:
			case <-gctx.Done():
				return gctx.Err()
			}
			defer func() { <-sem }()

			results[i] = check(path, expected)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("run %s: %w", dir, err)
	}
	return results, nil
}

func check(path string, expected Expectation) Result {
	res := Result{Path: path, Expected: expected}
	content, err := os.ReadFile(path)
	if err != nil {
		log.Warningf("read %s: %s", path, err)
		res.ReadErr = err
		return res
	}
	_, res.Problems = parser.Parse(content, parser.WithFile(path))
	res.Parsed = len(res.Problems) == 0
	return res
}

func collect(report *Report, results []Result) Stats {
	stats := Stats{Total: len(results)}
	for _, res := range results {
		if res.Passed() {
			stats.Passed++
			continue
		}
		stats.Failed++
		ft := FailedTest{File: res.Path, Expected: res.Expected.String(), Actual: "fail"}
		switch {
		case res.ReadErr != nil:
			ft.Problem = res.ReadErr.Error()
		case res.Parsed:
			ft.Actual = "pass"
		default:
			ft.Problem = res.Problems[0].Error()
		}
		report.FailedTests = append(report.FailedTests, ft)
	}
	return stats
}

// WriteReport saves the report as indented JSON in dir. Nothing is written
// when every file passed, and the returned path is empty.
func (r *Report) WriteReport(dir string) (string, error) {
	if len(r.FailedTests) == 0 {
		return "", nil
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}
	path := filepath.Join(dir, ReportPrefix+r.Timestamp+".json")
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	log.Infof("report saved to %s", path)
	return path, nil
}

// PrintSummary writes the per-bucket and overall pass rates followed by a
// few mismatching files of each bucket.
func (r *Report) PrintSummary(w io.Writer) {
	fmt.Fprintln(w, "===== Test Results =====")
	printStats(w, "Should parse successfully", r.Stats.ShouldParse)
	printStats(w, "Should fail to parse", r.Stats.ShouldFail)
	fmt.Fprintln(w)
	printStats(w, "Overall", r.Overall())

	if len(r.FailedTests) == 0 {
		return
	}
	fmt.Fprintf(w, "\nFailed tests: %d\n", len(r.FailedTests))
	printSamples(w, "Sample files that should parse but failed", r.failures(ShouldParse))
	printSamples(w, "Sample files that should fail but parsed", r.failures(ShouldFail))
}

func printStats(w io.Writer, title string, s Stats) {
	fmt.Fprintf(w, "%s:\n  Passed: %d/%d (%.1f%%)\n", title, s.Passed, s.Total, s.Rate())
}

func printSamples(w io.Writer, title string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d):\n", title, len(files))
	for i, f := range files {
		if i == samples {
			fmt.Fprintf(w, "  ... and %d more\n", len(files)-samples)
			break
		}
		fmt.Fprintf(w, "  %d. %s\n", i+1, f)
	}
}

func (r *Report) failures(expected Expectation) []string {
	var out []string
	for _, ft := range r.FailedTests {
		if ft.Expected == expected.String() {
			out = append(out, ft.File)
		}
	}
	return out
}
