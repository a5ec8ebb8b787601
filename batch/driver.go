// Package batch drives directory-scale ingestion: it walks an input
// directory, parses every file with one format adapter across a bounded
// worker pool, and writes one canonical JSON artifact per document. A bad
// file is recorded and skipped; it never aborts the run.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/scholarly-tools/litingest/doc"
	"github.com/scholarly-tools/litingest/format"
	"github.com/scholarly-tools/litingest/format/docjson"
)

// progressInterval controls how often the driver logs a progress line.
const progressInterval = 10000

// Options configures a batch run.
type Options struct {
	// Workers is the pool size; zero means runtime.NumCPU().
	Workers int

	// Resume skips inputs that already have artifacts in the output
	// directory.
	Resume bool
}

// FileError attributes a failure to one input file.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// Result summarizes a batch run.
type Result struct {
	// Inputs is the number of matching files found in the input directory.
	Inputs int

	// Skipped is the number of inputs dropped by resume filtering.
	Skipped int

	// Processed is the number of files the pool worked on.
	Processed int

	// Written is the number of artifacts written.
	Written int

	// Failures lists every file that could not be processed.
	Failures []FileError

	// Types is the raw-type histogram over all written documents.
	Types *TypeDistribution
}

// Runner runs one format adapter over a directory tree.
type Runner struct {
	parser    format.Parser
	inputDir  string
	outputDir string
	workers   int
	resume    bool
}

// NewRunner creates a batch runner for the named format.
func NewRunner(formatName, inputDir, outputDir string, opts Options) (*Runner, error) {
	parser, err := format.GetParser(formatName)
	if err != nil {
		return nil, err
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	return &Runner{
		parser:    parser,
		inputDir:  inputDir,
		outputDir: outputDir,
		workers:   workers,
		resume:    opts.Resume,
	}, nil
}

// Run executes the batch. Setup problems (unreadable directories) abort;
// per-file problems are collected in the result. Cancellation stops the run
// between files and returns the context error alongside the partial result.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	inputs, err := r.listInputs()
	if err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("no input files matching %v in %s", r.parser.Extensions(), r.inputDir)
	}

	result := &Result{
		Inputs: len(inputs),
		Types:  NewTypeDistribution(),
	}

	if err := os.MkdirAll(r.outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	if r.resume {
		pending, err := r.filterUnparsed(inputs)
		if err != nil {
			return nil, err
		}
		result.Skipped = len(inputs) - len(pending)
		inputs = pending
		slog.Info("resuming batch", "pending", len(inputs), "skipped", result.Skipped)
	}

	jobs := make(chan string)
	go func() {
		defer close(jobs)
		for _, path := range inputs {
			select {
			case jobs <- path:
			case <-ctx.Done():
				return
			}
		}
	}()

	type workerResult struct {
		written  int
		failures []FileError
		types    *TypeDistribution
	}

	start := time.Now()
	var processed atomic.Int64
	results := make([]workerResult, r.workers)
	var wg sync.WaitGroup
	for i := 0; i < r.workers; i++ {
		wg.Add(1)
		go func(local *workerResult) {
			defer wg.Done()
			local.types = NewTypeDistribution()
			for path := range jobs {
				if ctx.Err() != nil {
					return
				}
				written, rawTypes, err := r.processFile(path)
				if err != nil {
					local.failures = append(local.failures, FileError{Path: path, Err: err})
					slog.Error("file failed", "file", path, "error", err)
				}
				local.written += written
				for _, rawType := range rawTypes {
					local.types.Add(rawType)
				}
				if n := processed.Add(1); n%progressInterval == 0 {
					slog.Info("progress", "processed", n, "total", len(inputs),
						"elapsed", time.Since(start).Round(time.Second))
				}
			}
		}(&results[i])
	}
	wg.Wait()

	result.Processed = int(processed.Load())
	for i := range results {
		result.Written += results[i].written
		result.Failures = append(result.Failures, results[i].failures...)
		result.Types.Merge(results[i].types)
	}

	if ctx.Err() == nil {
		result.Failures = append(result.Failures, r.verifyArtifacts(inputs, result.Failures)...)
	}
	sort.Slice(result.Failures, func(i, j int) bool {
		return result.Failures[i].Path < result.Failures[j].Path
	})

	if err := ctx.Err(); err != nil {
		return result, err
	}
	return result, nil
}

var errArtifactNotFound = fmt.Errorf("artifact not found")

// verifyArtifacts reports inputs that finished without a recorded error but
// still have no artifact on disk.
func (r *Runner) verifyArtifacts(inputs []string, failures []FileError) []FileError {
	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[f.Path] = true
	}

	var missing []FileError
	for _, path := range inputs {
		if failed[path] {
			continue
		}
		stem := inputStem(path)
		if _, err := os.Stat(filepath.Join(r.outputDir, stem+".json")); err == nil {
			continue
		}
		if _, err := os.Stat(filepath.Join(r.outputDir, stem+"_0.json")); err == nil {
			continue
		}
		missing = append(missing, FileError{Path: path, Err: errArtifactNotFound})
	}
	return missing
}

// listInputs returns the files in the input directory matching the format's
// extensions, sorted by name.
func (r *Runner) listInputs() ([]string, error) {
	entries, err := os.ReadDir(r.inputDir)
	if err != nil {
		return nil, fmt.Errorf("reading input directory: %w", err)
	}

	extensions := make(map[string]bool)
	for _, ext := range r.parser.Extensions() {
		extensions[ext] = true
	}

	var inputs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(entry.Name()), "."))
		if !extensions[ext] {
			continue
		}
		inputs = append(inputs, filepath.Join(r.inputDir, entry.Name()))
	}
	sort.Strings(inputs)
	return inputs, nil
}

// artifactIndexSuffix is the per-record suffix multi-document inputs add to
// their artifact stems.
var artifactIndexSuffix = regexp.MustCompile(`_\d+$`)

// filterUnparsed drops inputs whose stem already has an artifact in the
// output directory.
func (r *Runner) filterUnparsed(inputs []string) ([]string, error) {
	entries, err := os.ReadDir(r.outputDir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	produced := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		stem := strings.TrimSuffix(name, ".json")
		stem = artifactIndexSuffix.ReplaceAllString(stem, "")
		produced[stem] = true
	}

	var pending []string
	for _, path := range inputs {
		if !produced[inputStem(path)] {
			pending = append(pending, path)
		}
	}
	return pending, nil
}

func inputStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// processFile parses one input and writes its artifacts. It returns the
// artifact count and the raw type of each written document.
func (r *Runner) processFile(path string) (int, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, nil, err
	}
	defer f.Close()

	opts := format.NewParseOptions()
	opts.SourceName = filepath.Base(path)
	documents, err := r.parser.Parse(f, opts)
	if err != nil {
		return 0, nil, err
	}

	stem := inputStem(path)
	written := 0
	rawTypes := make([]string, 0, len(documents))
	for i, document := range documents {
		name := artifactName(stem, i, len(documents))
		if err := r.writeArtifact(name, document); err != nil {
			return written, rawTypes, err
		}
		written++
		rawTypes = append(rawTypes, document.RawType)
	}
	return written, rawTypes, nil
}

// artifactName maps a record to its output file: single-document inputs keep
// the input stem, multi-document inputs get a per-record index.
func artifactName(stem string, index, total int) string {
	if total == 1 {
		return stem + ".json"
	}
	return fmt.Sprintf("%s_%d.json", stem, index)
}

// writeArtifact writes via a temp file and rename so readers never observe a
// partial artifact.
func (r *Runner) writeArtifact(name string, document *doc.Document) error {
	data, err := docjson.Marshal(document)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(r.outputDir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing artifact: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(r.outputDir, name)); err != nil {
		return fmt.Errorf("publishing artifact: %w", err)
	}
	return nil
}
