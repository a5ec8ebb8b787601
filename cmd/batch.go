package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/litingest/batch"
	"github.com/scholarly-tools/litingest/config"
)

var (
	batchWorkers int
	batchResume  bool
	batchConfig  string
)

var batchCmd = &cobra.Command{
	Use:   "batch [format] [input-dir] [output-dir]",
	Short: "Convert a directory of source files to canonical JSON",
	Long: `Convert every matching file in a directory to canonical JSON, one
artifact per document, using a bounded worker pool.

A file that fails to parse is reported and skipped; the run continues.
Multi-record inputs produce one artifact per record, suffixed with the
record index. With --resume, inputs that already have artifacts in the
output directory are skipped.

The run can also be described in a YAML config file:

  format: pubmed
  input_dir: ./baselines
  output_dir: ./parsed
  workers: 8
  resume: true

Examples:
  litingest batch jats ./articles ./parsed
  litingest batch pubmed ./baselines ./parsed --workers 8 --resume
  litingest batch --config run.yml`,
	Args: cobra.MaximumNArgs(3),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().IntVar(&batchWorkers, "workers", 0, "Worker pool size (default: one per CPU)")
	batchCmd.Flags().BoolVar(&batchResume, "resume", false, "Skip inputs that already have artifacts")
	batchCmd.Flags().StringVar(&batchConfig, "config", "", "Run config YAML file")
}

func runBatch(cmd *cobra.Command, args []string) error {
	run, err := batchRunConfig(cmd, args)
	if err != nil {
		return err
	}

	runner, err := batch.NewRunner(run.Format, run.InputDir, run.OutputDir, batch.Options{
		Workers: run.Workers,
		Resume:  run.Resume,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := runner.Run(ctx)
	if result != nil {
		printResult(result)
	}
	return runErr
}

// batchRunConfig resolves the run description from the config file and the
// positional arguments; flags override the file.
func batchRunConfig(cmd *cobra.Command, args []string) (*config.Run, error) {
	var run *config.Run
	if batchConfig != "" {
		loaded, err := config.Load(batchConfig)
		if err != nil {
			return nil, err
		}
		run = loaded
	} else {
		run = &config.Run{}
	}

	if len(args) > 0 {
		run.Format = args[0]
	}
	if len(args) > 1 {
		run.InputDir = args[1]
	}
	if len(args) > 2 {
		run.OutputDir = args[2]
	}
	if cmd.Flags().Changed("workers") {
		run.Workers = batchWorkers
	}
	if cmd.Flags().Changed("resume") {
		run.Resume = batchResume
	}

	if err := run.Validate(); err != nil {
		return nil, err
	}
	return run, nil
}

func printResult(result *batch.Result) {
	fmt.Fprintf(os.Stderr, "Inputs: %d, skipped: %d, processed: %d, artifacts: %d, failures: %d\n",
		result.Inputs, result.Skipped, result.Processed, result.Written, len(result.Failures))

	for _, failure := range result.Failures {
		fmt.Fprintf(os.Stderr, "  failed: %v\n", failure)
	}

	fmt.Fprint(os.Stderr, result.Types.String())
}
