package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/litingest/format"
)

var (
	inputFile  string
	outputFile string
	compact    bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <format>",
	Short: "Convert one source file to canonical JSON",
	Long: `Convert a single biomedical article XML file to canonical JSON.

Arguments:
  format    Source format (jats, pubmed)

Input defaults to stdin, output defaults to stdout. A citation-database
input with multiple records produces a JSON array.

Examples:
  # JATS article to JSON (stdin to stdout)
  cat article.nxml | litingest convert jats

  # Explicit input and output files
  litingest convert pubmed -i baseline.xml -o baseline.json`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input file (default: stdin)")
	convertCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	convertCmd.Flags().BoolVar(&compact, "compact", false, "Emit compact JSON instead of indented")
}

func runConvert(cmd *cobra.Command, args []string) (err error) {
	fromFormat := args[0]

	var input io.Reader
	var inputName string

	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("opening input file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing input file: %w", cerr)
			}
		}()
		input = f
		inputName = inputFile
	} else {
		input = os.Stdin
		inputName = "stdin"
	}

	var output io.Writer
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("closing output file: %w", cerr)
			}
		}()
		output = f
	} else {
		output = os.Stdout
	}

	parser, err := format.GetParser(fromFormat)
	if err != nil {
		return fmt.Errorf("unknown source format %q: %w", fromFormat, err)
	}

	serializer, err := format.GetSerializer("docjson")
	if err != nil {
		return err
	}

	parseOpts := format.NewParseOptions()
	parseOpts.SourceName = inputName

	documents, err := parser.Parse(input, parseOpts)
	if err != nil {
		return fmt.Errorf("parsing input: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Parsed %d documents\n", len(documents))

	serializeOpts := format.NewSerializeOptions()
	serializeOpts.Pretty = !compact

	if err := serializer.Serialize(output, documents, serializeOpts); err != nil {
		return fmt.Errorf("serializing output: %w", err)
	}

	return nil
}
