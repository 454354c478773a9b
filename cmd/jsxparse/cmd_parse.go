package main

import (
	"bytes"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/dhamidi/jsxparse/format"
	"github.com/dhamidi/jsxparse/javascript/parser"

	"github.com/spf13/cobra"
)

func newParseCmd(g *globals) *cobra.Command {
	var outputFormat string
	var includePositions bool
	var includeComments bool
	var maxErrors int

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse a JavaScript file and print its syntax tree",
		Long: `Parse a JavaScript or JSX file and print its syntax tree.

Reads standard input when no file or "-" is given. Problems are printed to
standard error, and the command fails if there are any.

Formats: sexp (default), text (sexp outline with positions), json
(tree, problems and comments), ast-json (tree only).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if outputFormat == "text" {
				outputFormat, includePositions = "sexp", true
			}
			if !slices.Contains(format.Names, outputFormat) {
				return fmt.Errorf("unknown format: %s (expected one of %s, text)", outputFormat, strings.Join(format.Names, ", "))
			}

			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			opts := []parser.Option{parser.WithFile(name), parser.WithMaxErrors(maxErrors)}
			if includeComments || outputFormat == "source" {
				opts = append(opts, parser.WithComments())
			}
			if outputFormat == "tokens" {
				opts = append(opts, parser.WithTokenTrace())
			}
			p := parser.ParseProgram(bytes.NewReader(source), opts...)
			root := p.Finish()
			if root == nil {
				return fmt.Errorf("parse %s: %w", name, p.Err())
			}
			doc := format.NewDocument(name, p, root)

			var enc format.Encoder
			if outputFormat == "sexp" {
				enc = format.NewSexpEncoder(os.Stdout).WithPositions(includePositions)
			} else if enc, err = format.New(outputFormat, os.Stdout); err != nil {
				return err
			}
			if err := enc.Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			return reportProblems(doc)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "sexp", "output format (sexp, text, json, ast-json, tokens, source)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "print spans with the sexp format")
	cmd.Flags().BoolVar(&includeComments, "comments", false, "collect comments for the json format")
	cmd.Flags().IntVar(&maxErrors, "max-errors", 100, "stop after this many syntax errors (0 for no limit)")

	return cmd
}

// reportProblems prints the problems of doc to standard error and returns
// an error if there are any.
func reportProblems(doc *format.Document) error {
	for _, e := range doc.Errors {
		fmt.Fprintln(os.Stderr, e.Error())
	}
	if n := len(doc.Errors); n > 0 {
		return fmt.Errorf("%s: %d problems", doc.File, n)
	}
	return nil
}
