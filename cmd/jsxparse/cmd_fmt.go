package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/jsxparse/format"
	"github.com/dhamidi/jsxparse/javascript/parser"

	"github.com/spf13/cobra"
)

func newFmtCmd(g *globals) *cobra.Command {
	var fmtOverwrite bool

	cmd := &cobra.Command{
		Use:   "fmt [file]",
		Short: "Normalize the whitespace of a JavaScript file",
		Long: `Reprint a JavaScript or JSX file from its tokens and comments.

Blank runs within a line become one space, line breaks and indentation are
kept, trailing blanks are removed. Files with syntax errors are refused.

Reads standard input when no file is given. Use -w to overwrite the file
in place (requires a file argument).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if fmtOverwrite && (len(args) == 0 || args[0] == "-") {
				return fmt.Errorf("-w requires a file argument")
			}
			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			p := parser.ParseProgram(bytes.NewReader(source), parser.WithFile(name), parser.WithComments())
			root := p.Finish()
			if root == nil {
				return fmt.Errorf("parse %s: %w", name, p.Err())
			}
			doc := format.NewDocument(name, p, root)

			output, err := format.NewSourceEncoder(nil).MarshalText(doc)
			if err != nil {
				reportProblems(doc)
				return fmt.Errorf("format %s: %w", name, err)
			}

			if fmtOverwrite {
				return os.WriteFile(name, output, 0644)
			}
			_, err = os.Stdout.Write(output)
			return err
		},
	}

	cmd.Flags().BoolVarP(&fmtOverwrite, "write", "w", false, "overwrite the file in place")

	return cmd
}
