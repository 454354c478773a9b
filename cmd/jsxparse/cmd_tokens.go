package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/jsxparse/format"
	"github.com/dhamidi/jsxparse/javascript/parser"

	"github.com/spf13/cobra"
)

func newTokensCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file]",
		Short: "Print the tokens consumed by the parser, including automatic semicolons",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, name, err := readSource(args)
			if err != nil {
				return err
			}

			p := parser.ParseProgram(bytes.NewReader(source), parser.WithFile(name), parser.WithTokenTrace())
			root := p.Finish()
			if root == nil {
				return fmt.Errorf("parse %s: %w", name, p.Err())
			}
			doc := format.NewDocument(name, p, root)
			if err := format.NewLineEncoder(os.Stdout).Encode(doc); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return reportProblems(doc)
		},
	}
}
