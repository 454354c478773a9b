package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/jsxparse/javascript/grammar"
	"github.com/dhamidi/jsxparse/javascript/parser"

	"github.com/spf13/cobra"
)

func newGrammarCmd(g *globals) *cobra.Command {
	var closure bool

	cmd := &cobra.Command{
		Use:   "grammar [production|node-kind]",
		Short: "Print the EBNF grammar of the syntax trees",
		Long: `Print the EBNF grammar describing the trees the parser emits.

With an argument, print only that production. The argument may be a
production name or a node kind such as jsx_element. With --closure, also
print every production it refers to, directly or not.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ebnfGrammar, err := grammar.Load()
			if err != nil {
				for _, e := range grammar.Errors(err) {
					fmt.Fprintln(os.Stderr, e)
				}
				return err
			}
			if len(args) == 0 {
				_, err := os.Stdout.Write(grammar.Source())
				return err
			}

			name, ok := grammar.ProductionName(ebnfGrammar, args[0])
			if !ok {
				return fmt.Errorf("no production for %q", args[0])
			}
			names := []string{name}
			if closure {
				if names, err = grammar.Closure(ebnfGrammar, name); err != nil {
					return err
				}
			}
			for _, n := range names {
				fmt.Println(grammar.Format(ebnfGrammar[n]))
			}
			if kind, ok := parser.KindByName(args[0]); ok && !closure {
				for _, f := range parser.Fields(kind) {
					fmt.Printf("// field %s%s\n", f.Name, fieldFlags(f))
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&closure, "closure", false, "also print the productions referenced")

	return cmd
}

func fieldFlags(f parser.FieldSpec) string {
	switch {
	case f.Required && f.Multiple:
		return " (required, multiple)"
	case f.Required:
		return " (required)"
	case f.Multiple:
		return " (multiple)"
	}
	return ""
}
