package main

import (
	"fmt"
	"io"
	"reflect"

	"github.com/dhamidi/packrat/ebnflex"
	"github.com/dhamidi/packrat/ely"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func newGrammarCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:           "grammar",
		Short:         "Print the Ely grammar in EBNF",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if check {
				if err := ely.VerifyGrammar(); err != nil {
					printErrors(cmd.ErrOrStderr(), err)
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "grammar ok, start production %s\n", ely.Start)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), ely.EBNF)
			return nil
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "verify the grammar instead of printing it")

	cmd.AddCommand(newGrammarTokensCmd())
	cmd.AddCommand(newGrammarRecognizeCmd())

	return cmd
}

func newGrammarTokensCmd() *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:          "tokens [file]",
		Short:        "Split input into tokens using the lexical productions of the grammar",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := readSource(args, expr)
			if err != nil {
				return err
			}
			g, err := ely.Grammar()
			if err != nil {
				return err
			}
			tokens, err := ebnflex.NewLexer(g, text, name).Tokenize()
			if err != nil {
				return err
			}
			for _, tok := range tokens {
				fmt.Fprintln(cmd.OutOrStdout(), tok)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "tokenize this expression instead of a file")

	return cmd
}

func newGrammarRecognizeCmd() *cobra.Command {
	var expr string

	cmd := &cobra.Command{
		Use:          "recognize [file]",
		Short:        "Check input against the EBNF grammar with an Earley recognizer",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, text, err := readSource(args, expr)
			if err != nil {
				return err
			}
			if err := ely.Recognize(ely.TrimSource(text)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		},
	}

	cmd.Flags().StringVarP(&expr, "expr", "e", "", "check this expression instead of a file")

	return cmd
}

// printErrors prints the errors collected by golang.org/x/exp/ebnf one per
// line.
func printErrors(w io.Writer, err error) {
	if inner := errors.Unwrap(err); inner != nil {
		err = inner
	}
	v := reflect.ValueOf(err)
	if v.Kind() == reflect.Slice {
		for i := 0; i < v.Len(); i++ {
			fmt.Fprintln(w, v.Index(i).Interface())
		}
	} else {
		fmt.Fprintln(w, err)
	}
}
