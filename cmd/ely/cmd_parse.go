package main

import (
	"fmt"

	"github.com/dhamidi/packrat/ely"
	"github.com/dhamidi/packrat/format"
	"github.com/dhamidi/packrat/peg"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var expr string
	var trace bool
	var stats bool

	cmd := &cobra.Command{
		Use:          "parse [file]",
		Short:        "Parse an Ely expression and dump the tree",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, text, err := readSource(args, expr)
			if err != nil {
				return err
			}

			encoder, err := format.New(outputFormat, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			opts := []peg.Option{peg.WithName(name)}
			if trace {
				opts = append(opts, peg.WithTrace(cmd.ErrOrStderr()))
			}
			p := ely.NewParser(ely.TrimSource(text), opts...)
			tree, err := p.Parse()

			if stats {
				c := p.Cache()
				fmt.Fprintf(cmd.ErrOrStderr(), "%s characters, %s results cached, %s lookups, %s hits\n",
					humanize.Comma(int64(p.Cursor().Len())),
					humanize.Comma(int64(c.Len())),
					humanize.Comma(int64(c.Lookups())),
					humanize.Comma(int64(c.Hits())),
				)
			}

			if err != nil {
				return err
			}
			if err := encoder.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, grouped, json)")
	cmd.Flags().StringVarP(&expr, "expr", "e", "", "parse this expression instead of a file")
	cmd.Flags().BoolVar(&trace, "trace", false, "write every cache insertion and hit to stderr")
	cmd.Flags().BoolVar(&stats, "stats", false, "print cache statistics to stderr")

	return cmd
}
