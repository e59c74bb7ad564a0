package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/dhamidi/packrat/ely"
	"github.com/dhamidi/packrat/format"
	"github.com/dhamidi/packrat/peg"
	"github.com/spf13/cobra"
)

func newFmtCmd() *cobra.Command {
	var write bool
	var grouped bool

	cmd := &cobra.Command{
		Use:          "fmt [file...]",
		Short:        "Print Ely files in canonical form",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if write {
					return fmt.Errorf("cannot use -w with standard input")
				}
				args = []string{"-"}
			}

			for _, arg := range args {
				name, text, err := readSource([]string{arg}, "")
				if err != nil {
					return err
				}

				tree, err := ely.ParseSource(text, peg.WithName(name))
				if err != nil {
					return err
				}

				var buf bytes.Buffer
				var encoder format.Encoder = format.NewTextEncoder(&buf)
				if grouped {
					encoder = format.NewGroupedEncoder(&buf)
				}
				if err := encoder.Encode(tree); err != nil {
					return fmt.Errorf("encode: %w", err)
				}

				if !write {
					cmd.OutOrStdout().Write(buf.Bytes())
					continue
				}
				if buf.String() == text {
					continue
				}
				if err := os.WriteFile(arg, buf.Bytes(), 0o644); err != nil {
					return fmt.Errorf("write %s: %w", arg, err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "write result to the source file instead of stdout")
	cmd.Flags().BoolVar(&grouped, "grouped", false, "parenthesize every operation")

	return cmd
}
