package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dhamidi/packrat/ely"
	"github.com/dhamidi/packrat/format"
	"github.com/dhamidi/packrat/peg"
	"github.com/peterh/liner"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

const historyFile = ".ely_history"

func newReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Parse expressions interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
}

type replState struct {
	out, errOut io.Writer
	format      string
	trace       bool
}

func repl(out, errOut io.Writer) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			ln.WriteHistory(f)
			f.Close()
		}
	}()

	st := &replState{out: out, errOut: errOut, format: "grouped"}
	fmt.Fprintln(out, "ely "+version+". Type :help for commands.")

	for {
		line, err := ln.Prompt("ely> ")
		if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
			fmt.Fprintln(out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)

		if st.eval(line) {
			return nil
		}
	}
}

// eval handles one line of input and reports whether the session should end.
func (st *replState) eval(line string) bool {
	if cmd := strings.TrimSpace(line); strings.HasPrefix(cmd, ":") {
		fields := strings.Fields(cmd)
		switch fields[0] {
		case ":quit", ":q":
			return true
		case ":trace":
			st.trace = !st.trace
			fmt.Fprintf(st.out, "trace %v\n", st.trace)
		case ":format":
			if len(fields) != 2 {
				fmt.Fprintf(st.errOut, "usage: :format text|grouped|json\n")
				break
			}
			if _, err := format.New(fields[1], io.Discard); err != nil {
				fmt.Fprintln(st.errOut, err)
				break
			}
			st.format = fields[1]
		case ":help":
			fmt.Fprintln(st.out, ":format text|grouped|json  choose output format")
			fmt.Fprintln(st.out, ":trace                     toggle cache trace")
			fmt.Fprintln(st.out, ":quit                      leave")
		default:
			fmt.Fprintf(st.errOut, "unknown command %s, try :help\n", fields[0])
		}
		return false
	}

	var trace bytes.Buffer
	opts := []peg.Option{peg.WithName("repl")}
	if st.trace {
		opts = append(opts, peg.WithTrace(&trace))
	}
	tree, err := ely.ParseSource(line, opts...)
	st.errOut.Write(trace.Bytes())
	if err != nil {
		fmt.Fprintln(st.errOut, err)
		return false
	}

	encoder, _ := format.New(st.format, st.out)
	if err := encoder.Encode(tree); err != nil {
		fmt.Fprintln(st.errOut, err)
	}
	return false
}
