package main

import (
	"github.com/dhamidi/packrat/langsvr"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return langsvr.New(version).RunStdio()
		},
	}
}
