package main

import (
	"fmt"
	"io"
	"os"
)

// readSource returns the input named by args: the expression given with
// -e, standard input for "-" or no argument, or a file.
func readSource(args []string, expr string) (name, text string, err error) {
	if expr != "" {
		return "-e", expr, nil
	}

	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return "stdin", string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", fmt.Errorf("read file: %w", err)
	}
	return args[0], string(data), nil
}
