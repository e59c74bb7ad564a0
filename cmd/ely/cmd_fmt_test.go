package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSource(t *testing.T, text string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.ely")
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFmtCmd(t *testing.T) {
	tests := []struct {
		input   string
		flags   []string
		want    string
		wantErr bool
	}{
		{"1+2*3\n", nil, "1 + 2 * 3\n", false},
		{"  a(1,2)  \n\n", nil, "a(1, 2)\n", false},
		{"1+2*3", []string{"--grouped"}, "(1 + (2 * 3))\n", false},
		{"1 +\n", nil, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			path := writeSource(t, tt.input)

			var out bytes.Buffer
			cmd := newFmtCmd()
			cmd.SetArgs(append(append([]string{}, tt.flags...), path))
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("fmt: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("fmt printed %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestFmtCmdWrite(t *testing.T) {
	path := writeSource(t, "not a==b  or c\n")

	var out bytes.Buffer
	cmd := newFmtCmd()
	cmd.SetArgs([]string{"-w", path})
	cmd.SetOut(&out)
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Errorf("-w printed %q", out.String())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "not a == b or c\n" {
		t.Errorf("file = %q", data)
	}
}

func TestFmtCmdWriteNeedsFile(t *testing.T) {
	cmd := newFmtCmd()
	cmd.SetArgs([]string{"-w"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	err := cmd.Execute()
	if err == nil || !strings.Contains(err.Error(), "standard input") {
		t.Errorf("error = %v", err)
	}
}
