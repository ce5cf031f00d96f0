package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionCommand(t *testing.T) {
	cmd := newVersionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	cmd.Run(cmd, nil)

	if got := out.String(); !strings.HasPrefix(got, "snippetd ") {
		t.Errorf("output = %q, want snippetd <version>", got)
	}
}

func TestRootCommand_ConfigFlag(t *testing.T) {
	root := newRootCommand()

	flag := root.Flags().Lookup("config")
	if flag == nil {
		t.Fatal("root command has no --config flag")
	}
	if flag.Shorthand != "c" {
		t.Errorf("shorthand = %q, want c", flag.Shorthand)
	}
}
