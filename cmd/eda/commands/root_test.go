// ABOUTME: Tests for root CLI command and global flags
// ABOUTME: Verifies command structure, subcommands, and flag handling

package commands

import (
	"bytes"
	"testing"
)

func TestNewRootCmd(t *testing.T) {
	cmd := NewRootCmd()

	if cmd.Use != "eda" {
		t.Errorf("Use = %q, want %q", cmd.Use, "eda")
	}

	if cmd.Short == "" {
		t.Error("Short description should not be empty")
	}

	if cmd.Long == "" {
		t.Error("Long description should not be empty")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := NewRootCmd()

	expected := []string{
		"upload", "insights", "ask", "outliers", "correlation",
		"cluster", "datasets", "mark", "version",
	}
	for _, name := range expected {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestRootCmd_VerboseFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("verbose")
	if flag == nil {
		t.Fatal("--verbose flag not found")
	}
	if flag.Shorthand != "v" {
		t.Errorf("--verbose shorthand = %q, want %q", flag.Shorthand, "v")
	}
	if flag.DefValue != "false" {
		t.Errorf("--verbose default = %q, want %q", flag.DefValue, "false")
	}
}

func TestRootCmd_Help(t *testing.T) {
	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute(--help) error = %v", err)
	}
	if output.Len() == 0 {
		t.Error("help output is empty")
	}
}
