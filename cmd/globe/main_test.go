package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCmd_Commands(t *testing.T) {
	root := newRootCmd()
	for _, name := range []string{"list", "borders"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Fatalf("Find(%q) = %v, %v", name, cmd, err)
		}
	}
	for _, flag := range []string{"config", "cache-dir", "endpoint", "refresh", "verbose"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Fatalf("missing persistent flag --%s", flag)
		}
	}
}

func TestListCmd_RejectsUnknownSort(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"list", "--sort", "population"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	err := root.Execute()
	if err == nil || !strings.Contains(err.Error(), "population") {
		t.Fatalf("Execute() error = %v, want unknown sort order", err)
	}
}

func TestBordersCmd_RequiresCode(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"borders"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})

	if err := root.Execute(); err == nil {
		t.Fatalf("borders without a code should fail")
	}
}
