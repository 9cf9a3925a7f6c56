package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
)

func writeTempFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckCmdCleanFile(t *testing.T) {
	path := writeTempFile(t, "clean.nut", "local a = 1\n")
	cmd := newCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("check on already-formatted file: %v", err)
	}
}

func TestCheckCmdDirtyFile(t *testing.T) {
	path := writeTempFile(t, "dirty.nut", "local   a=1;\n")
	cmd := newCheckCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err == nil {
		t.Fatal("check on unformatted file: want a nonzero-exit error")
	}
	if out.Len() == 0 {
		t.Fatal("check on unformatted file: want the path printed")
	}
}
