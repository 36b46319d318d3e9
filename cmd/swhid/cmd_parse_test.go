package main

import (
	"bytes"
	"strings"
	"testing"
)

func execParse(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newParseCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestParseCommand(t *testing.T) {
	out, err := execParse(t, "swh:1:dir:4b825dc642cb6eb9a060e54bf8d69288fbee4904;origin=https://example.org;lines=3-9")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	for _, want := range []string{
		"kind\tdir",
		"hash\t4b825dc642cb6eb9a060e54bf8d69288fbee4904",
		"origin\thttps://example.org",
		"lines\t3-9",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestParseCommandRejectsInvalid(t *testing.T) {
	if _, err := execParse(t, "swh:1:cnt:short"); err == nil {
		t.Error("expected an error for a malformed hash")
	}
	if _, err := execParse(t, "swh:1:cnt:4b825dc642cb6eb9a060e54bf8d69288fbee4904;who=1"); err == nil {
		t.Error("expected an error for an unknown qualifier")
	}
}
