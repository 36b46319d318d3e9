package swhid

import (
	"errors"
	"strings"
	"testing"
)

const (
	coreCnt = "swh:1:cnt:" + hexA
	coreDir = "swh:1:dir:4b825dc642cb6eb9a060e54bf8d69288fbee4904"
	coreSnp = "swh:1:snp:1a8893e6a86f444e8be8e7bda6cb34fb1735a00e"
)

func TestParseQualifiedBare(t *testing.T) {
	id, err := ParseQualified(coreCnt)
	if err != nil {
		t.Fatalf("ParseQualified: %v", err)
	}
	if id.Core.Kind != KindContent {
		t.Errorf("Kind: got %q, want cnt", id.Core.Kind)
	}
	if id.String() != coreCnt {
		t.Errorf("String: got %q, want %q", id.String(), coreCnt)
	}
}

func TestParseQualifiedAllQualifiers(t *testing.T) {
	s := coreCnt +
		";origin=https://example.org/repo.git" +
		";visit=" + coreSnp +
		";anchor=" + coreDir +
		";path=/src/main.c" +
		";lines=10-20" +
		";bytes=100"
	id, err := ParseQualified(s)
	if err != nil {
		t.Fatalf("ParseQualified: %v", err)
	}
	q := id.Qualifiers
	if q.Origin != "https://example.org/repo.git" {
		t.Errorf("Origin: got %q", q.Origin)
	}
	if q.Visit == nil || q.Visit.Kind != KindSnapshot {
		t.Errorf("Visit: got %v", q.Visit)
	}
	if q.Anchor == nil || q.Anchor.Kind != KindDirectory {
		t.Errorf("Anchor: got %v", q.Anchor)
	}
	if string(q.Path) != "/src/main.c" {
		t.Errorf("Path: got %q", q.Path)
	}
	if q.Lines == nil || q.Lines.Start != 10 || q.Lines.End != 20 || !q.Lines.Ranged {
		t.Errorf("Lines: got %v", q.Lines)
	}
	if q.Bytes == nil || q.Bytes.Start != 100 || q.Bytes.Ranged {
		t.Errorf("Bytes: got %v", q.Bytes)
	}
	if id.String() != s {
		t.Errorf("String: got %q, want %q", id.String(), s)
	}
}

// Qualifier segments may arrive in any order; the parsed value and the
// canonical re-emission must not depend on it.
func TestParseQualifiedSegmentOrder(t *testing.T) {
	segments := []string{
		"origin=https://example.org/repo.git",
		"anchor=" + coreDir,
		"lines=5-9",
	}
	perms := [][]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

	var want string
	for i, p := range perms {
		input := coreCnt
		for _, idx := range p {
			input += ";" + segments[idx]
		}
		id, err := ParseQualified(input)
		if err != nil {
			t.Fatalf("ParseQualified(%q): %v", input, err)
		}
		if i == 0 {
			want = id.String()
			continue
		}
		if id.String() != want {
			t.Errorf("permutation %v: got %q, want %q", p, id.String(), want)
		}
	}
}

func TestQualifiedRoundTrip(t *testing.T) {
	inputs := []string{
		coreCnt,
		coreCnt + ";lines=42",
		coreCnt + ";origin=https://example.org;path=/a/b;bytes=0-7",
		coreDir + ";anchor=" + coreSnp,
	}
	for _, s := range inputs {
		id, err := ParseQualified(s)
		if err != nil {
			t.Fatalf("ParseQualified(%q): %v", s, err)
		}
		again, err := ParseQualified(id.String())
		if err != nil {
			t.Fatalf("re-parse %q: %v", id.String(), err)
		}
		if again.String() != id.String() {
			t.Errorf("round trip changed %q into %q", id.String(), again.String())
		}
	}
}

func TestQualifierValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown key", coreCnt + ";snapshot=" + coreSnp, ErrUnknownQualifier},
		{"segment without =", coreCnt + ";origin", ErrMalformedIdentifier},
		{"visit not an identifier", coreCnt + ";visit=nonsense", ErrInvalidQualifierValue},
		{"visit wrong kind", coreCnt + ";visit=" + coreDir, ErrInvalidQualifierValue},
		{"anchor not an identifier", coreCnt + ";anchor=xyz", ErrInvalidQualifierValue},
		{"anchor content kind", coreCnt + ";anchor=" + coreCnt, ErrInvalidQualifierValue},
		{"lines start exceeds end", coreCnt + ";lines=20-10", ErrInvalidQualifierValue},
		{"lines negative", coreCnt + ";lines=-5", ErrInvalidQualifierValue},
		{"lines not a number", coreCnt + ";lines=ten", ErrInvalidQualifierValue},
		{"bytes start exceeds end", coreCnt + ";bytes=9-3", ErrInvalidQualifierValue},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseQualified(tt.input); !errors.Is(err, tt.want) {
				t.Errorf("ParseQualified(%q): got %v, want %v", tt.input, err, tt.want)
			}
		})
	}
}

// Failure messages must name the offending qualifier.
func TestQualifierErrorNamesQualifier(t *testing.T) {
	_, err := ParseQualified(coreCnt + ";lines=20-10")
	if err == nil || !strings.Contains(err.Error(), "lines") {
		t.Errorf("error should mention the qualifier: %v", err)
	}
	_, err = ParseQualified(coreCnt + ";visit=" + coreDir)
	if err == nil || !strings.Contains(err.Error(), "visit") {
		t.Errorf("error should mention the qualifier: %v", err)
	}
}

// A duplicate key keeps its last occurrence.
func TestDuplicateQualifierLastWins(t *testing.T) {
	id, err := ParseQualified(coreCnt + ";lines=1;lines=7")
	if err != nil {
		t.Fatalf("ParseQualified: %v", err)
	}
	if id.Qualifiers.Lines == nil || id.Qualifiers.Lines.Start != 7 {
		t.Errorf("Lines: got %v, want last occurrence 7", id.Qualifiers.Lines)
	}
}

// Path values are opaque bytes; nothing in them is decoded or checked.
func TestPathQualifierOpaque(t *testing.T) {
	raw := "/weird \xff dir/file name"
	id, err := ParseQualified(coreCnt + ";path=" + raw)
	if err != nil {
		t.Fatalf("ParseQualified: %v", err)
	}
	if string(id.Qualifiers.Path) != raw {
		t.Errorf("Path: got %q, want %q", id.Qualifiers.Path, raw)
	}
}

func TestSpanString(t *testing.T) {
	if s := (Span{Start: 4}).String(); s != "4" {
		t.Errorf("single: got %q", s)
	}
	if s := (Span{Start: 4, End: 9, Ranged: true}).String(); s != "4-9" {
		t.Errorf("range: got %q", s)
	}
}
