package swhid

import (
	"fmt"
	"strconv"
	"strings"
)

// Span is a lines= or bytes= qualifier value: either a single
// non-negative position or a start-end pair with Start <= End.
type Span struct {
	Start  uint64
	End    uint64
	Ranged bool
}

// String renders "N" or "N-M".
func (s Span) String() string {
	if !s.Ranged {
		return strconv.FormatUint(s.Start, 10)
	}
	return strconv.FormatUint(s.Start, 10) + "-" + strconv.FormatUint(s.End, 10)
}

// Qualifiers holds the optional contextual annotations of an
// identifier. The zero value carries none. Origin and Path are opaque:
// no escaping or decoding is applied to them.
type Qualifiers struct {
	Origin string
	Visit  *CoreID
	Anchor *CoreID
	Path   []byte
	Lines  *Span
	Bytes  *Span
}

// QualifiedID is a core identifier plus qualifiers. Qualification is a
// pure annotation layer; it never participates in hashing.
type QualifiedID struct {
	Core       CoreID
	Qualifiers Qualifiers
}

// String renders the core identifier followed by one ";key=value"
// segment per present qualifier, in the canonical emission order:
// origin, visit, anchor, path, lines, bytes.
func (q QualifiedID) String() string {
	var b strings.Builder
	b.WriteString(q.Core.String())
	if q.Qualifiers.Origin != "" {
		b.WriteString(";origin=")
		b.WriteString(q.Qualifiers.Origin)
	}
	if q.Qualifiers.Visit != nil {
		b.WriteString(";visit=")
		b.WriteString(q.Qualifiers.Visit.String())
	}
	if q.Qualifiers.Anchor != nil {
		b.WriteString(";anchor=")
		b.WriteString(q.Qualifiers.Anchor.String())
	}
	if q.Qualifiers.Path != nil {
		b.WriteString(";path=")
		b.Write(q.Qualifiers.Path)
	}
	if q.Qualifiers.Lines != nil {
		b.WriteString(";lines=")
		b.WriteString(q.Qualifiers.Lines.String())
	}
	if q.Qualifiers.Bytes != nil {
		b.WriteString(";bytes=")
		b.WriteString(q.Qualifiers.Bytes.String())
	}
	return b.String()
}

// ParseQualified reads an identifier with zero or more qualifiers.
// Segments may appear in any order and any subset; a duplicate key
// keeps its last occurrence.
func ParseQualified(s string) (QualifiedID, error) {
	segments := strings.Split(s, ";")
	core, err := Parse(segments[0])
	if err != nil {
		return QualifiedID{}, err
	}
	q := QualifiedID{Core: core}
	for _, seg := range segments[1:] {
		key, value, ok := strings.Cut(seg, "=")
		if !ok {
			return QualifiedID{}, fmt.Errorf("%w: qualifier segment %q has no '='", ErrMalformedIdentifier, seg)
		}
		if err := q.Qualifiers.set(key, value); err != nil {
			return QualifiedID{}, err
		}
	}
	return q, nil
}

// set validates and stores one qualifier. Path and origin values are
// stored as-is; only visit, anchor, lines, and bytes have grammar.
func (q *Qualifiers) set(key, value string) error {
	switch key {
	case "origin":
		q.Origin = value
	case "visit":
		id, err := Parse(value)
		if err != nil {
			return invalidQualifier("visit", "not a valid core identifier")
		}
		if id.Kind != KindSnapshot {
			return invalidQualifier("visit", fmt.Sprintf("wrong object kind %q, want %q", id.Kind, KindSnapshot))
		}
		q.Visit = &id
	case "anchor":
		id, err := Parse(value)
		if err != nil {
			return invalidQualifier("anchor", "not a valid core identifier")
		}
		switch id.Kind {
		case KindDirectory, KindRevision, KindRelease, KindSnapshot:
		default:
			return invalidQualifier("anchor", fmt.Sprintf("object kind %q not allowed as anchor", id.Kind))
		}
		q.Anchor = &id
	case "path":
		q.Path = []byte(value)
	case "lines":
		span, err := parseSpan("lines", value)
		if err != nil {
			return err
		}
		q.Lines = span
	case "bytes":
		span, err := parseSpan("bytes", value)
		if err != nil {
			return err
		}
		q.Bytes = span
	default:
		return fmt.Errorf("%w: %q", ErrUnknownQualifier, key)
	}
	return nil
}

// parseSpan reads "N" or "N-M" with non-negative decimal N <= M.
func parseSpan(name, value string) (*Span, error) {
	first, second, ranged := strings.Cut(value, "-")
	start, err := strconv.ParseUint(first, 10, 64)
	if err != nil {
		return nil, invalidQualifier(name, fmt.Sprintf("%q is not a non-negative integer", first))
	}
	span := &Span{Start: start}
	if ranged {
		end, err := strconv.ParseUint(second, 10, 64)
		if err != nil {
			return nil, invalidQualifier(name, fmt.Sprintf("%q is not a non-negative integer", second))
		}
		if start > end {
			return nil, invalidQualifier(name, fmt.Sprintf("start %d exceeds end %d", start, end))
		}
		span.End = end
		span.Ranged = true
	}
	return span, nil
}

func invalidQualifier(name, reason string) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidQualifierValue, name, reason)
}
