package swhid

import "fmt"

// ObjectKind identifies the kind of software artifact an identifier
// points at. The value is the 3-letter tag used in the textual form.
type ObjectKind string

const (
	KindContent   ObjectKind = "cnt"
	KindDirectory ObjectKind = "dir"
	KindRevision  ObjectKind = "rev"
	KindRelease   ObjectKind = "rel"
	KindSnapshot  ObjectKind = "snp"
)

// ParseKind validates a kind tag. Anything outside the five recognized
// tags fails with ErrUnknownObjectKind.
func ParseKind(s string) (ObjectKind, error) {
	switch ObjectKind(s) {
	case KindContent, KindDirectory, KindRevision, KindRelease, KindSnapshot:
		return ObjectKind(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownObjectKind, s)
}
