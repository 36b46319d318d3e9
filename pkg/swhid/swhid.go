// Package swhid implements the Software Hash Identifier data model:
// core identifiers (swh:1:<kind>:<hash>), contextual qualifiers, and
// their strict textual grammar.
package swhid

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// Namespace is the fixed identifier namespace.
	Namespace = "swh"
	// Version is the only supported scheme version.
	Version = "1"
	// HashSize is the byte length of an object digest.
	HashSize = 20
)

// CoreID is an unqualified identifier: an object kind plus its 20-byte
// digest. The zero value is not a valid identifier.
type CoreID struct {
	Kind ObjectKind
	Hash [HashSize]byte
}

// New builds a CoreID from a kind and digest.
func New(kind ObjectKind, hash [HashSize]byte) CoreID {
	return CoreID{Kind: kind, Hash: hash}
}

// String renders the canonical textual form swh:1:<kind>:<40 hex>.
func (id CoreID) String() string {
	return Namespace + ":" + Version + ":" + string(id.Kind) + ":" + hex.EncodeToString(id.Hash[:])
}

// Compare orders identifiers structurally: kind tag first, then hash
// bytes. It returns -1, 0, or 1.
func (id CoreID) Compare(other CoreID) int {
	if c := strings.Compare(string(id.Kind), string(other.Kind)); c != 0 {
		return c
	}
	return bytes.Compare(id.Hash[:], other.Hash[:])
}

// Parse reads a core identifier from its textual form. Parsing is
// strict: the namespace must be exactly "swh", the version exactly "1",
// the kind one of the five tags, and the hash exactly 40 lowercase hex
// characters. Uppercase hex is rejected, not normalized, so that
// Parse(id.String()) round-trips exactly.
func Parse(s string) (CoreID, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 4 {
		return CoreID{}, fmt.Errorf("%w: want 4 colon-separated parts, got %d", ErrMalformedIdentifier, len(parts))
	}
	if parts[0] != Namespace {
		return CoreID{}, fmt.Errorf("%w: namespace %q, want %q", ErrMalformedIdentifier, parts[0], Namespace)
	}
	if parts[1] != Version {
		return CoreID{}, fmt.Errorf("%w: version %q, want %q", ErrMalformedIdentifier, parts[1], Version)
	}
	kind, err := ParseKind(parts[2])
	if err != nil {
		return CoreID{}, err
	}
	hash, err := parseHash(parts[3])
	if err != nil {
		return CoreID{}, err
	}
	return CoreID{Kind: kind, Hash: hash}, nil
}

// parseHash decodes exactly 40 lowercase hex characters.
func parseHash(s string) ([HashSize]byte, error) {
	var hash [HashSize]byte
	if len(s) != 2*HashSize {
		return hash, fmt.Errorf("%w: length %d, want %d", ErrMalformedHash, len(s), 2*HashSize)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return hash, fmt.Errorf("%w: invalid character %q at offset %d", ErrMalformedHash, c, i)
		}
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return hash, fmt.Errorf("%w: %v", ErrMalformedHash, err)
	}
	copy(hash[:], raw)
	return hash, nil
}
