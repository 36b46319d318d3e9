package object

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"sort"
)

// Mode is the git octal mode string of a directory entry. Directories
// deliberately carry no leading zero.
type Mode string

const (
	ModeRegular    Mode = "100644"
	ModeExecutable Mode = "100755"
	ModeSymlink    Mode = "120000"
	ModeDirectory  Mode = "40000"
)

// ModeFromFS derives the entry mode class from filesystem metadata.
// The class comes from the mode bits, never from content sniffing.
func ModeFromFS(m fs.FileMode) Mode {
	switch {
	case m.IsDir():
		return ModeDirectory
	case m&fs.ModeSymlink != 0:
		return ModeSymlink
	case m&0o111 != 0:
		return ModeExecutable
	default:
		return ModeRegular
	}
}

// Entry is one named member of a directory: raw name bytes, mode
// class, and the digest of the object it points at. Entries own their
// data; they hold no references into the filesystem.
type Entry struct {
	Name   []byte
	Mode   Mode
	Target [HashSize]byte
}

// sortKey is the byte string an entry is ordered by. Directory entries
// compare as if their name ended in '/', reproducing git's tree order:
// a file "foo" sorts before "foo.bar", but a directory "foo" sorts
// after it because "foo/" > "foo.bar".
func (e Entry) sortKey() []byte {
	if e.Mode == ModeDirectory {
		return append(append([]byte{}, e.Name...), '/')
	}
	return e.Name
}

// ErrDuplicateEntry reports two directory entries sharing a name.
var ErrDuplicateEntry = errors.New("duplicate directory entry")

// DirectoryBuilder accumulates entries in any order and produces an
// immutable, canonically sorted Directory. The finalized digest is
// independent of insertion order.
type DirectoryBuilder struct {
	entries []Entry
}

// NewDirectoryBuilder returns an empty builder.
func NewDirectoryBuilder() *DirectoryBuilder {
	return &DirectoryBuilder{}
}

// Add records one entry. The name must be non-empty and must not
// contain a path separator or NUL; duplicate names are caught at
// Build time so that insertion order never matters.
func (b *DirectoryBuilder) Add(e Entry) error {
	if len(e.Name) == 0 {
		return fmt.Errorf("directory entry: empty name")
	}
	if bytes.IndexByte(e.Name, '/') >= 0 {
		return fmt.Errorf("directory entry %q: name contains path separator", e.Name)
	}
	if bytes.IndexByte(e.Name, 0) >= 0 {
		return fmt.Errorf("directory entry %q: name contains NUL", e.Name)
	}
	switch e.Mode {
	case ModeRegular, ModeExecutable, ModeSymlink, ModeDirectory:
	default:
		return fmt.Errorf("directory entry %q: invalid mode %q", e.Name, e.Mode)
	}
	b.entries = append(b.entries, Entry{
		Name:   append([]byte{}, e.Name...),
		Mode:   e.Mode,
		Target: e.Target,
	})
	return nil
}

// Build sorts the entries and returns the finalized Directory. Two
// entries sharing a name fail with ErrDuplicateEntry rather than
// silently overwriting one another.
func (b *DirectoryBuilder) Build() (*Directory, error) {
	entries := make([]Entry, len(b.entries))
	copy(entries, b.entries)

	seen := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if _, dup := seen[string(e.Name)]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateEntry, e.Name)
		}
		seen[string(e.Name)] = struct{}{}
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].sortKey(), entries[j].sortKey()) < 0
	})
	return &Directory{entries: entries}, nil
}

// Directory is a finalized, canonically ordered collection of entries.
// It is a plain value: never mutated after construction.
type Directory struct {
	entries []Entry
	digest  [HashSize]byte
	hashed  bool
}

// Entries returns the entries in canonical order.
func (d *Directory) Entries() []Entry { return d.entries }

// Encode produces the canonical tree payload: for each entry in sort
// order, "<mode> <name>\x00" followed by the raw 20 target bytes.
func (d *Directory) Encode() []byte {
	var buf bytes.Buffer
	for _, e := range d.entries {
		buf.WriteString(string(e.Mode))
		buf.WriteByte(' ')
		buf.Write(e.Name)
		buf.WriteByte(0)
		buf.Write(e.Target[:])
	}
	return buf.Bytes()
}

// Digest hashes "tree <len>\x00" plus the encoded entries. Like
// Content.Digest, the value is cached after first computation.
func (d *Directory) Digest() ([HashSize]byte, error) {
	if d.hashed {
		return d.digest, nil
	}
	sum, err := SumObject("tree", d.Encode())
	if err != nil {
		return [HashSize]byte{}, err
	}
	d.digest = sum
	d.hashed = true
	return sum, nil
}
