// Package compute walks filesystem subtrees and derives their
// identifiers: content objects for files and symlinks, bottom-up
// Merkle hashing for directory trees.
package compute

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/sourcehash/swhid/pkg/object"
	"github.com/sourcehash/swhid/pkg/swhid"
)

// IoError wraps a filesystem failure with the path it occurred at.
// Any such failure aborts the whole computation for its subtree; there
// is no partial or best-effort directory identifier.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("io error at %s: %v", e.Path, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

// Computer derives identifiers from filesystem paths. The zero value
// is not usable; construct with New.
type Computer struct {
	// Dereference resolves a symlink given directly as the input path
	// and identifies its target instead of the link. It never applies
	// during directory descent, where symlinks are always hashed as
	// their target string.
	Dereference bool

	// ExcludePatterns are filepath.Match patterns tested against entry
	// base names at every directory level; matching entries are
	// skipped entirely.
	ExcludePatterns []string

	// FS is the filesystem seam, OS by default.
	FS Filesystem
}

// New returns a Computer over the real filesystem with no exclusions.
func New() *Computer {
	return &Computer{FS: OS}
}

// IdentifyContent derives the content identifier of in-memory bytes.
func (c *Computer) IdentifyContent(data []byte) (swhid.CoreID, error) {
	digest, err := object.NewContent(data).Digest()
	if err != nil {
		return swhid.CoreID{}, err
	}
	return swhid.New(swhid.KindContent, digest), nil
}

// maxLinkDepth bounds root-level dereference chains, mirroring the
// kernel's ELOOP limit.
const maxLinkDepth = 40

// Identify inspects path and derives its identifier: a symlink becomes
// a content object over its target string (or, with Dereference, the
// resolved target is identified instead), a regular file a content
// object over its bytes, a directory the root of a bottom-up Merkle
// build. The result is always a core identifier; qualification is a
// separate caller-driven step.
func (c *Computer) Identify(path string) (swhid.CoreID, error) {
	return c.identify(path, 0)
}

func (c *Computer) identify(path string, depth int) (swhid.CoreID, error) {
	info, err := c.FS.Lstat(path)
	if err != nil {
		return swhid.CoreID{}, &IoError{Path: path, Err: err}
	}

	switch {
	case info.Mode()&fs.ModeSymlink != 0:
		if c.Dereference {
			if depth >= maxLinkDepth {
				return swhid.CoreID{}, &IoError{Path: path, Err: fmt.Errorf("too many levels of symbolic links")}
			}
			target, err := c.FS.ReadLink(path)
			if err != nil {
				return swhid.CoreID{}, &IoError{Path: path, Err: err}
			}
			if !filepath.IsAbs(target) {
				target = filepath.Join(filepath.Dir(path), target)
			}
			return c.identify(target, depth+1)
		}
		target, err := c.FS.ReadLink(path)
		if err != nil {
			return swhid.CoreID{}, &IoError{Path: path, Err: err}
		}
		return c.IdentifyContent([]byte(target))
	case info.Mode().IsDir():
		digest, err := c.hashDirectory(path)
		if err != nil {
			return swhid.CoreID{}, err
		}
		return swhid.New(swhid.KindDirectory, digest), nil
	case info.Mode().IsRegular():
		return c.identifyFile(path)
	default:
		return swhid.CoreID{}, &IoError{Path: path, Err: fmt.Errorf("unsupported file type %s", info.Mode())}
	}
}

// Verify parses an expected core identifier and reports whether the
// computed identifier of path equals it.
func (c *Computer) Verify(path, expected string) (bool, error) {
	want, err := swhid.Parse(expected)
	if err != nil {
		return false, err
	}
	got, err := c.Identify(path)
	if err != nil {
		return false, err
	}
	return got == want, nil
}

func (c *Computer) identifyFile(path string) (swhid.CoreID, error) {
	data, err := c.FS.ReadFile(path)
	if err != nil {
		return swhid.CoreID{}, &IoError{Path: path, Err: err}
	}
	return c.IdentifyContent(data)
}

// hashDirectory builds the directory's entry list, completing every
// subdirectory before its parent. Entry visit order is irrelevant:
// the builder sorts before encoding.
func (c *Computer) hashDirectory(path string) ([object.HashSize]byte, error) {
	var zero [object.HashSize]byte

	listing, err := c.FS.ReadDir(path)
	if err != nil {
		return zero, &IoError{Path: path, Err: err}
	}

	builder := object.NewDirectoryBuilder()
	for _, de := range listing {
		name := de.Name()
		if c.excluded(name) {
			continue
		}
		full := filepath.Join(path, name)
		info, err := c.FS.Lstat(full)
		if err != nil {
			return zero, &IoError{Path: full, Err: err}
		}

		var target [object.HashSize]byte
		switch {
		case info.Mode()&fs.ModeSymlink != 0:
			// Never followed below the root: the entry hashes the
			// target string itself, keeping the DAG acyclic.
			linkTarget, err := c.FS.ReadLink(full)
			if err != nil {
				return zero, &IoError{Path: full, Err: err}
			}
			target, err = object.NewContent([]byte(linkTarget)).Digest()
			if err != nil {
				return zero, err
			}
		case info.Mode().IsDir():
			target, err = c.hashDirectory(full)
			if err != nil {
				return zero, err
			}
		case info.Mode().IsRegular():
			data, err := c.FS.ReadFile(full)
			if err != nil {
				return zero, &IoError{Path: full, Err: err}
			}
			target, err = object.NewContent(data).Digest()
			if err != nil {
				return zero, err
			}
		default:
			return zero, &IoError{Path: full, Err: fmt.Errorf("unsupported file type %s", info.Mode())}
		}

		err = builder.Add(object.Entry{
			Name:   []byte(name),
			Mode:   object.ModeFromFS(info.Mode()),
			Target: target,
		})
		if err != nil {
			return zero, err
		}
	}

	dir, err := builder.Build()
	if err != nil {
		return zero, err
	}
	return dir.Digest()
}

func (c *Computer) excluded(name string) bool {
	for _, pattern := range c.ExcludePatterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
