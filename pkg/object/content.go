package object

import (
	"fmt"
	"os"
)

// Content wraps the raw bytes of a leaf artifact: a file's data, or a
// symlink's target path treated as data. It is immutable once built.
type Content struct {
	data   []byte
	digest [HashSize]byte
	hashed bool
}

// NewContent builds a Content over a copy of data.
func NewContent(data []byte) *Content {
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Content{data: buf}
}

// ContentFromFile reads a regular file's bytes.
func ContentFromFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read content %s: %w", path, err)
	}
	return &Content{data: data}, nil
}

// ContentFromSymlink builds a Content over the link's target string.
// The link is never followed: the identifier of a symlink is the
// identifier of its target path bytes.
func ContentFromSymlink(path string) (*Content, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return nil, fmt.Errorf("read symlink %s: %w", path, err)
	}
	return &Content{data: []byte(target)}, nil
}

// Data returns the underlying bytes.
func (c *Content) Data() []byte { return c.data }

// Len returns the byte length.
func (c *Content) Len() int { return len(c.data) }

// Digest hashes the canonical encoding "blob <len>\x00<data>". The
// digest is computed on first use and cached; hashing is a pure
// function of the buffer, so repeated calls return the same value.
func (c *Content) Digest() ([HashSize]byte, error) {
	if c.hashed {
		return c.digest, nil
	}
	sum, err := SumObject("blob", c.data)
	if err != nil {
		return [HashSize]byte{}, err
	}
	c.digest = sum
	c.hashed = true
	return sum, nil
}
