// Package object implements the canonical byte encodings of content
// and directory artifacts and their git-compatible SHA-1 hashing.
package object

import (
	"errors"
	"fmt"

	"github.com/pjbgf/sha1cd"
)

// HashSize is the byte length of a digest.
const HashSize = 20

// ErrHashCollision reports that the hash primitive detected a known
// collision attack pattern in its input. Callers must treat this as
// fatal and refuse to emit the resulting identifier.
var ErrHashCollision = errors.New("sha1 collision attack detected")

// Sum computes the SHA-1 digest of data using a collision-detecting
// implementation (SHA-1DC). A detected collision pattern fails with
// ErrHashCollision instead of returning a forged digest.
func Sum(data []byte) ([HashSize]byte, error) {
	var out [HashSize]byte
	h := sha1cd.New().(sha1cd.CollisionResistantHash)
	h.Write(data)
	sum, collided := h.CollisionResistantSum(nil)
	if collided {
		return out, ErrHashCollision
	}
	copy(out[:], sum)
	return out, nil
}

// SumObject hashes the git envelope "<kind> <len>\x00" followed by the
// payload. Content objects use kind "blob", directories "tree".
func SumObject(kind string, payload []byte) ([HashSize]byte, error) {
	var out [HashSize]byte
	h := sha1cd.New().(sha1cd.CollisionResistantHash)
	fmt.Fprintf(h, "%s %d\x00", kind, len(payload))
	h.Write(payload)
	sum, collided := h.CollisionResistantSum(nil)
	if collided {
		return out, ErrHashCollision
	}
	copy(out[:], sum)
	return out, nil
}
