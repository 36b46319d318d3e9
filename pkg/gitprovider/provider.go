// Package gitprovider reads live git repositories to supply the
// higher-level object kinds: revisions, releases, and snapshots. It
// only resolves refs and already-committed hashes; content and
// directory hashing never goes through it.
package gitprovider

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/sourcehash/swhid/pkg/object"
	"github.com/sourcehash/swhid/pkg/swhid"
)

// ErrLightweightTag reports a tag ref pointing directly at a commit;
// only annotated tag objects have release identifiers.
var ErrLightweightTag = errors.New("ref is not an annotated tag")

// maxPeelDepth bounds tag-chain peeling.
const maxPeelDepth = 10

// Repository is an opened git repository (worktree or bare).
type Repository struct {
	gitDir string
}

// Open locates the git directory for path: either path/.git, or path
// itself when it is a bare repository.
func Open(path string) (*Repository, error) {
	for _, candidate := range []string{filepath.Join(path, ".git"), path} {
		headPath := filepath.Join(candidate, "HEAD")
		objectsPath := filepath.Join(candidate, "objects")
		if fileExists(headPath) && fileExists(objectsPath) {
			return &Repository{gitDir: candidate}, nil
		}
	}
	return nil, fmt.Errorf("no git repository at %s", path)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Revision resolves a ref (or "HEAD") to its commit and returns the
// revision identifier. Annotated tags are peeled to the commit they
// point at.
func (r *Repository) Revision(ref string) (swhid.CoreID, error) {
	hexhash, err := r.resolveRef(ref)
	if err != nil {
		return swhid.CoreID{}, err
	}
	for depth := 0; depth < maxPeelDepth; depth++ {
		objType, payload, err := r.readObject(hexhash)
		if err != nil {
			return swhid.CoreID{}, err
		}
		switch objType {
		case "commit":
			return coreFromHex(swhid.KindRevision, hexhash)
		case "tag":
			target, err := tagTarget(payload)
			if err != nil {
				return swhid.CoreID{}, fmt.Errorf("peel tag %s: %w", hexhash, err)
			}
			hexhash = target
		default:
			return swhid.CoreID{}, fmt.Errorf("ref %s resolves to a %s, want commit", ref, objType)
		}
	}
	return swhid.CoreID{}, fmt.Errorf("ref %s: tag chain deeper than %d", ref, maxPeelDepth)
}

// Release resolves a tag ref to its annotated tag object and returns
// the release identifier. A lightweight tag fails with
// ErrLightweightTag.
func (r *Repository) Release(ref string) (swhid.CoreID, error) {
	hexhash, err := r.resolveRef(ref)
	if err != nil {
		return swhid.CoreID{}, err
	}
	objType, _, err := r.readObject(hexhash)
	if err != nil {
		return swhid.CoreID{}, err
	}
	if objType != "tag" {
		return swhid.CoreID{}, fmt.Errorf("%w: %s points at a %s", ErrLightweightTag, ref, objType)
	}
	return coreFromHex(swhid.KindRelease, hexhash)
}

// snapshotEntry is one ref in the snapshot manifest.
type snapshotEntry struct {
	name       []byte
	targetType string
	target     []byte // 20 raw hash bytes, or the aliased ref name
}

// Snapshot enumerates the repository's refs and hashes the snapshot
// canonical encoding: "snapshot <len>\x00" followed by, per ref sorted
// by name bytes, "<target_type> <name>\x00<decimal target len>:<target>".
// A symbolic HEAD contributes an alias entry whose target is the ref
// name it points at.
func (r *Repository) Snapshot() (swhid.CoreID, error) {
	refs, err := r.refs()
	if err != nil {
		return swhid.CoreID{}, err
	}

	entries := make([]snapshotEntry, 0, len(refs)+1)
	for name, hexhash := range refs {
		objType, _, err := r.readObject(hexhash)
		if err != nil {
			return swhid.CoreID{}, fmt.Errorf("ref %s: %w", name, err)
		}
		targetType, err := snapshotTargetType(objType)
		if err != nil {
			return swhid.CoreID{}, fmt.Errorf("ref %s: %w", name, err)
		}
		raw, err := decodeHash(hexhash)
		if err != nil {
			return swhid.CoreID{}, fmt.Errorf("ref %s: %w", name, err)
		}
		entries = append(entries, snapshotEntry{name: []byte(name), targetType: targetType, target: raw})
	}

	if head, ok, err := r.headEntry(); err != nil {
		return swhid.CoreID{}, err
	} else if ok {
		entries = append(entries, head)
	}

	sort.Slice(entries, func(i, j int) bool {
		return bytes.Compare(entries[i].name, entries[j].name) < 0
	})

	var payload bytes.Buffer
	for _, e := range entries {
		payload.WriteString(e.targetType)
		payload.WriteByte(' ')
		payload.Write(e.name)
		payload.WriteByte(0)
		payload.WriteString(strconv.Itoa(len(e.target)))
		payload.WriteByte(':')
		payload.Write(e.target)
	}

	digest, err := object.SumObject("snapshot", payload.Bytes())
	if err != nil {
		return swhid.CoreID{}, err
	}
	return swhid.New(swhid.KindSnapshot, digest), nil
}

func snapshotTargetType(objType string) (string, error) {
	switch objType {
	case "commit":
		return "revision", nil
	case "tag":
		return "release", nil
	case "tree":
		return "directory", nil
	case "blob":
		return "content", nil
	}
	return "", fmt.Errorf("unsupported ref target type %q", objType)
}

// resolveRef turns a ref name (or "HEAD", or a shorthand like "main")
// into a 40-hex object hash, following symbolic refs and consulting
// packed-refs when no loose ref file exists.
func (r *Repository) resolveRef(name string) (string, error) {
	for depth := 0; depth < maxPeelDepth; depth++ {
		value, err := r.refValue(name)
		if err != nil {
			return "", err
		}
		if target, ok := strings.CutPrefix(value, "ref: "); ok {
			name = strings.TrimSpace(target)
			continue
		}
		if !isHex40(value) {
			return "", fmt.Errorf("ref %s: malformed target %q", name, value)
		}
		return value, nil
	}
	return "", fmt.Errorf("ref %s: symbolic chain deeper than %d", name, maxPeelDepth)
}

// refValue reads one level of ref indirection: the loose ref file if
// present, else the packed-refs entry. Shorthand names are tried under
// refs/, refs/heads/, and refs/tags/ like git's lookup order.
func (r *Repository) refValue(name string) (string, error) {
	for _, candidate := range refCandidates(name) {
		data, err := os.ReadFile(filepath.Join(r.gitDir, filepath.FromSlash(candidate)))
		if err == nil {
			return strings.TrimSpace(string(data)), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("read ref %s: %w", candidate, err)
		}
	}
	packed, err := r.packedRefs()
	if err != nil {
		return "", err
	}
	for _, candidate := range refCandidates(name) {
		if hexhash, ok := packed[candidate]; ok {
			return hexhash, nil
		}
	}
	return "", fmt.Errorf("ref %s: not found", name)
}

func refCandidates(name string) []string {
	if name == "HEAD" || strings.HasPrefix(name, "refs/") {
		return []string{name}
	}
	return []string{
		"refs/" + name,
		"refs/heads/" + name,
		"refs/tags/" + name,
	}
}

// refs returns every ref under refs/ mapped to its 40-hex target.
// Loose refs shadow packed ones.
func (r *Repository) refs() (map[string]string, error) {
	out, err := r.packedRefs()
	if err != nil {
		return nil, err
	}

	refsDir := filepath.Join(r.gitDir, "refs")
	err = filepath.WalkDir(refsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.gitDir, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		value, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read ref %s: %w", name, err)
		}
		trimmed := strings.TrimSpace(string(value))
		if isHex40(trimmed) {
			out[name] = trimmed
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk refs: %w", err)
	}
	return out, nil
}

// packedRefs parses .git/packed-refs. Peeled "^" lines are skipped:
// the snapshot records the tag object itself, not its peeled target.
func (r *Repository) packedRefs() (map[string]string, error) {
	out := make(map[string]string)
	data, err := os.ReadFile(filepath.Join(r.gitDir, "packed-refs"))
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("read packed-refs: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "^") {
			continue
		}
		hexhash, name, ok := strings.Cut(line, " ")
		if !ok || !isHex40(hexhash) {
			continue
		}
		out[name] = hexhash
	}
	return out, nil
}

// headEntry builds the snapshot entry for HEAD: an alias when HEAD is
// symbolic, a direct object entry when detached.
func (r *Repository) headEntry() (snapshotEntry, bool, error) {
	data, err := os.ReadFile(filepath.Join(r.gitDir, "HEAD"))
	if err != nil {
		return snapshotEntry{}, false, fmt.Errorf("read HEAD: %w", err)
	}
	value := strings.TrimSpace(string(data))
	if target, ok := strings.CutPrefix(value, "ref: "); ok {
		return snapshotEntry{
			name:       []byte("HEAD"),
			targetType: "alias",
			target:     []byte(strings.TrimSpace(target)),
		}, true, nil
	}
	if !isHex40(value) {
		return snapshotEntry{}, false, fmt.Errorf("malformed HEAD %q", value)
	}
	objType, _, err := r.readObject(value)
	if err != nil {
		return snapshotEntry{}, false, fmt.Errorf("HEAD: %w", err)
	}
	targetType, err := snapshotTargetType(objType)
	if err != nil {
		return snapshotEntry{}, false, fmt.Errorf("HEAD: %w", err)
	}
	raw, err := decodeHash(value)
	if err != nil {
		return snapshotEntry{}, false, err
	}
	return snapshotEntry{name: []byte("HEAD"), targetType: targetType, target: raw}, true, nil
}

// tagTarget extracts the "object" header of an annotated tag payload.
func tagTarget(payload []byte) (string, error) {
	for _, line := range strings.Split(string(payload), "\n") {
		if target, ok := strings.CutPrefix(line, "object "); ok {
			if !isHex40(target) {
				return "", fmt.Errorf("malformed object header %q", line)
			}
			return target, nil
		}
		if line == "" {
			break
		}
	}
	return "", errors.New("no object header")
}

func coreFromHex(kind swhid.ObjectKind, hexhash string) (swhid.CoreID, error) {
	raw, err := decodeHash(hexhash)
	if err != nil {
		return swhid.CoreID{}, err
	}
	var hash [swhid.HashSize]byte
	copy(hash[:], raw)
	return swhid.New(kind, hash), nil
}

func decodeHash(hexhash string) ([]byte, error) {
	if !isHex40(hexhash) {
		return nil, fmt.Errorf("malformed hash %q", hexhash)
	}
	return hex.DecodeString(hexhash)
}

func isHex40(s string) bool {
	if len(s) != 2*swhid.HashSize {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
