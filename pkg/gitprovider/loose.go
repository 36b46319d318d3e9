package gitprovider

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zlib"
)

// ErrNotLoose reports an object that is not stored loose. Packfile
// reading is deliberately unsupported; callers see a typed failure
// instead of a wrong answer.
var ErrNotLoose = errors.New("object not found among loose objects")

// readObject reads and inflates a loose object, returning its type tag
// and payload. Loose objects are zlib streams over the envelope
// "<type> <len>\x00<payload>".
func (r *Repository) readObject(hexhash string) (string, []byte, error) {
	path := filepath.Join(r.gitDir, "objects", hexhash[:2], hexhash[2:])
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotLoose, hexhash)
		}
		return "", nil, fmt.Errorf("open object %s: %w", hexhash, err)
	}
	defer f.Close()

	zr, err := zlib.NewReader(f)
	if err != nil {
		return "", nil, fmt.Errorf("inflate object %s: %w", hexhash, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return "", nil, fmt.Errorf("inflate object %s: %w", hexhash, err)
	}

	nulIdx := bytes.IndexByte(raw, 0)
	if nulIdx < 0 {
		return "", nil, fmt.Errorf("object %s: invalid envelope (no NUL)", hexhash)
	}
	header := string(raw[:nulIdx])
	payload := raw[nulIdx+1:]

	objType, lenStr, ok := strings.Cut(header, " ")
	if !ok {
		return "", nil, fmt.Errorf("object %s: invalid header %q", hexhash, header)
	}
	length, err := strconv.Atoi(lenStr)
	if err != nil || length != len(payload) {
		return "", nil, fmt.Errorf("object %s: length mismatch (header %q, payload %d)", hexhash, header, len(payload))
	}
	return objType, payload, nil
}
