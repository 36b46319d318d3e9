package compute

import (
	"io/fs"
	"os"
)

// Filesystem is the read-only seam the computer reaches the disk
// through. Lstat never follows symlinks; following happens only where
// the dereference policy explicitly asks for it.
type Filesystem interface {
	Lstat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	ReadLink(path string) (string, error)
	ReadDir(path string) ([]fs.DirEntry, error)
}

// OS is the production Filesystem backed by the os package.
var OS Filesystem = osFS{}

type osFS struct{}

func (osFS) Lstat(path string) (fs.FileInfo, error) { return os.Lstat(path) }

func (osFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osFS) ReadLink(path string) (string, error) { return os.Readlink(path) }

func (osFS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }
