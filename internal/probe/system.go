package probe

import (
	"io/fs"
	"os"
	"os/exec"
	"runtime"
)

// System is the slice of the operating system a Probe reads from.
type System interface {
	GOOS() string
	LookupEnv(key string) (string, bool)
	Stat(path string) (fs.FileInfo, error)
	ReadFile(path string) ([]byte, error)
	LookPath(file string) (string, error)
	Geteuid() int
	// Writable reports whether the current user may create entries in dir.
	Writable(dir string) bool
}

// OS is the System backed by the running process.
type OS struct{}

func (OS) GOOS() string                          { return runtime.GOOS }
func (OS) LookupEnv(key string) (string, bool)   { return os.LookupEnv(key) }
func (OS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }
func (OS) ReadFile(path string) ([]byte, error)  { return os.ReadFile(path) }
func (OS) LookPath(file string) (string, error)  { return exec.LookPath(file) }
func (OS) Geteuid() int                          { return os.Geteuid() }
func (OS) Writable(dir string) bool              { return writable(dir) }
