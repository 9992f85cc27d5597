//go:build !unix

package probe

import "os"

// writable approximates access(2) by creating and removing a temp file.
func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".zcf-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}
