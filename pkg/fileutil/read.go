package fileutil

import (
	"encoding/json"
	"io"
	"io/fs"
	"os"

	"github.com/tailscale/hujson"

	"github.com/thoreinstein/zcf/internal/errors"
)

// MaxFileSize is the largest settings file zcf will read (1MB).
const MaxFileSize = 1024 * 1024

// ErrFileTooLarge indicates that a file exceeded MaxFileSize.
var ErrFileTooLarge = errors.Newf("file exceeds maximum size of %d bytes", MaxFileSize)

// ReadFileWithLimit reads a file up to MaxFileSize.
// A missing file returns an error matching fs.ErrNotExist.
func ReadFileWithLimit(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	if info, err := f.Stat(); err == nil && info.Size() > MaxFileSize {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(f, MaxFileSize+1))
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

// DecodeJSONC unmarshals JSON that may contain comments and trailing commas.
func DecodeJSONC(data []byte, v any) error {
	std, err := hujson.Standardize(data)
	if err != nil {
		return errors.Wrap(err, "parsing JSON")
	}
	if err := json.Unmarshal(std, v); err != nil {
		return errors.Wrap(err, "decoding JSON")
	}
	return nil
}

// ReadJSONC reads path and decodes it with DecodeJSONC.
func ReadJSONC(path string, v any) error {
	data, err := ReadFileWithLimit(path)
	if err != nil {
		return err
	}
	return DecodeJSONC(data, v)
}

// Exists reports whether path exists. Errors other than not-exist count as existing.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
