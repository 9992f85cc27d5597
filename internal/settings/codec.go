package settings

import (
	"bytes"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// codec converts between file bytes and documents.
type codec interface {
	decode(data []byte) (Document, error)
	write(path string, doc Document, perm os.FileMode) error
}

// jsonCodec reads JSON with comments and trailing commas and writes
// standard indented JSON.
type jsonCodec struct{}

func (jsonCodec) decode(data []byte) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, nil
	}
	var doc Document
	if err := fileutil.DecodeJSONC(data, &doc); err != nil {
		return nil, err
	}
	if doc == nil {
		doc = Document{}
	}
	return doc, nil
}

func (jsonCodec) write(path string, doc Document, perm os.FileMode) error {
	return fileutil.AtomicWriteJSONWithPerm(path, doc, perm)
}

type tomlCodec struct{}

func (tomlCodec) decode(data []byte) (Document, error) {
	doc := Document{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parsing TOML")
	}
	return doc, nil
}

func (tomlCodec) write(path string, doc Document, perm os.FileMode) error {
	return fileutil.AtomicWriteTOMLWithPerm(path, doc, perm)
}
