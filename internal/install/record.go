package install

import (
	"io/fs"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/internal/tool"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// recordKey is the field holding the install method in a record document.
const recordKey = "installMethod"

// RecordStore persists which method installed a tool.
type RecordStore interface {
	// ReadMethod returns the recorded method. ok is false when none exists.
	ReadMethod(t tool.Tool) (m tool.Method, ok bool, err error)
	// WriteMethod records m for t.
	WriteMethod(t tool.Tool, m tool.Method) error
}

// FileRecords stores the record as a field inside each tool's own JSON
// document, leaving every other field untouched.
type FileRecords struct {
	// Files maps a tool to its record document. Tools without an entry keep no record.
	Files map[tool.Tool]string
}

// DefaultRecords returns the record locations the tools themselves read:
// ~/.claude.json for Claude and ~/.gemini/settings.json for Gemini.
// geminiDir overrides the Gemini configuration directory when non-empty.
func DefaultRecords(geminiDir string) *FileRecords {
	return &FileRecords{Files: map[tool.Tool]string{
		tool.Claude: paths.ClaudeRecordFile(),
		tool.Gemini: paths.SettingsFile(paths.ToolGemini, geminiDir),
	}}
}

func (r *FileRecords) path(t tool.Tool) string {
	info, ok := tool.Lookup(t)
	if !ok || !info.RecordsMethod {
		return ""
	}
	return r.Files[t]
}

func readDoc(path string) (map[string]any, error) {
	doc := map[string]any{}
	if err := fileutil.ReadJSONC(path, &doc); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, errors.ConfigIO(err, "reading "+path)
	}
	if doc == nil {
		doc = map[string]any{}
	}
	return doc, nil
}

// ReadMethod implements RecordStore.
func (r *FileRecords) ReadMethod(t tool.Tool) (tool.Method, bool, error) {
	path := r.path(t)
	if path == "" {
		return "", false, nil
	}
	doc, err := readDoc(path)
	if err != nil {
		return "", false, err
	}
	raw, _ := doc[recordKey].(string)
	if raw == "" {
		return "", false, nil
	}
	m, ok := tool.ParseMethod(raw)
	if !ok {
		return "", false, nil
	}
	return m, true, nil
}

// WriteMethod implements RecordStore. Claude expects npm written as npm-global.
func (r *FileRecords) WriteMethod(t tool.Tool, m tool.Method) error {
	path := r.path(t)
	if path == "" {
		return nil
	}
	doc, err := readDoc(path)
	if err != nil {
		return err
	}
	value := string(m)
	if t == tool.Claude && m == tool.NPM {
		value = "npm-global"
	}
	doc[recordKey] = value
	if err := fileutil.AtomicWriteJSONWithPerm(path, doc, 0o600); err != nil {
		return errors.ConfigIO(err, "writing "+path)
	}
	return nil
}
