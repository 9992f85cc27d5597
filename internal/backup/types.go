package backup

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/zcf/internal/errors"
)

// ManifestVersion is the manifest format version.
const ManifestVersion = 1

// DefaultRetentionCount is the number of backups kept per tool.
const DefaultRetentionCount = 10

// idLayout formats backup IDs.
const idLayout = "20060102T150405"

var (
	// ErrNoBackupsFound indicates no backups exist for the tool.
	ErrNoBackupsFound = errors.Mark(errors.New("no backups found"), errors.ErrNotFound)

	// ErrBackupCorrupted indicates a file no longer matches its manifest hash.
	ErrBackupCorrupted = errors.New("backup corrupted")

	// ErrNothingToBackup indicates none of the requested paths exist.
	ErrNothingToBackup = errors.New("no files to back up")
)

// Manifest describes one backup. It is stored as manifest.json.
type Manifest struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	Tool      string    `json:"tool"`
	// Reason is a short label of the operation that triggered the backup.
	Reason     string `json:"reason,omitempty"`
	Files      []File `json:"files"`
	ZCFVersion string `json:"zcf_version"`

	// ID is the directory name. Populated on load, not stored.
	ID string `json:"-"`
}

// File is one backed-up file.
type File struct {
	OriginalPath string      `json:"original_path"`
	RelPath      string      `json:"rel_path"`
	SHA256       string      `json:"sha256"`
	Mode         fs.FileMode `json:"mode"`
}
