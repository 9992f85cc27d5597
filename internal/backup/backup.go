package backup

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/thoreinstein/zcf/internal/errors"
	"github.com/thoreinstein/zcf/internal/paths"
	"github.com/thoreinstein/zcf/pkg/fileutil"
)

// Manager creates, lists, restores and prunes backups.
type Manager struct {
	rootDir   string
	retention int
	version   string
	now       func() time.Time

	mu   sync.Mutex
	done map[string]bool
}

// Option configures a Manager.
type Option func(*Manager)

// WithBackupDir sets the root backup directory.
func WithBackupDir(dir string) Option {
	return func(m *Manager) {
		m.rootDir = dir
	}
}

// WithRetentionCount sets how many backups Prune keeps by default.
// Zero keeps everything.
func WithRetentionCount(n int) Option {
	return func(m *Manager) {
		if n >= 0 {
			m.retention = n
		}
	}
}

// WithVersion records the zcf version in new manifests.
func WithVersion(v string) Option {
	return func(m *Manager) {
		m.version = v
	}
}

// WithClock overrides the time source used for backup IDs.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager creates a Manager rooted at paths.BackupRoot by default.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rootDir:   paths.BackupRoot(),
		retention: DefaultRetentionCount,
		version:   "dev",
		now:       time.Now,
		done:      make(map[string]bool),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Retention returns the configured retention count.
func (m *Manager) Retention() int {
	return m.retention
}

// Backup copies files for a tool into a new backup directory.
// Directories are copied recursively. Paths that do not exist are skipped;
// if none exist ErrNothingToBackup is returned.
func (m *Manager) Backup(tool, reason string, files []string) (*Manifest, error) {
	if tool == "" {
		return nil, errors.New("tool is required")
	}
	if len(files) == 0 {
		return nil, ErrNothingToBackup
	}

	created := m.now()
	id, dir, err := m.reserve(tool, created)
	if err != nil {
		return nil, err
	}

	var copied []File
	for _, p := range files {
		info, err := os.Stat(p)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "stat %s", p)
		}

		if info.IsDir() {
			dirFiles, err := backupDirectory(p, dir)
			if err != nil {
				os.RemoveAll(dir)
				return nil, errors.Wrapf(err, "backing up directory %s", p)
			}
			copied = append(copied, dirFiles...)
			continue
		}
		bf, err := backupFile(p, dir)
		if err != nil {
			os.RemoveAll(dir)
			return nil, errors.Wrapf(err, "backing up file %s", p)
		}
		copied = append(copied, bf)
	}

	if len(copied) == 0 {
		os.RemoveAll(dir)
		return nil, ErrNothingToBackup
	}

	manifest := &Manifest{
		Version:    ManifestVersion,
		CreatedAt:  created.UTC(),
		Tool:       tool,
		Reason:     reason,
		Files:      copied,
		ZCFVersion: m.version,
		ID:         id,
	}
	if err := fileutil.AtomicWriteJSON(filepath.Join(dir, "manifest.json"), manifest); err != nil {
		os.RemoveAll(dir)
		return nil, errors.Wrap(err, "writing manifest")
	}
	return manifest, nil
}

// reserve creates a fresh backup directory. Backups taken within the same
// second get a numeric suffix.
func (m *Manager) reserve(tool string, at time.Time) (string, string, error) {
	base := at.Format(idLayout)
	if err := os.MkdirAll(m.toolDir(tool), paths.DefaultDirPerm); err != nil {
		return "", "", errors.Wrap(err, "creating backup directory")
	}
	for i := 0; ; i++ {
		id := base
		if i > 0 {
			id = fmt.Sprintf("%s-%d", base, i)
		}
		dir := m.backupPath(tool, id)
		err := os.Mkdir(dir, paths.DefaultDirPerm)
		if err == nil {
			return id, dir, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", errors.Wrap(err, "creating backup directory")
		}
	}
}

// EnsureBackedUp backs up files at most once per tool and file set for
// the lifetime of the Manager. A failed attempt can be retried.
func (m *Manager) EnsureBackedUp(tool, reason string, files []string) (*Manifest, error) {
	key := tool + "\x00" + strings.Join(files, "\x00")
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.done[key] {
		return nil, nil
	}
	manifest, err := m.Backup(tool, reason, files)
	if errors.Is(err, ErrNothingToBackup) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "creating backup for %s", tool)
	}
	m.done[key] = true
	return manifest, nil
}

func backupFile(src, backupDir string) (File, error) {
	rel := relPath(src)
	dst := filepath.Join(backupDir, rel)
	if err := os.MkdirAll(filepath.Dir(dst), paths.DefaultDirPerm); err != nil {
		return File{}, errors.Wrap(err, "creating parent directory")
	}
	hash, mode, err := copyFile(src, dst)
	if err != nil {
		return File{}, err
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		abs = src
	}
	return File{OriginalPath: abs, RelPath: rel, SHA256: hash, Mode: mode}, nil
}

func backupDirectory(srcDir, backupDir string) ([]File, error) {
	var files []File
	err := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		bf, err := backupFile(path, backupDir)
		if err != nil {
			return err
		}
		files = append(files, bf)
		return nil
	})
	return files, err
}

// Restore copies the files of a backup back to their original locations.
// Every file's hash is checked before anything is written. The current
// versions of the files are backed up first.
func (m *Manager) Restore(tool, id string) (*Manifest, error) {
	manifest, err := m.Get(tool, id)
	if err != nil {
		return nil, err
	}
	dir := m.backupPath(tool, id)

	for _, f := range manifest.Files {
		hash, err := hashFile(filepath.Join(dir, f.RelPath))
		if err != nil {
			return nil, errors.Wrapf(err, "reading backup file %s", f.RelPath)
		}
		if hash != f.SHA256 {
			return nil, errors.Wrapf(ErrBackupCorrupted, "file %s hash mismatch", f.RelPath)
		}
	}

	current := make([]string, 0, len(manifest.Files))
	for _, f := range manifest.Files {
		current = append(current, f.OriginalPath)
	}
	if _, err := m.Backup(tool, "pre-restore", current); err != nil && !errors.Is(err, ErrNothingToBackup) {
		return nil, errors.Wrap(err, "backing up current files")
	}

	for _, f := range manifest.Files {
		if err := os.MkdirAll(filepath.Dir(f.OriginalPath), paths.DefaultDirPerm); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", f.OriginalPath)
		}
		if _, _, err := copyFile(filepath.Join(dir, f.RelPath), f.OriginalPath); err != nil {
			return nil, errors.Wrapf(err, "restoring %s", f.OriginalPath)
		}
		if err := os.Chmod(f.OriginalPath, f.Mode.Perm()); err != nil {
			return nil, errors.Wrapf(err, "setting permissions for %s", f.OriginalPath)
		}
	}
	return manifest, nil
}

// List returns the backups for tool, newest first.
func (m *Manager) List(tool string) ([]Manifest, error) {
	entries, err := os.ReadDir(m.toolDir(tool))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", tool)
		}
		return nil, errors.Wrap(err, "reading backup directory")
	}

	manifests := make([]Manifest, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		manifest, err := m.Get(tool, entry.Name())
		if err != nil {
			continue
		}
		manifests = append(manifests, *manifest)
	}
	if len(manifests) == 0 {
		return nil, errors.Wrapf(ErrNoBackupsFound, "for %s", tool)
	}

	slices.SortFunc(manifests, func(a, b Manifest) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(b.ID, a.ID)
	})
	return manifests, nil
}

// Prune deletes backups beyond the newest keep. A negative keep uses the
// configured retention count. Returns the removed IDs.
func (m *Manager) Prune(tool string, keep int) ([]string, error) {
	if keep < 0 {
		keep = m.retention
	}
	manifests, err := m.List(tool)
	if err != nil {
		if errors.Is(err, ErrNoBackupsFound) {
			return nil, nil
		}
		return nil, err
	}

	var removed []string
	for i := keep; i < len(manifests); i++ {
		if err := os.RemoveAll(m.backupPath(tool, manifests[i].ID)); err != nil {
			return removed, errors.Wrapf(err, "removing backup %s", manifests[i].ID)
		}
		removed = append(removed, manifests[i].ID)
	}
	return removed, nil
}

// Get loads the manifest of one backup.
func (m *Manager) Get(tool, id string) (*Manifest, error) {
	if id == "" || strings.ContainsAny(id, `/\`) || id == "." || id == ".." {
		return nil, errors.NewValidationError("backup", "invalid backup id %q", id)
	}
	data, err := fileutil.ReadFileWithLimit(filepath.Join(m.backupPath(tool, id), "manifest.json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNoBackupsFound, "backup %s", id)
		}
		return nil, errors.Wrap(err, "reading manifest")
	}

	var manifest Manifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", id)
	}
	manifest.ID = id
	return &manifest, nil
}

func (m *Manager) backupPath(tool, id string) string {
	return filepath.Join(m.toolDir(tool), id)
}

func (m *Manager) toolDir(tool string) string {
	return filepath.Join(m.rootDir, tool)
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "opening file")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "reading file")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// copyFile copies src to dst and returns the content hash and source mode.
func copyFile(src, dst string) (string, fs.FileMode, error) {
	in, err := os.Open(src)
	if err != nil {
		return "", 0, errors.Wrap(err, "opening source file")
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", 0, errors.Wrap(err, "stat source file")
	}
	mode := info.Mode()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return "", 0, errors.Wrap(err, "creating destination file")
	}

	h := sha256.New()
	if _, err := io.Copy(io.MultiWriter(out, h), in); err != nil {
		out.Close()
		return "", 0, errors.Wrap(err, "copying file")
	}
	if err := out.Close(); err != nil {
		return "", 0, errors.Wrap(err, "closing destination file")
	}
	if err := os.Chmod(dst, mode.Perm()); err != nil {
		return "", 0, errors.Wrap(err, "setting permissions")
	}
	return hex.EncodeToString(h.Sum(nil)), mode, nil
}

// relPath maps an absolute path to a location inside a backup directory.
// Leading separators and drive colons are dropped.
func relPath(abs string) string {
	if a, err := filepath.Abs(abs); err == nil {
		abs = a
	}
	clean := strings.ReplaceAll(filepath.Clean(abs), ":", "")
	return strings.TrimLeft(clean, `/\`)
}
