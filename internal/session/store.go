package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/devmobasa/wayscriber/internal/logger"
)

var (
	// ErrSnapshotTooLarge means the serialized session exceeds the
	// configured cap, on either the write or the read side.
	ErrSnapshotTooLarge = errors.New("session snapshot exceeds size cap")
	// ErrSnapshotCorrupt means the file on disk did not parse; it has
	// been moved aside so the next save starts clean.
	ErrSnapshotCorrupt = errors.New("session snapshot is corrupt")
)

// DefaultMaxFileSize caps session files at 10 MiB.
const DefaultMaxFileSize = 10 << 20

// Store reads and writes session files. Writes go through a temp file in
// the same directory and an atomic rename.
type Store struct {
	Path        string
	MaxFileSize int64
	Backup      bool // rotate the previous file to .bak on save
}

// NewStore returns a store with the default size cap.
func NewStore(path string) *Store {
	return &Store{Path: path, MaxFileSize: DefaultMaxFileSize, Backup: true}
}

// Encode serializes a snapshot and enforces the size cap.
func (st *Store) Encode(snap *Snapshot) ([]byte, error) {
	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	if st.MaxFileSize > 0 && int64(len(data)) > st.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrSnapshotTooLarge, len(data))
	}
	return data, nil
}

// Save writes the snapshot to disk.
func (st *Store) Save(snap *Snapshot) error {
	data, err := st.Encode(snap)
	if err != nil {
		return err
	}
	return st.WriteEncoded(data)
}

// WriteEncoded writes pre-encoded session bytes atomically, rotating the
// previous file to .bak when backups are enabled.
func (st *Store) WriteEncoded(data []byte) error {
	dir := filepath.Dir(st.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("session directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*.tmp")
	if err != nil {
		return fmt.Errorf("session temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close session: %w", err)
	}

	if st.Backup {
		if _, err := os.Stat(st.Path); err == nil {
			if err := os.Rename(st.Path, st.Path+".bak"); err != nil {
				logger.Warn("session backup rotation failed", "error", err)
			}
		}
	}
	if err := os.Rename(tmpName, st.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit session: %w", err)
	}
	return nil
}

// Load reads the session file. A missing file returns (nil, nil). A file
// over the size cap is refused. A file that fails to parse is moved to a
// .corrupt backup and reported as ErrSnapshotCorrupt.
func (st *Store) Load() (*Snapshot, error) {
	info, err := os.Stat(st.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat session: %w", err)
	}
	if st.MaxFileSize > 0 && info.Size() > st.MaxFileSize {
		return nil, fmt.Errorf("%w: %d bytes on disk", ErrSnapshotTooLarge, info.Size())
	}

	data, err := os.ReadFile(st.Path)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}

	snap, err := decodeSnapshot(data)
	if err != nil {
		corrupt := st.Path + ".corrupt"
		if rerr := os.Rename(st.Path, corrupt); rerr != nil {
			logger.Warn("corrupt session backup failed", "error", rerr)
		} else {
			logger.Warn("corrupt session moved aside", "path", corrupt, "error", err)
		}
		return nil, fmt.Errorf("%w: %v", ErrSnapshotCorrupt, err)
	}
	return snap, nil
}

// Reset removes the session file and its backup.
func (st *Store) Reset() error {
	for _, p := range []string{st.Path, st.Path + ".bak"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
	}
	return nil
}
