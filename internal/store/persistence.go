package store

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmylchreest/tilemenu/internal/model"
)

// SchemaVersion is the current persistence schema version.
const SchemaVersion = 1

// Persistence defines the interface for launch history storage.
type Persistence interface {
	// Load reads all records from storage.
	Load() ([]model.LaunchRecord, error)

	// Append adds a record to storage.
	Append(r model.LaunchRecord) error

	// AppendBatch adds multiple records efficiently.
	AppendBatch(rs []model.LaunchRecord) error

	// Rewrite replaces the entire storage file (used after prune).
	Rewrite(rs []model.LaunchRecord) error

	// Clear removes all stored records.
	Clear() error

	// Close releases file handles and resources.
	Close() error
}

// schemaHeader is the first line of the JSONL file.
type schemaHeader struct {
	TilemenuSchemaVersion int   `json:"tilemenu_schema_version"`
	CreatedAt             int64 `json:"created_at"`
}

// JSONLPersistence implements Persistence using JSONL files.
type JSONLPersistence struct {
	mu     sync.Mutex
	path   string
	file   *os.File
	closed bool
}

// ErrPersistenceClosed is returned when operations are attempted on a closed persistence.
var ErrPersistenceClosed = errors.New("persistence is closed")

// maxLineSize bounds a single JSONL line.
const maxLineSize = 1024 * 1024

// NewJSONLPersistence creates a new JSONLPersistence.
// Creates the file and its parent directory if they don't exist.
func NewJSONLPersistence(path string) (*JSONLPersistence, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", path, err)
	}

	p := &JSONLPersistence{
		path: path,
		file: file,
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}

	if info.Size() == 0 {
		if err := p.writeHeader(); err != nil {
			file.Close()
			return nil, err
		}
	}

	return p, nil
}

// Path returns the backing file path.
func (p *JSONLPersistence) Path() string {
	return p.path
}

func (p *JSONLPersistence) writeHeader() error {
	header := schemaHeader{
		TilemenuSchemaVersion: SchemaVersion,
		CreatedAt:             time.Now().Unix(),
	}

	data, err := json.Marshal(header)
	if err != nil {
		return err
	}

	_, err = p.file.Write(append(data, '\n'))
	return err
}

func (p *JSONLPersistence) writeRecords(rs []model.LaunchRecord) error {
	for _, r := range rs {
		data, err := json.Marshal(r)
		if err != nil {
			return err
		}
		if _, err := p.file.Write(append(data, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// Load reads all records from storage. Malformed lines are skipped.
func (p *JSONLPersistence) Load() ([]model.LaunchRecord, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.file == nil {
		return nil, ErrPersistenceClosed
	}

	if _, err := p.file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek %s: %w", p.path, err)
	}

	var records []model.LaunchRecord
	scanner := bufio.NewScanner(p.file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		if lineNum == 1 {
			var header schemaHeader
			if err := json.Unmarshal(line, &header); err == nil && header.TilemenuSchemaVersion > 0 {
				if header.TilemenuSchemaVersion > SchemaVersion {
					return nil, fmt.Errorf("unsupported schema version %d (max: %d)",
						header.TilemenuSchemaVersion, SchemaVersion)
				}
				continue
			}
		}

		var r model.LaunchRecord
		if err := json.Unmarshal(line, &r); err != nil {
			slog.Debug("skipping malformed history line", "path", p.path, "line", lineNum, "error", err)
			continue
		}
		if r.Validate() == nil {
			records = append(records, r)
		}
	}

	if err := scanner.Err(); err != nil {
		return records, fmt.Errorf("error reading file: %w", err)
	}

	if _, err := p.file.Seek(0, io.SeekEnd); err != nil {
		return records, err
	}

	return records, nil
}

// Append adds a record to storage.
func (p *JSONLPersistence) Append(r model.LaunchRecord) error {
	return p.AppendBatch([]model.LaunchRecord{r})
}

// AppendBatch adds multiple records efficiently.
func (p *JSONLPersistence) AppendBatch(rs []model.LaunchRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed || p.file == nil {
		return ErrPersistenceClosed
	}

	if err := p.writeRecords(rs); err != nil {
		return err
	}
	return p.file.Sync()
}

// Rewrite replaces the entire storage file (used after prune).
func (p *JSONLPersistence) Rewrite(rs []model.LaunchRecord) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPersistenceClosed
	}

	if err := p.reset(); err != nil {
		return err
	}
	if err := p.writeRecords(rs); err != nil {
		return err
	}
	if err := p.file.Sync(); err != nil {
		return err
	}

	os.Remove(p.path + ".bak")
	return nil
}

// Clear removes all stored records.
func (p *JSONLPersistence) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrPersistenceClosed
	}

	if err := p.reset(); err != nil {
		return err
	}
	return p.file.Sync()
}

// reset moves the current file to a .bak backup and opens a fresh file with
// a header. The backup is restored if the new file cannot be created.
func (p *JSONLPersistence) reset() error {
	if p.file != nil {
		if err := p.file.Close(); err != nil {
			return err
		}
		p.file = nil
	}

	backupPath := p.path + ".bak"
	if err := os.Rename(p.path, backupPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	file, err := os.OpenFile(p.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC|os.O_APPEND, 0600)
	if err != nil {
		os.Rename(backupPath, p.path)
		return fmt.Errorf("failed to create new file: %w", err)
	}
	p.file = file

	return p.writeHeader()
}

// Close releases file handles and resources.
func (p *JSONLPersistence) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true

	if p.file != nil {
		err := p.file.Close()
		p.file = nil
		return err
	}
	return nil
}

// RecoverFromCorruption rewrites path keeping only valid records. The
// original file is kept as path.corrupted.<timestamp>.
func RecoverFromCorruption(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}

	var valid []model.LaunchRecord
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var header schemaHeader
		if json.Unmarshal(line, &header) == nil && header.TilemenuSchemaVersion > 0 {
			continue
		}

		var r model.LaunchRecord
		if err := json.Unmarshal(line, &r); err == nil && r.Validate() == nil {
			valid = append(valid, r)
		}
	}
	file.Close()

	backupPath := path + ".corrupted." + time.Now().Format("20060102-150405")
	if err := os.Rename(path, backupPath); err != nil {
		return fmt.Errorf("failed to backup corrupted file: %w", err)
	}

	p, err := NewJSONLPersistence(path)
	if err != nil {
		return err
	}
	defer p.Close()

	return p.AppendBatch(valid)
}
