package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/okranz/vncpick/internal/discovery"
)

// MaxEntries bounds the persisted history. Older entries fall off the
// end as new ones are promoted to the front.
const MaxEntries = 5

// Record is an ordered list of previously chosen endpoints,
// most-recent-first.
type Record []discovery.Endpoint

// Store reads and writes the persisted server history at a fixed path.
// The backing file is plain text, one "host port" pair per line.
//
// No cross-process locking is performed; at most one instance of the
// tool is assumed to run per user session.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a Store backed by the given file path. The file and
// its directory are created lazily on first Persist.
func NewStore(path string, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Load reads the history record. A missing or unreadable file yields an
// empty record; history is a convenience, never a reason to fail.
func (s *Store) Load() Record {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("history unreadable, treating as empty",
				zap.String("path", s.path),
				zap.Error(err),
			)
		}
		return nil
	}

	var record Record
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		record = append(record, discovery.Endpoint{Host: fields[0], Port: fields[1]})
		if len(record) == MaxEntries {
			break
		}
	}
	return record
}

// Promote returns a new record with endpoint at position 0. A previous
// occurrence of the same endpoint is removed rather than duplicated; all
// other entries keep their relative order. The result never exceeds
// MaxEntries.
func Promote(record Record, endpoint discovery.Endpoint) Record {
	promoted := make(Record, 0, len(record)+1)
	promoted = append(promoted, endpoint)
	for _, e := range record {
		if e == endpoint {
			continue
		}
		promoted = append(promoted, e)
	}
	if len(promoted) > MaxEntries {
		promoted = promoted[:MaxEntries]
	}
	return promoted
}

// Persist overwrites the backing file with the record. The write goes to
// a temporary file first and is renamed into place, so a concurrent
// reader never observes a partially written record.
func (s *Store) Persist(record Record) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	var b strings.Builder
	for _, e := range record {
		fmt.Fprintf(&b, "%s %s\n", e.Host, e.Port)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("failed to write temporary history file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to save history file: %w", err)
	}

	return nil
}
