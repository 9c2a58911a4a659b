package journal

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
	"github.com/rs/zerolog"
)

// DefaultPath is the store file used when nothing else is configured.
const DefaultPath = "entries.json"

var (
	// ErrCorruptStore means the store file exists but is not a JSON array of entries.
	ErrCorruptStore = errors.New("corrupt store")
	// ErrIO wraps read and write failures on the store file.
	ErrIO = errors.New("store i/o failure")
)

// Store owns the in-memory entry sequence and the file it is persisted to.
// It is not safe for use by more than one process at a time: a second instance
// writing the same file can silently drop entries.
type Store struct {
	path    string
	entries []Entry
	log     zerolog.Logger
}

// Open binds a store to path and loads whatever is already there.
func Open(path string, log zerolog.Logger) (*Store, error) {
	if path == "" {
		path = DefaultPath
	}
	s := &Store{
		path: path,
		log:  log.With().Str("path", path).Logger(),
	}
	if err := s.Load(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load replaces the in-memory sequence with the file contents. A missing file
// is an empty journal.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.log.Debug().Msg("no store file yet, starting empty")
			s.entries = []Entry{}
			return nil
		}
		return fmt.Errorf("load %s: %w: %v", s.path, ErrIO, err)
	}

	entries, err := decodeEntries(data)
	if err != nil {
		return fmt.Errorf("load %s: %w: %v", s.path, ErrCorruptStore, err)
	}
	s.entries = entries
	s.log.Debug().Int("entries", len(entries)).Msg("store loaded")
	return nil
}

func decodeEntries(data []byte) ([]Entry, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, errors.New("top level is not an array")
	}
	var entries []Entry
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// Save writes the whole sequence, replacing the file. The data goes to a temp
// file next to the target, is synced and then renamed over it.
func (s *Store) Save() error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	entries := s.entries
	if entries == nil {
		entries = []Entry{}
	}
	if err := enc.Encode(entries); err != nil {
		return fmt.Errorf("save %s: encode: %w", s.path, err)
	}

	if err := writeFile(s.path, buf.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("store save failed")
		return fmt.Errorf("save %s: %w: %v", s.path, ErrIO, err)
	}
	s.log.Debug().Int("entries", len(s.entries)).Msg("store saved")
	return nil
}

// writeFile replaces path with data. A symlinked path updates the file it
// points to, and an existing file keeps its permission bits.
func writeFile(path string, data []byte) error {
	target, err := resolve(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(target)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dir: %w", err)
	}

	err = renameio.WriteFile(target, data, 0o644,
		renameio.WithTempDir(dir),
		renameio.WithExistingPermissions(),
	)
	if err != nil {
		return fmt.Errorf("replace: %w", err)
	}
	return nil
}

// resolve follows symlinks to the real file. A path that does not exist yet is
// returned as given and a dangling link resolves to its destination.
func resolve(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		if dest, lerr := os.Readlink(path); lerr == nil {
			if !filepath.IsAbs(dest) {
				dest = filepath.Join(filepath.Dir(path), dest)
			}
			return dest, nil
		}
		return path, nil
	}
	return "", fmt.Errorf("resolve: %w", err)
}

// Append adds an entry to the end of the journal and saves. When saving fails
// the entry is still kept in memory and goes out with the next successful save.
func (s *Store) Append(e Entry) error {
	s.entries = append(s.entries, e)
	return s.Save()
}

// Entries returns a copy of the sequence in insertion order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len is the number of entries in memory.
func (s *Store) Len() int {
	return len(s.entries)
}

// ByMood returns the entries whose mood is stored as exactly the integer target.
func (s *Store) ByMood(target int) []Entry {
	var out []Entry
	for _, e := range s.entries {
		if mood, ok := e.MoodInt(); ok && mood == target {
			out = append(out, e)
		}
	}
	return out
}
