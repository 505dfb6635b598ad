// Package logstore persists the full output of each wrapped run so it can be
// inspected after clarity has printed only a summary.
//
// Each run is one YAML document in the log directory. File names sort
// chronologically. A lock file in the directory serializes writers so
// concurrent clarity processes do not prune each other's fresh logs.
package logstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/dkoosis/clarity/internal/cmdline"
)

const (
	fileExt        = ".yaml"
	lockName       = ".lock"
	timeLayout     = "20060102T150405.000"
	maxNameCommand = 32
)

// ErrNoLogs is returned when the log directory holds no logs.
var ErrNoLogs = errors.New("no logs recorded")

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// Record is the persisted form of one run.
type Record struct {
	Command     string    `yaml:"command"`
	Args        []string  `yaml:"args,omitempty"`
	CommandLine string    `yaml:"command_line"`
	ExitCode    int       `yaml:"exit_code"`
	StartedAt   time.Time `yaml:"started_at"`
	DurationMS  int64     `yaml:"duration_ms"`
	Stdout      string    `yaml:"stdout"`
	Stderr      string    `yaml:"stderr"`
}

// Entry describes a stored log without loading it.
type Entry struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Store writes and reads logs under one directory.
type Store struct {
	dir       string
	retention int
	now       func() time.Time
}

// New returns a store rooted at dir. retention is the number of logs kept
// after each write; 0 or less disables pruning. The directory is created on
// first write.
func New(dir string, retention int) *Store {
	return &Store{dir: dir, retention: retention, now: time.Now}
}

// Dir returns the log directory.
func (s *Store) Dir() string {
	return s.dir
}

// WriteLog stores rec and returns the path of the new file. It then prunes
// old logs beyond the retention limit.
func (s *Store) WriteLog(ctx context.Context, rec Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create log directory: %w", err)
	}

	if rec.StartedAt.IsZero() {
		rec.StartedAt = s.now()
	}
	if rec.CommandLine == "" {
		rec.CommandLine = cmdline.Join(rec.Command, rec.Args...)
	}

	data, err := yaml.Marshal(&rec)
	if err != nil {
		return "", fmt.Errorf("encode log: %w", err)
	}

	lock := flock.New(filepath.Join(s.dir, lockName))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("lock log directory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()

	path := filepath.Join(s.dir, s.fileName(rec))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write log: %w", err)
	}

	if _, err := s.prune(); err != nil {
		return path, fmt.Errorf("prune logs: %w", err)
	}
	return path, nil
}

// List returns stored logs, newest first.
func (s *Store) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read log directory: %w", err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), fileExt) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Path:    filepath.Join(s.dir, de.Name()),
			Name:    de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name > entries[j].Name
	})
	return entries, nil
}

// Latest returns the newest stored log.
func (s *Store) Latest() (Entry, error) {
	entries, err := s.List()
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNoLogs
	}
	return entries[0], nil
}

// Read loads the log at path.
func Read(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	var rec Record
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode log %s: %w", filepath.Base(path), err)
	}
	return &rec, nil
}

// Prune removes logs beyond the retention limit and reports how many were
// removed.
func (s *Store) Prune() (int, error) {
	if _, err := os.Stat(s.dir); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	lock := flock.New(filepath.Join(s.dir, lockName))
	if err := lock.Lock(); err != nil {
		return 0, fmt.Errorf("lock log directory: %w", err)
	}
	defer func() { _ = lock.Unlock() }()
	return s.prune()
}

// prune must be called with the directory lock held.
func (s *Store) prune() (int, error) {
	if s.retention <= 0 {
		return 0, nil
	}
	entries, err := s.List()
	if err != nil {
		return 0, err
	}
	if len(entries) <= s.retention {
		return 0, nil
	}

	var errs []error
	removed := 0
	for _, e := range entries[s.retention:] {
		if err := os.Remove(e.Path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	return removed, errors.Join(errs...)
}

func (s *Store) fileName(rec Record) string {
	name := unsafeNameChars.ReplaceAllString(filepath.Base(rec.Command), "_")
	name = strings.Trim(name, "._")
	if len(name) > maxNameCommand {
		name = name[:maxNameCommand]
	}
	if name == "" {
		name = "run"
	}
	id := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return rec.StartedAt.UTC().Format(timeLayout) + "-" + name + "-" + id + fileExt
}
