// Package trajectory reads on-disk agent trajectories and computes the
// records the static viewer consumes.
package trajectory

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source file layout within a trajectory directory.
const (
	BaseStateFileName = "base_state.json"
	EventsDirName     = "events"
)

// Event files are named event-<n>.json.
const (
	eventFilePrefix = "event-"
	eventFileSuffix = ".json"
)

// Source locates one trajectory on disk.
type Source struct {
	ID      string
	Path    string
	ModTime time.Time
}

// BaseStatePath returns the path to the trajectory's base_state.json.
func (s Source) BaseStatePath() string {
	return filepath.Join(s.Path, BaseStateFileName)
}

// EventsDir returns the path to the trajectory's events directory.
func (s Source) EventsDir() string {
	return filepath.Join(s.Path, EventsDirName)
}

// IsID reports whether name looks like a trajectory directory name: 32 hex
// characters, the dash-less form of a UUID. Case is not significant.
func IsID(name string) bool {
	if len(name) != 32 {
		return false
	}
	_, err := uuid.Parse(name)
	return err == nil
}

// Scan lists the trajectory directories under conversationsDir, newest
// first by directory mtime. Entries that are not directories or whose names
// don't look like trajectory IDs are ignored.
func Scan(conversationsDir string) ([]Source, error) {
	entries, err := os.ReadDir(conversationsDir)
	if err != nil {
		return nil, err
	}

	var sources []Source
	for _, entry := range entries {
		if !entry.IsDir() || !IsID(entry.Name()) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		sources = append(sources, Source{
			ID:      entry.Name(),
			Path:    filepath.Join(conversationsDir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	slices.SortStableFunc(sources, func(a, b Source) int {
		return b.ModTime.Compare(a.ModTime)
	})
	return sources, nil
}

// SourceModTime returns the newest mtime across the trajectory directory,
// its base state file and all of its event files. This is what a trajectory's
// output artifacts are judged stale against.
func SourceModTime(src Source) time.Time {
	latest := src.ModTime
	if info, err := os.Stat(src.BaseStatePath()); err == nil && info.ModTime().After(latest) {
		latest = info.ModTime()
	}
	for _, path := range eventFiles(src.EventsDir()) {
		if info, err := os.Stat(path); err == nil && info.ModTime().After(latest) {
			latest = info.ModTime()
		}
	}
	return latest
}

// eventFiles returns the paths of the event-*.json entries under dir in
// ascending filename order. A missing directory yields nothing.
func eventFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var files []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, eventFilePrefix) || !strings.HasSuffix(name, eventFileSuffix) {
			continue
		}
		files = append(files, filepath.Join(dir, name))
	}
	return files
}
