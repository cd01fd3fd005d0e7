// Package site assembles the static trajectory viewer: per-trajectory data
// records under data/, the bundled frontend, and the patched index page.
package site

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/trajview-io/trajview/internal/models"
	"github.com/trajview-io/trajview/internal/trajectory"
)

// DataDirName is the directory under the output root holding the
// per-trajectory records and the index.
const DataDirName = "data"

// Artifact names under the data directory.
const (
	IndexFileName      = "trajectories.json"
	TrajectoryFileName = "trajectory.json"
	EventsFileName     = "events.json"
)

// Builder produces the static site for one conversations directory.
type Builder struct {
	ConversationsDir string
	OutputDir        string
	CustomDir        bool // source is somewhere other than the default location
	SiteDir          string
	BundlerCommand   string
}

// Result summarizes one data build pass.
type Result struct {
	Rebuilt   int
	Skipped   int
	Removed   int
	Summaries []models.TrajectorySummary
}

// BuildData refreshes the data directory. Summary metrics are recomputed for
// every trajectory on every pass; the per-trajectory record files are
// rewritten only when their source changed since the last pass, and records
// whose source trajectory is gone are removed.
func (b *Builder) BuildData() (*Result, error) {
	dataDir := filepath.Join(b.OutputDir, DataDirName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	sources, err := trajectory.Scan(b.ConversationsDir)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to scan %s: %w", b.ConversationsDir, err)
		}
		// A missing source directory still gets an empty index and a full
		// sweep of previously built records.
		log.Printf("Warning: conversations directory not found: %s", b.ConversationsDir)
	}

	result := &Result{Summaries: make([]models.TrajectorySummary, 0, len(sources))}
	ids := make(map[string]bool, len(sources))

	for _, src := range sources {
		ids[src.ID] = true
		result.Summaries = append(result.Summaries, trajectory.Summarize(src))

		trajDir := filepath.Join(dataDir, src.ID)
		if info, err := os.Stat(filepath.Join(trajDir, EventsFileName)); err == nil {
			if !trajectory.SourceModTime(src).After(info.ModTime()) {
				result.Skipped++
				continue
			}
		}

		log.Printf("[build] processing %s", src.ID)
		if err := os.MkdirAll(trajDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", trajDir, err)
		}
		// events.json is written last: its mtime is what the next pass
		// compares the source against.
		if err := writeJSON(filepath.Join(trajDir, TrajectoryFileName), trajectory.BuildDetail(src)); err != nil {
			return nil, err
		}
		if err := writeJSON(filepath.Join(trajDir, EventsFileName), trajectory.ReadEvents(src)); err != nil {
			return nil, err
		}
		result.Rebuilt++
	}

	entries, err := os.ReadDir(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory: %w", err)
	}
	for _, entry := range entries {
		if !entry.IsDir() || ids[entry.Name()] {
			continue
		}
		log.Printf("[build] removing stale record: %s", entry.Name())
		if err := os.RemoveAll(filepath.Join(dataDir, entry.Name())); err != nil {
			return nil, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		result.Removed++
	}

	if err := writeJSON(filepath.Join(dataDir, IndexFileName), result.Summaries); err != nil {
		return nil, err
	}
	return result, nil
}

// Assemble runs the frontend bundler and injects the runtime config into the
// produced index page.
func (b *Builder) Assemble() error {
	if err := b.runBundler(); err != nil {
		return err
	}
	name := "OpenHands"
	if b.CustomDir {
		name = filepath.Base(b.ConversationsDir)
	}
	return PatchIndexHTML(b.OutputDir, name, b.CustomDir)
}

// writeJSON writes v to path as indented JSON. Raw values carried over from
// source records may contain duplicate keys, so the encoder tolerates them.
func writeJSON(path string, v any) error {
	data, err := json.Marshal(v, jsontext.WithIndent("  "), jsontext.AllowDuplicateNames(true))
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
