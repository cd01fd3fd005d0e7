package site

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	"github.com/stretchr/testify/require"

	"github.com/trajview-io/trajview/internal/models"
)

const (
	idA = "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa"
	idB = "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func writeTrajectory(t *testing.T, root, id, title string) {
	t.Helper()
	dir := filepath.Join(root, id)
	writeFile(t, filepath.Join(dir, "base_state.json"),
		fmt.Sprintf(`{"agent":{"id":%q,"llm":{"model":"gpt-4o"}}}`, title))
	writeFile(t, filepath.Join(dir, "events", "event-001.json"),
		`{"timestamp":"2025-03-01T10:00:00Z","source":"user"}`)
	writeFile(t, filepath.Join(dir, "events", "event-002.json"),
		`{"timestamp":"2025-03-01T10:00:05Z","source":"agent"}`)
}

func TestBuildData(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeTrajectory(t, srcDir, idA, "session-a")
	writeTrajectory(t, srcDir, idB, "session-b")

	// Push A into the past so the index order is deterministic.
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(srcDir, idA), past, past))

	b := &Builder{ConversationsDir: srcDir, OutputDir: outDir}
	result, err := b.BuildData()
	require.NoError(t, err)
	require.Equal(t, 2, result.Rebuilt)
	require.Equal(t, 0, result.Skipped)
	require.Equal(t, 0, result.Removed)

	data, err := os.ReadFile(filepath.Join(outDir, DataDirName, IndexFileName))
	require.NoError(t, err)
	var summaries []models.TrajectorySummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Len(t, summaries, 2)
	require.Equal(t, idB, summaries[0].ID)
	require.Equal(t, idA, summaries[1].ID)
	require.Equal(t, "session-b", summaries[0].Title)

	data, err = os.ReadFile(filepath.Join(outDir, DataDirName, idA, TrajectoryFileName))
	require.NoError(t, err)
	var detail models.TrajectoryDetail
	require.NoError(t, json.Unmarshal(data, &detail))
	require.Equal(t, idA, detail.ID)
	require.Equal(t, 2, detail.EventCount)
	require.Equal(t, `"gpt-4o"`, string(detail.Model))

	data, err = os.ReadFile(filepath.Join(outDir, DataDirName, idA, EventsFileName))
	require.NoError(t, err)
	var events []jsontext.Value
	require.NoError(t, json.Unmarshal(data, &events))
	require.Len(t, events, 2)
}

func TestBuildDataSkipsUnchanged(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeTrajectory(t, srcDir, idA, "session-a")
	writeTrajectory(t, srcDir, idB, "session-b")

	b := &Builder{ConversationsDir: srcDir, OutputDir: outDir}
	_, err := b.BuildData()
	require.NoError(t, err)

	result, err := b.BuildData()
	require.NoError(t, err)
	require.Equal(t, 0, result.Rebuilt)
	require.Equal(t, 2, result.Skipped)
	// Summary metrics are still recomputed for skipped trajectories.
	require.Len(t, result.Summaries, 2)
}

func TestBuildDataRebuildsChanged(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeTrajectory(t, srcDir, idA, "session-a")
	writeTrajectory(t, srcDir, idB, "session-b")

	b := &Builder{ConversationsDir: srcDir, OutputDir: outDir}
	_, err := b.BuildData()
	require.NoError(t, err)

	future := time.Now().Add(time.Hour)
	touched := filepath.Join(srcDir, idA, "events", "event-002.json")
	require.NoError(t, os.Chtimes(touched, future, future))

	result, err := b.BuildData()
	require.NoError(t, err)
	require.Equal(t, 1, result.Rebuilt)
	require.Equal(t, 1, result.Skipped)
}

func TestBuildDataSweepsRemoved(t *testing.T) {
	srcDir := t.TempDir()
	outDir := t.TempDir()
	writeTrajectory(t, srcDir, idA, "session-a")
	writeTrajectory(t, srcDir, idB, "session-b")

	b := &Builder{ConversationsDir: srcDir, OutputDir: outDir}
	_, err := b.BuildData()
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(srcDir, idA)))

	result, err := b.BuildData()
	require.NoError(t, err)
	require.Equal(t, 1, result.Removed)
	require.Equal(t, 1, result.Skipped)

	_, err = os.Stat(filepath.Join(outDir, DataDirName, idA))
	require.True(t, os.IsNotExist(err))

	data, err := os.ReadFile(filepath.Join(outDir, DataDirName, IndexFileName))
	require.NoError(t, err)
	var summaries []models.TrajectorySummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.Len(t, summaries, 1)
	require.Equal(t, idB, summaries[0].ID)
}

func TestBuildDataMissingSource(t *testing.T) {
	srcDir := filepath.Join(t.TempDir(), "gone")
	outDir := t.TempDir()

	// A leftover record from an earlier pass still gets swept.
	writeFile(t, filepath.Join(outDir, DataDirName, idA, EventsFileName), "[]")

	b := &Builder{ConversationsDir: srcDir, OutputDir: outDir}
	result, err := b.BuildData()
	require.NoError(t, err)
	require.Equal(t, 0, result.Rebuilt)
	require.Equal(t, 1, result.Removed)
	require.Empty(t, result.Summaries)

	data, err := os.ReadFile(filepath.Join(outDir, DataDirName, IndexFileName))
	require.NoError(t, err)
	var summaries []models.TrajectorySummary
	require.NoError(t, json.Unmarshal(data, &summaries))
	require.NotNil(t, summaries, "an empty index must be a JSON array, not null")
	require.Empty(t, summaries)
}

func TestWriteJSONToleratesDuplicateKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	raw := jsontext.Value(`{"model":"first","model":"second"}`)
	require.NoError(t, writeJSON(path, raw))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `"second"`)
}
