// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jeranaias/quill-tui/internal/registry"
	"github.com/jeranaias/quill-tui/internal/render"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func artifactAt(path string, created time.Time) *render.ArtifactDescriptor {
	return &render.ArtifactDescriptor{
		Path:      path,
		Format:    registry.FormatWord,
		Size:      2048,
		CreatedAt: created,
	}
}

func TestRecordAndRecent(t *testing.T) {
	store := openTestStore(t)

	base := time.Date(2025, 10, 23, 14, 30, 0, 0, time.UTC)
	require.NoError(t, store.Record(artifactAt("/tmp/a.docx", base), "Export as word"))
	require.NoError(t, store.Record(artifactAt("/tmp/b.docx", base.Add(time.Minute)), "Export again"))

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Newest first.
	require.Equal(t, "/tmp/b.docx", entries[0].Path)
	require.Equal(t, "Export again", entries[0].Instruction)
	require.Equal(t, "word", entries[0].Format)
	require.Equal(t, int64(2048), entries[0].Size)
	require.Equal(t, base.Add(time.Minute).Unix(), entries[0].CreatedAt.Unix())
}

func TestRecentLimit(t *testing.T) {
	store := openTestStore(t)

	base := time.Now()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(artifactAt("/tmp/x.docx", base.Add(time.Duration(i)*time.Second)), "Export"))
	}

	entries, err := store.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestRecordNilArtifact(t *testing.T) {
	store := openTestStore(t)
	require.ErrorIs(t, store.Record(nil, "Export"), ErrDatabaseError)
}

func TestPrune(t *testing.T) {
	store := openTestStore(t)

	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now()
	require.NoError(t, store.Record(artifactAt("/tmp/old.docx", old), "old export"))
	require.NoError(t, store.Record(artifactAt("/tmp/new.docx", fresh), "new export"))

	n, err := store.Prune(time.Now().Add(-24 * time.Hour))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	count, err := store.Count()
	require.NoError(t, err)
	require.Equal(t, 1, count)

	entries, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "/tmp/new.docx", entries[0].Path)
}

func TestClosedStore(t *testing.T) {
	store := openTestStore(t)
	require.NoError(t, store.Close())

	require.ErrorIs(t, store.Record(artifactAt("/tmp/a.docx", time.Now()), "x"), ErrClosed)
	_, err := store.Recent(1)
	require.ErrorIs(t, err, ErrClosed)
	require.NoError(t, store.Close())
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	store, err := Open(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Record(artifactAt("/tmp/a.docx", time.Now()), "Export"))
}

// Exports record from TUI command goroutines while shutdown closes the
// store on the main one; concurrent Record and Close must not race, and
// records after close fail with ErrClosed rather than panic.
func TestConcurrentRecordAndClose(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)

	base := time.Now()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			// Losing the race to Close yields ErrClosed or a database
			// error from the closed handle; either way no panic.
			_ = store.Record(artifactAt(fmt.Sprintf("/tmp/race_%d.docx", n), base), "Export this")
		}(i)
	}
	require.NoError(t, store.Close())
	wg.Wait()

	require.ErrorIs(t, store.Record(artifactAt("/tmp/late.docx", base), "Export this"), ErrClosed)
	require.NoError(t, store.Close())
}
