package fs

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	require.NoError(t, WriteFileAtomic(Default, path, []byte("v1"), 0o644))
	data, err := ReadFile(Default, path)
	require.NoError(t, err)
	assert.Equal(t, "v1", string(data))

	require.NoError(t, WriteFileAtomic(Default, path, []byte("v2"), 0o644))
	data, err = ReadFile(Default, path)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	assertOnlyFile(t, dir, "snapshot.json")
}

func assertOnlyFile(t *testing.T, dir, name string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, name, entries[0].Name())
}

func TestWriteFileAtomic_ConcurrentWriters(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "snapshot.json")

	payloads := []string{"first writer payload", "second writer payload"}

	var wg sync.WaitGroup
	errs := make(chan error, 2*50)
	for _, p := range payloads {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				errs <- WriteFileAtomic(Default, path, []byte(p), 0o644)
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	data, err := ReadFile(Default, path)
	require.NoError(t, err)
	assert.Contains(t, payloads, string(data))
	assertOnlyFile(t, dir, "snapshot.json")
}

func TestWriteFileAtomic_Faults(t *testing.T) {
	tests := []struct {
		name  string
		fault Fault
	}{
		{name: "Write", fault: Fault{FailAfterBytes: 3}},
		{name: "Sync", fault: Fault{FailAfterBytes: -1, FailOnSync: true}},
		{name: "Close", fault: Fault{FailAfterBytes: -1, FailOnClose: true}},
		{name: "Rename", fault: Fault{FailAfterBytes: -1, FailOnRename: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "snapshot.json")
			require.NoError(t, WriteFileAtomic(Default, path, []byte("old"), 0o644))

			ffs := NewFaultyFS(nil)
			ffs.AddRule(TempSuffix, tt.fault)

			err := WriteFileAtomic(ffs, path, []byte("new content"), 0o644)
			require.ErrorIs(t, err, ErrInjected)

			data, err := ReadFile(Default, path)
			require.NoError(t, err)
			assert.Equal(t, "old", string(data), "previous content must survive")

			assertOnlyFile(t, dir, "snapshot.json")
		})
	}
}

func TestFaultyFS_PassThrough(t *testing.T) {
	dir := t.TempDir()
	ffs := NewFaultyFS(nil)
	ffs.AddRule("never-matches", Fault{FailAfterBytes: 0})

	path := filepath.Join(dir, "a.txt")
	require.NoError(t, WriteFileAtomic(ffs, path, []byte("hello"), 0o644))

	info, err := ffs.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())

	entries, err := ffs.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)

	require.NoError(t, ffs.Remove(path))
	_, err = ffs.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
