package notes

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestAppendWritesTimestampedBlocks(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/home/u/Desktop/voice_note.txt")
	clock := time.Date(2026, 3, 14, 9, 26, 53, 589793000, time.Local)
	store.now = func() time.Time { return clock }

	require.NoError(t, store.Append([]string{"купить молоко", "позвонить маме"}))
	clock = clock.Add(time.Minute)
	require.NoError(t, store.Append([]string{"вторая"}))

	data, err := afero.ReadFile(fs, store.Path())
	require.NoError(t, err)
	require.Equal(t,
		"2026-03-14 09:26:53.589793\nкупить молоко\nпозвонить маме\n\n"+
			"2026-03-14 09:27:53.589793\nвторая\n\n",
		string(data))
}

func TestAppendEmptyNote(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := NewStore(fs, "/notes.txt")

	require.ErrorIs(t, store.Append(nil), ErrEmptyNote)
	exists, err := afero.Exists(fs, "/notes.txt")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestAppendReadOnlyFilesystemFails(t *testing.T) {
	store := NewStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/x/notes.txt")
	require.Error(t, store.Append([]string{"line"}))
}
