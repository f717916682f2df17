package backups

import (
	"bufio"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mwheeler/stalesweep/internal/audit"
)

func TestPermanentlyDelete(t *testing.T) {
	logDir := t.TempDir()
	s := NewStore(t.TempDir(), t.TempDir(), audit.New(logDir), zap.NewNop())
	mkdirs(t, s.DeletionDir, "Widget_TKT0001234")
	require.NoError(t, os.WriteFile(filepath.Join(s.DeletionDir, "Widget_TKT0001234", "data.bin"), []byte("x"), 0600))

	var deleted []string
	s.OnDeleted = func(folder string) { deleted = append(deleted, folder) }

	require.NoError(t, s.PermanentlyDelete("Widget_TKT0001234"))

	_, err := os.Stat(filepath.Join(s.DeletionDir, "Widget_TKT0001234"))
	assert.True(t, os.IsNotExist(err))
	assert.Equal(t, []string{"Widget_TKT0001234"}, deleted)

	// Exactly one audit line per successful deletion.
	f, err := os.Open(filepath.Join(logDir, audit.FileName(time.Now())))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	lines := 0
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines++
	}
	require.NoError(t, sc.Err())
	assert.Equal(t, 1, lines)
}

func TestPermanentlyDeleteMissingFolder(t *testing.T) {
	s := testStore(t)
	err := s.PermanentlyDelete("does_not_exist")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPermanentlyDeleteNotADirectory(t *testing.T) {
	s := testStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(s.DeletionDir, "plainfile"), []byte("x"), 0600))

	err := s.PermanentlyDelete("plainfile")
	require.ErrorIs(t, err, ErrNotDirectory)

	// The file is untouched.
	_, statErr := os.Stat(filepath.Join(s.DeletionDir, "plainfile"))
	assert.NoError(t, statErr)
}

func TestPermanentlyDeleteEmptyDirectory(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.DeletionDir, "empty_TKT0001111")

	require.NoError(t, s.PermanentlyDelete("empty_TKT0001111"))
	_, err := os.Stat(filepath.Join(s.DeletionDir, "empty_TKT0001111"))
	assert.True(t, os.IsNotExist(err))
}
