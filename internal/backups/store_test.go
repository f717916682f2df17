package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func mkdirs(t *testing.T, root string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.MkdirAll(filepath.Join(root, name), 0750))
	}
}

func testStore(t *testing.T) *Store {
	t.Helper()
	backupsDir := t.TempDir()
	deletionDir := t.TempDir()
	return NewStore(backupsDir, deletionDir, nil, zap.NewNop())
}

func TestExtractTicketID(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want TicketID
		ok   bool
	}{
		{"embedded", "Widget_TKT0001234", "TKT0001234", true},
		{"no match", "no_ticket_here", "", false},
		{"too few digits", "TKT123456", "", false},
		{"first of multiple", "TKT0001111_then_TKT0002222", "TKT0001111", true},
		{"eight digits still matches first seven", "TKT12345678", "TKT1234567", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractTicketID(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "Widget_TKT0001234", "no_ticket_here", "Order_TKT0009999")
	// Plain files are never scanned, only directories.
	require.NoError(t, os.WriteFile(filepath.Join(s.BackupsDir, "TKT0005555.txt"), []byte("x"), 0600))

	ids, err := s.Scan(s.BackupsDir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []TicketID{"TKT0001234", "TKT0009999"}, ids)
}

func TestScanMissingDirectory(t *testing.T) {
	s := testStore(t)
	_, err := s.Scan(filepath.Join(s.BackupsDir, "nope"))
	require.Error(t, err)
}

func TestResolve(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "Widget_TKT0001234", "no_ticket_here", "Order_TKT0009999")

	name, ok := s.Resolve(s.BackupsDir, "TKT0009999")
	require.True(t, ok)
	assert.Equal(t, "Order_TKT0009999", name)

	_, ok = s.Resolve(s.BackupsDir, "TKT0000000")
	assert.False(t, ok)
}

func TestFindFolderNotFound(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "Widget_TKT0001234")

	_, err := s.FindFolder(s.BackupsDir, "TKT7777777")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveAnywherePrefersBackups(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "live_TKT0001234")
	mkdirs(t, s.DeletionDir, "staged_TKT0001234", "staged_TKT0002222")

	name, ok := s.ResolveAnywhere("TKT0001234")
	require.True(t, ok)
	assert.Equal(t, "live_TKT0001234", name)

	name, ok = s.ResolveAnywhere("TKT0002222")
	require.True(t, ok)
	assert.Equal(t, "staged_TKT0002222", name)

	_, ok = s.ResolveAnywhere("TKT0003333")
	assert.False(t, ok)
}
