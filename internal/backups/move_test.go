package backups

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveToStaging(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "Widget_TKT0001234", "Order_TKT0009999")

	results := s.MoveToStaging([]TicketID{"TKT0001234", "TKT0009999"})
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NoError(t, r.Err, "ticket %s", r.Ticket)
	}

	// Folders moved, originals gone.
	_, err := os.Stat(filepath.Join(s.DeletionDir, "Widget_TKT0001234"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(s.BackupsDir, "Widget_TKT0001234"))
	assert.True(t, os.IsNotExist(err))
}

func TestMoveToStagingPartialFailure(t *testing.T) {
	s := testStore(t)
	mkdirs(t, s.BackupsDir, "Order_TKT0009999")

	// First ticket has no folder; the second must still move.
	results := s.MoveToStaging([]TicketID{"TKT0001234", "TKT0009999"})
	require.Len(t, results, 2)

	assert.ErrorIs(t, results[0].Err, ErrNotFound)
	assert.NoError(t, results[1].Err)

	_, err := os.Stat(filepath.Join(s.DeletionDir, "Order_TKT0009999"))
	assert.NoError(t, err)
}
