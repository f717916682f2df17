package backups

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"go.uber.org/zap"
)

// MoveResult is the per-ticket outcome of a staging move.
type MoveResult struct {
	Ticket TicketID
	Folder string
	Err    error
}

// MoveToStaging moves each ticket's folder from the backups root into the
// deletion staging root. Each move is independent: an I/O failure on one
// ticket is logged and does not abort the rest, and a partial batch is
// left as-is (no rollback).
func (s *Store) MoveToStaging(ids []TicketID) []MoveResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	results := make([]MoveResult, 0, len(ids))
	for _, id := range ids {
		res := MoveResult{Ticket: id}

		name, ok := s.resolveLocked(s.BackupsDir, id)
		if !ok {
			res.Err = ErrNotFound
			s.log.Error("staging move: folder not found", zap.String("ticket", string(id)))
			results = append(results, res)
			continue
		}
		res.Folder = name

		from := filepath.Join(s.BackupsDir, name)
		to := filepath.Join(s.DeletionDir, name)
		if err := renameWithRetry(from, to, 3, 100*time.Millisecond); err != nil {
			res.Err = err
			s.log.Error("staging move failed", zap.String("folder", name), zap.Error(err))
		} else {
			s.log.Debug("moved folder to deletion staging", zap.String("folder", name))
		}
		results = append(results, res)
	}
	return results
}

// renameWithRetry performs the move with retries on Windows, where a
// rename can fail with "Access is denied" while a scanner or indexer
// holds a handle on the folder. Elsewhere the first error is final.
func renameWithRetry(oldPath, newPath string, maxRetries int, initialDelay time.Duration) error {
	var lastErr error
	delay := initialDelay

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := os.Rename(oldPath, newPath)
		if err == nil {
			return nil
		}
		lastErr = err

		if runtime.GOOS != "windows" {
			break
		}
		if attempt < maxRetries {
			time.Sleep(delay)
			delay *= 2
		}
	}
	return fmt.Errorf("rename %s: %w", filepath.Base(oldPath), lastErr)
}
