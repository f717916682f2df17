package backups

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mwheeler/stalesweep/internal/audit"
)

// ErrNotDirectory reports that the purge target exists but is not a
// directory; only directories are ever removed.
var ErrNotDirectory = errors.New("not a directory")

// PermanentlyDelete recursively removes folderName from the deletion
// staging root. Absent or non-directory targets are explicit negative
// results, never panics. Each successful removal appends one audit line.
// This operation is irreversible.
func (s *Store) PermanentlyDelete(folderName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := filepath.Join(s.DeletionDir, folderName)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug("purge target does not exist", zap.String("folder", folderName))
			return fmt.Errorf("folder %s: %w", folderName, ErrNotFound)
		}
		s.log.Error("purge stat failed", zap.String("folder", folderName), zap.Error(err))
		return fmt.Errorf("stat %s: %w", folderName, err)
	}
	if !info.IsDir() {
		s.log.Debug("purge target is not a directory", zap.String("path", path))
		return fmt.Errorf("%s: %w", folderName, ErrNotDirectory)
	}

	if err := os.RemoveAll(path); err != nil {
		s.log.Error("purge failed", zap.String("folder", folderName), zap.Error(err))
		return fmt.Errorf("removing %s: %w", folderName, err)
	}

	s.log.Debug("removed directory", zap.String("folder", folderName))
	if s.trail != nil {
		id, _ := ExtractTicketID(folderName)
		if err := s.trail.Append(audit.Entry{Ticket: string(id), Folder: folderName}); err != nil {
			s.log.Error("audit append failed", zap.String("folder", folderName), zap.Error(err))
		}
	}
	if s.OnDeleted != nil {
		s.OnDeleted(folderName)
	}
	return nil
}
