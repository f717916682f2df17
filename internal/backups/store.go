// Package backups manages the two watched directories: the live backups
// root and the staging-for-deletion root. It owns folder discovery by
// ticket pattern, moves between the two roots, and permanent deletion with
// an audit trail.
package backups

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/mwheeler/stalesweep/internal/audit"
)

// TicketID is a ticket identifier embedded in folder names: the literal
// prefix "TKT" followed by exactly 7 decimal digits.
type TicketID string

var ticketPattern = regexp.MustCompile(`TKT\d{7}`)

// ExtractTicketID returns the first ticket identifier embedded in name.
func ExtractTicketID(name string) (TicketID, bool) {
	m := ticketPattern.FindString(name)
	if m == "" {
		return "", false
	}
	return TicketID(m), true
}

// ErrNotFound reports that no folder matched a ticket in the scanned root.
var ErrNotFound = errors.New("no matching folder")

// Store coordinates access to the watched directories. Moves and deletes
// take the write lock so a folder is never listed mid-move by a concurrent
// scan or size walk.
type Store struct {
	BackupsDir  string
	DeletionDir string

	// OnDeleted, when set, observes each successful permanent deletion.
	OnDeleted func(folder string)

	trail *audit.Trail
	log   *zap.Logger
	mu    sync.RWMutex
}

// NewStore returns a Store over the two watched roots. trail may be nil
// when no audit log is wanted (tests); log must not be nil.
func NewStore(backupsDir, deletionDir string, trail *audit.Trail, log *zap.Logger) *Store {
	return &Store{
		BackupsDir:  backupsDir,
		DeletionDir: deletionDir,
		trail:       trail,
		log:         log,
	}
}

// listDirs returns the names of the immediate subdirectories of dir.
func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// Scan lists the immediate subdirectories of dir and extracts the first
// embedded ticket identifier from each name. Folders without a match are
// silently skipped. Order follows the directory listing and carries no
// meaning.
func (s *Store) Scan(dir string) ([]TicketID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names, err := listDirs(dir)
	if err != nil {
		return nil, err
	}
	var ids []TicketID
	for _, name := range names {
		if id, ok := ExtractTicketID(name); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

// Resolve returns the first subdirectory of dir whose name contains id.
func (s *Store) Resolve(dir string, id TicketID) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.resolveLocked(dir, id)
}

func (s *Store) resolveLocked(dir string, id TicketID) (string, bool) {
	names, err := listDirs(dir)
	if err != nil {
		s.log.Error("resolving folder", zap.String("dir", dir), zap.String("ticket", string(id)), zap.Error(err))
		return "", false
	}
	for _, name := range names {
		if containsTicket(name, id) {
			return name, true
		}
	}
	return "", false
}

// FindFolder is Resolve with an explicit error when nothing matches.
func (s *Store) FindFolder(dir string, id TicketID) (string, error) {
	if name, ok := s.Resolve(dir, id); ok {
		return name, nil
	}
	return "", fmt.Errorf("ticket %s in %s: %w", id, dir, ErrNotFound)
}

// ResolveAnywhere looks for the ticket's folder in the backups root first,
// then the deletion staging root. Total absence is an anomaly the caller
// surfaces, not a crash.
func (s *Store) ResolveAnywhere(id TicketID) (string, bool) {
	if name, ok := s.Resolve(s.BackupsDir, id); ok {
		return name, true
	}
	return s.Resolve(s.DeletionDir, id)
}

func containsTicket(name string, id TicketID) bool {
	return id != "" && strings.Contains(name, string(id))
}
