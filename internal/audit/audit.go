// Package audit records permanent-deletion events.
//
// The trail is append-only and line-oriented, one file per calendar day
// (deleted_backups_YYYY_MM_DD.log). Deletions are irreversible, so this log
// is the only record of what was removed and when.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Entry is one deletion event.
type Entry struct {
	Ticket string
	Folder string
}

// Trail appends deletion entries under Dir.
type Trail struct {
	Dir string

	// now is swappable for tests.
	now func() time.Time
}

// New returns a Trail writing into dir ("." when empty).
func New(dir string) *Trail {
	if dir == "" {
		dir = "."
	}
	return &Trail{Dir: dir, now: time.Now}
}

// FileName returns the audit file name for the given day.
func FileName(t time.Time) string {
	return fmt.Sprintf("deleted_backups_%s.log", t.Format("2006_01_02"))
}

// Append writes one timestamped line for the entry. The file for the
// current day is created on first use.
func (tr *Trail) Append(e Entry) error {
	now := tr.now()
	path := filepath.Join(tr.Dir, FileName(now))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600) // #nosec G304 - path from config
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s Permanently deleted backed up folder: %s (ticket %s)\n",
		now.Format("2006-01-02 15:04:05"), e.Folder, e.Ticket)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	return nil
}
