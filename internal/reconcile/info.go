// Package reconcile decides, per backup folder, whether its ticket is
// stale and ready for deletion. It correlates folder names with ticket
// records fetched from the ticketing API and aggregates concurrent
// fetches into an all-or-nothing batch.
package reconcile

import (
	"time"

	"github.com/mwheeler/stalesweep/internal/backups"
)

// NotAvailable is the sentinel for "not closed" timestamps and unknown
// closing users.
const NotAvailable = "N/A"

// TicketInfo is the record produced per ticket. Rebuilt fresh on every
// batch fetch, held in memory for one display cycle, never persisted.
type TicketInfo struct {
	TicketNumber         backups.TicketID `json:"ticket_number"`
	FolderName           string           `json:"folder_name"`
	SysID                string           `json:"sys_id"`
	ClosedAtLocal        string           `json:"closed_at_local"`
	ClosedByUsername     string           `json:"closed_by_username"`
	HasReadyForPickupTag bool             `json:"has_ready_for_pickup_tag"`
	ReadyForDeletion     bool             `json:"ready_for_deletion"`
	FolderSize           string           `json:"folder_size,omitempty"`
	URL                  string           `json:"url"`

	// ClosedAt is the parsed local close time, zero when not closed.
	// Kept for display (relative age); ClosedAtLocal is the formatted form.
	ClosedAt time.Time `json:"-"`
}
