package reconcile

import "time"

// GracePeriod is how long a closed ticket's backup is retained before it
// becomes eligible for deletion.
const GracePeriod = 14 * 24 * time.Hour

// ReadyForDeletion reports whether a backup is eligible for deletion: the
// ticket is closed, the close time is strictly older than the grace
// period, and no pickup tag is present. Exactly GracePeriod old is not
// stale. Pure; the caller supplies now.
func ReadyForDeletion(closedAt time.Time, hasPickupTag bool, now time.Time) bool {
	if closedAt.IsZero() || hasPickupTag {
		return false
	}
	return now.Sub(closedAt) > GracePeriod
}
