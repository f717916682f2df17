package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/servicenow"
)

// PickupTagSysID identifies the "Ready for Pickup" label in the remote
// system. A ticket carrying it is retained regardless of age.
const PickupTagSysID = "0874ad561b6b9d147881db13dd4bcb96"

const (
	// closed_at comes back as a naive UTC timestamp.
	closedAtLayout = "2006-01-02 15:04:05"
	// Local rendition includes zone name and offset.
	localLayout = "2006-01-02 15:04:05 MST-0700"
	localZone   = "America/New_York"
)

// Fetcher assembles one TicketInfo per ticket from three remote lookups
// plus local folder resolution and size computation.
type Fetcher struct {
	Client *servicenow.Client
	Store  *backups.Store
	// GetSize toggles the recursive size walk; off by default because it
	// can dominate fetch time on large backups.
	GetSize bool

	loc *time.Location
	log *zap.Logger
	now func() time.Time
}

// NewFetcher builds a Fetcher. Fails only if the local zone database is
// missing America/New_York.
func NewFetcher(client *servicenow.Client, store *backups.Store, getSize bool, log *zap.Logger) (*Fetcher, error) {
	loc, err := time.LoadLocation(localZone)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", localZone, err)
	}
	return &Fetcher{
		Client:  client,
		Store:   store,
		GetSize: getSize,
		loc:     loc,
		log:     log,
		now:     time.Now,
	}, nil
}

// Fetch produces the TicketInfo for one ticket. A failure of the primary
// record lookup aborts the fetch; label and user lookups degrade to
// sentinel values, logged but not fatal.
func (f *Fetcher) Fetch(ctx context.Context, id backups.TicketID) (*TicketInfo, error) {
	f.log.Debug("loading ticket data", zap.String("ticket", string(id)))

	item, err := f.Client.GetRequestItemByNumber(ctx, string(id))
	if err != nil {
		return nil, err
	}

	hasTag := f.hasPickupTag(ctx, id)

	closedAtLocal := NotAvailable
	ready := false
	var closedAt time.Time
	if item.ClosedAt != "" {
		utc, parseErr := time.ParseInLocation(closedAtLayout, item.ClosedAt, time.UTC)
		if parseErr != nil {
			f.log.Error("unparseable closed_at", zap.String("ticket", string(id)), zap.String("closed_at", item.ClosedAt), zap.Error(parseErr))
		} else {
			closedAt = utc.In(f.loc)
			closedAtLocal = closedAt.Format(localLayout)
			ready = ReadyForDeletion(closedAt, hasTag, f.now().In(f.loc))
		}
	}

	username := NotAvailable
	if item.Closed() && item.ClosedBy.Value != "" {
		user, userErr := f.Client.GetUserBySysID(ctx, item.ClosedBy.Value)
		if userErr != nil {
			f.log.Error("resolving closing user", zap.String("ticket", string(id)), zap.Error(userErr))
		} else if user.UserName != "" {
			username = user.UserName
		}
	}

	size := ""
	if f.GetSize {
		f.log.Debug("computing backup size", zap.String("ticket", string(id)))
		size = f.folderSize(id)
	}

	folderName, ok := f.Store.ResolveAnywhere(id)
	if !ok {
		// Anomaly: the ticket was scanned from a folder name moments ago.
		f.log.Error("folder missing from both watched roots", zap.String("ticket", string(id)))
	}

	return &TicketInfo{
		TicketNumber:         id,
		FolderName:           folderName,
		SysID:                item.SysID,
		ClosedAtLocal:        closedAtLocal,
		ClosedByUsername:     username,
		HasReadyForPickupTag: hasTag,
		ReadyForDeletion:     ready,
		FolderSize:           size,
		URL:                  f.Client.TicketURL(item.SysID),
		ClosedAt:             closedAt,
	}, nil
}

// hasPickupTag checks the ticket's label entries for the pickup tag.
// Lookup failures degrade to false; the client already logged them.
func (f *Fetcher) hasPickupTag(ctx context.Context, id backups.TicketID) bool {
	entries, err := f.Client.GetLabelEntries(ctx, string(id))
	if err != nil {
		return false
	}
	for _, e := range entries {
		if e.Label.Value == PickupTagSysID {
			return true
		}
	}
	return false
}

// folderSize resolves the ticket's folder in the backups root and renders
// its recursive size. Failures degrade to the empty sentinel.
func (f *Fetcher) folderSize(id backups.TicketID) string {
	name, err := f.Store.FindFolder(f.Store.BackupsDir, id)
	if err != nil {
		f.log.Error("size: resolving folder", zap.String("ticket", string(id)), zap.Error(err))
		return ""
	}
	n, err := f.Store.FolderSize(f.Store.BackupsDir, name)
	if err != nil {
		f.log.Error("size: walking folder", zap.String("folder", name), zap.Error(err))
		return ""
	}
	return backups.HumanReadableSize(n)
}
