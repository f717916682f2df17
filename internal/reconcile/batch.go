package reconcile

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/servicenow"
)

// ErrAuthenticationFailed tells the caller to re-collect credentials.
// Raised when any individual fetch fails with an auth status, or when
// every fetch in the batch failed (the inherited heuristic: a batch where
// nothing loads is treated as a bad login).
var ErrAuthenticationFailed = errors.New("authentication failed")

// DefaultWorkers bounds the concurrent fetch pool when no configuration
// is given.
const DefaultWorkers = 8

// Orchestrator fans TicketInfo fetches out over a bounded worker pool and
// aggregates the outcomes. Callers observe only the fully-aggregated list
// or a batch-level failure; there is no partial streaming.
type Orchestrator struct {
	Fetcher *Fetcher
	Workers int

	// OnFetched, when set, observes each successfully fetched ticket.
	// Observational only, not part of the result contract.
	OnFetched func(id backups.TicketID)

	log *zap.Logger
}

// NewOrchestrator builds an Orchestrator around a Fetcher.
func NewOrchestrator(f *Fetcher, workers int, log *zap.Logger) *Orchestrator {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Orchestrator{Fetcher: f, Workers: workers, log: log}
}

type outcome struct {
	info *TicketInfo
	err  error
}

// FetchAll enumerates ticket identifiers in dir and fetches each one
// exactly once, concurrently. Individual failures are logged and omitted
// from the result; a batch where everything failed, or where any failure
// carries an authentication status, returns ErrAuthenticationFailed.
func (o *Orchestrator) FetchAll(ctx context.Context, dir string) ([]TicketInfo, error) {
	ids, err := o.Fetcher.Store.Scan(dir)
	if err != nil {
		return nil, err
	}
	ids = dedupe(ids)
	if len(ids) == 0 {
		return nil, nil
	}

	outcomes := make([]outcome, len(ids))
	g := &errgroup.Group{}
	g.SetLimit(o.Workers)
	for i, id := range ids {
		g.Go(func() error {
			info, fetchErr := o.Fetcher.Fetch(ctx, id)
			outcomes[i] = outcome{info: info, err: fetchErr}
			if fetchErr == nil && o.OnFetched != nil {
				o.OnFetched(id)
			}
			return nil
		})
	}
	_ = g.Wait() // workers report through outcomes, never through the group

	infos := make([]TicketInfo, 0, len(ids))
	for i, out := range outcomes {
		if out.err != nil {
			o.log.Error("ticket fetch failed", zap.String("ticket", string(ids[i])), zap.Error(out.err))
			var statusErr *servicenow.StatusError
			if errors.As(out.err, &statusErr) && statusErr.IsAuth() {
				return nil, fmt.Errorf("ticket %s: %w", ids[i], ErrAuthenticationFailed)
			}
			continue
		}
		infos = append(infos, *out.info)
	}

	if len(infos) == 0 {
		return nil, ErrAuthenticationFailed
	}
	return infos, nil
}

// dedupe keeps the first occurrence of each id. Two differently-named
// folders can embed the same ticket; each ticket is fetched at most once
// per batch.
func dedupe(ids []backups.TicketID) []backups.TicketID {
	seen := make(map[backups.TicketID]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
