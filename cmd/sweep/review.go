package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/debug"
	"github.com/mwheeler/stalesweep/internal/reconcile"
	"github.com/mwheeler/stalesweep/internal/servicenow"
)

// loginAttempts bounds interactive re-prompts after a failed login.
const loginAttempts = 3

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Reconcile live backup folders against ticket status",
	Long: `Scans the backups directory for folders with embedded ticket numbers,
fetches each ticket's status, and shows which backups are stale: closed
longer ago than the 14-day grace period and not tagged Ready for Pickup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.close()
		return runReconcileView(cmd, app, app.cfg.BackupsLocation)
	},
}

var stagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Reconcile folders already staged for deletion",
	Long:  `Like review, but over the staging-for-deletion directory.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.close()
		return runReconcileView(cmd, app, app.cfg.DeletionLocation)
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(stagedCmd)
}

// runReconcileView fetches all ticket records for dir and renders them.
// On a batch-level authentication failure the operator is returned to the
// login form, up to loginAttempts times.
func runReconcileView(cmd *cobra.Command, app *appContext, dir string) error {
	infos, err := fetchAll(cmd, app, dir)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputJSON(infos)
	}
	if len(infos) == 0 {
		debug.PrintNormal("No ticket folders found in %s\n", dir)
		return nil
	}
	fmt.Print(renderTicketTable(infos))
	debug.PrintNormal("%s", summarize(infos))
	return nil
}

// fetchAll runs the batch fetch with the credential re-prompt loop.
func fetchAll(cmd *cobra.Command, app *appContext, dir string) ([]reconcile.TicketInfo, error) {
	creds, err := resolveCredentials(app.cfg)
	if err != nil {
		return nil, err
	}

	for attempt := 1; ; attempt++ {
		infos, err := fetchOnce(cmd, app, creds, dir)
		if err == nil {
			return infos, nil
		}
		if !errors.Is(err, reconcile.ErrAuthenticationFailed) {
			return nil, err
		}
		color.Red("Failed login.")
		if !isInteractive() || attempt >= loginAttempts {
			return nil, err
		}
		creds, err = promptCredentials(creds.Username)
		if err != nil {
			return nil, err
		}
	}
}

func fetchOnce(cmd *cobra.Command, app *appContext, creds servicenow.Credentials, dir string) ([]reconcile.TicketInfo, error) {
	client := servicenow.NewClient(app.cfg.Instance, creds, app.timeout(), app.logger)
	fetcher, err := reconcile.NewFetcher(client, app.store, app.cfg.GetSize, app.logger)
	if err != nil {
		return nil, err
	}
	orch := reconcile.NewOrchestrator(fetcher, app.cfg.FetchWorkers, app.logger)
	orch.OnFetched = func(id backups.TicketID) {
		debug.PrintNormal("Loaded %s...\n", id)
	}
	return orch.FetchAll(cmd.Context(), dir)
}
