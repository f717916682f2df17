package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/debug"
)

var stageReady bool

var stageCmd = &cobra.Command{
	Use:   "stage [TKT...]",
	Short: "Move backup folders into the deletion staging directory",
	Long: `Moves the named tickets' folders from the backups directory into the
staging-for-deletion directory. With --ready, stages every folder whose
ticket is currently ready for deletion instead of naming tickets.

Each move is independent; a failure on one ticket does not abort the
rest, and there is no rollback.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if stageReady && len(args) > 0 {
			return fmt.Errorf("name tickets to stage or pass --ready, not both")
		}
		if !stageReady && len(args) == 0 {
			return fmt.Errorf("nothing to stage: name tickets or pass --ready")
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.close()

		var ids []backups.TicketID
		if stageReady {
			infos, err := fetchAll(cmd, app, app.cfg.BackupsLocation)
			if err != nil {
				return err
			}
			for _, info := range infos {
				if info.ReadyForDeletion {
					ids = append(ids, info.TicketNumber)
				}
			}
			if len(ids) == 0 {
				debug.PrintlnNormal("Nothing is ready for deletion.")
				return nil
			}
		} else {
			for _, arg := range args {
				id, ok := backups.ExtractTicketID(arg)
				if !ok {
					return fmt.Errorf("%q does not contain a ticket number", arg)
				}
				ids = append(ids, id)
			}
		}

		results := app.store.MoveToStaging(ids)
		failures := 0
		for _, r := range results {
			if r.Err != nil {
				failures++
				color.Red("✗ %s: %v", r.Ticket, r.Err)
				continue
			}
			debug.PrintNormal("✓ staged %s (%s)\n", r.Ticket, r.Folder)
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d moves failed", failures, len(results))
		}
		return nil
	},
}

func init() {
	stageCmd.Flags().BoolVar(&stageReady, "ready", false, "Stage every backup currently ready for deletion")
	rootCmd.AddCommand(stageCmd)
}
