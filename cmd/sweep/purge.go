package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/debug"
)

var purgeAll bool

var purgeCmd = &cobra.Command{
	Use:   "purge [TKT...]",
	Short: "Permanently delete staged backup folders",
	Long: `Permanently deletes folders from the staging-for-deletion directory.
Name tickets to purge, or pass --all to purge every staged folder.

Deletion is irreversible; there is no trash or undo. Every successful
deletion is recorded in the daily audit log.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if purgeAll && len(args) > 0 {
			return fmt.Errorf("name tickets to purge or pass --all, not both")
		}
		if !purgeAll && len(args) == 0 {
			return fmt.Errorf("nothing to purge: name tickets or pass --all")
		}

		app, err := newAppContext()
		if err != nil {
			return err
		}
		defer app.close()

		folders, err := purgeTargets(app, args)
		if err != nil {
			return err
		}
		if len(folders) == 0 {
			debug.PrintlnNormal("Nothing staged for deletion.")
			return nil
		}

		if !yesFlag {
			if !isInteractive() {
				return fmt.Errorf("refusing to purge without confirmation; pass --yes")
			}
			confirmed, err := confirmPurge(len(folders))
			if err != nil {
				return err
			}
			if !confirmed {
				debug.PrintlnNormal("Aborted.")
				return nil
			}
		}

		app.store.OnDeleted = func(folder string) {
			debug.PrintNormal("Deleting %s...\n", folder)
		}

		failures := 0
		for _, folder := range folders {
			if err := app.store.PermanentlyDelete(folder); err != nil {
				failures++
				color.Red("✗ %s: %v", folder, err)
			}
		}
		if failures > 0 {
			return fmt.Errorf("%d of %d deletions failed", failures, len(folders))
		}
		debug.PrintNormal("Permanently deleted %d folder(s).\n", len(folders))
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeAll, "all", false, "Purge every folder in the staging directory")
	purgeCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(purgeCmd)
}

// purgeTargets resolves the folders to delete. Ticket arguments resolve
// against the staging directory only; a ticket with no staged folder is
// an error before anything is removed.
func purgeTargets(app *appContext, args []string) ([]string, error) {
	if purgeAll {
		ids, err := app.store.Scan(app.cfg.DeletionLocation)
		if err != nil {
			return nil, err
		}
		var folders []string
		seen := map[string]bool{}
		for _, id := range ids {
			if name, ok := app.store.Resolve(app.cfg.DeletionLocation, id); ok && !seen[name] {
				seen[name] = true
				folders = append(folders, name)
			}
		}
		return folders, nil
	}

	var folders []string
	for _, arg := range args {
		id, ok := backups.ExtractTicketID(arg)
		if !ok {
			return nil, fmt.Errorf("%q does not contain a ticket number", arg)
		}
		name, err := app.store.FindFolder(app.cfg.DeletionLocation, id)
		if err != nil {
			return nil, err
		}
		folders = append(folders, name)
	}
	return folders, nil
}

func confirmPurge(count int) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Permanently delete %d folder(s)?", count)).
				Description("This cannot be undone.").
				Affirmative("Delete").
				Negative("Cancel").
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
