package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mwheeler/stalesweep/internal/audit"
	"github.com/mwheeler/stalesweep/internal/backups"
	"github.com/mwheeler/stalesweep/internal/config"
	"github.com/mwheeler/stalesweep/internal/debug"
	"github.com/mwheeler/stalesweep/internal/logging"
)

var (
	configDir   string
	userFlag    string
	passwordEnv = "STALESWEEP_PASSWORD"
	jsonOutput  bool
	verboseFlag bool
	quietFlag   bool
	yesFlag     bool
)

// appContext carries the long-lived collaborators every command needs.
// Constructed once per invocation and passed explicitly; no globals
// beyond the cobra wiring itself.
type appContext struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *backups.Store
}

func newAppContext() (*appContext, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogDir)
	if err != nil {
		return nil, err
	}
	trail := audit.New(cfg.LogDir)
	store := backups.NewStore(cfg.BackupsLocation, cfg.DeletionLocation, trail, logger)
	return &appContext{cfg: cfg, logger: logger, store: store}, nil
}

func (app *appContext) close() {
	_ = app.logger.Sync()
}

func (app *appContext) timeout() time.Duration {
	return time.Duration(app.cfg.HTTPTimeoutSeconds) * time.Second
}

var rootCmd = &cobra.Command{
	Use:   "sweep",
	Short: "sweep - reconcile backup folders against ticket status",
	Long: `Reconciles local backup folders (named with embedded TKT numbers) against
ticket status in the remote ticketing system, stages stale backups for
deletion, and permanently deletes staged folders with an audit trail.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		debug.SetVerbose(verboseFlag)
		debug.SetQuiet(quietFlag)
		if err := config.Initialize(configDir); err != nil {
			return err
		}
		if debug.Enabled() {
			debug.Logf("config file: %s\n", config.ConfigFileUsed())
		}
		return nil
	},
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "Directory holding config.yaml (default: ., ~/.stalesweep)")
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "Ticketing system username (default: config/STALESWEEP_USERNAME, or prompt)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose/debug output")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "Suppress non-essential output (errors only)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
