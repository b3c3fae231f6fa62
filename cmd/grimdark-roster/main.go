// Command grimdark-roster imports BattleScribe / New Recruit roster exports,
// normalizes them and keeps the current roster for display and export.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/MarshallMM/GrimDarkRoster/internal/app"
	"github.com/MarshallMM/GrimDarkRoster/internal/config"
	"github.com/MarshallMM/GrimDarkRoster/internal/logging"
	"github.com/MarshallMM/GrimDarkRoster/internal/store"
)

// env is shared by every subcommand; it is filled in by the root
// PersistentPreRunE.
type env struct {
	configPath string
	cfg        *config.Config
	log        *zap.Logger
}

// openService builds the service and returns a closer for its store.
func (e *env) openService() (*app.Service, func(), error) {
	svc, st, err := app.Open(e.cfg, e.log)
	if err != nil {
		return nil, nil, err
	}
	return svc, func() { closeStore(st, e.log) }, nil
}

func closeStore(st *store.Store, log *zap.Logger) {
	if err := st.Close(); err != nil {
		log.Warn("store close", zap.Error(err))
	}
}

func newRootCmd() *cobra.Command {
	e := &env{}

	cmd := &cobra.Command{
		Use:           "grimdark-roster",
		Short:         "Normalize and keep Warhammer 40k army rosters",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(e.configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.Log)
			if err != nil {
				return err
			}
			e.cfg, e.log = cfg, log
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.log != nil {
				_ = e.log.Sync()
			}
		},
	}
	cmd.PersistentFlags().StringVar(&e.configPath, "config", "", "YAML config file (default $GDR_CONFIG or ./grimdark.yaml)")

	cmd.AddCommand(
		newImportCmd(e),
		newShowCmd(e),
		newClearCmd(e),
		newExportCmd(e),
		newBuildReferenceCmd(e),
	)
	return cmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
