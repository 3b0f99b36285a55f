package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"assetassist/internal/logging"
	"assetassist/internal/notifications"
	"assetassist/internal/runner"
)

func runProcess(cmd *cobra.Command, ctx *commandContext, dryRun bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}

	logger, cleanup, err := newLogger(cfg, !dryRun)
	if err != nil {
		return err
	}
	defer cleanup()

	logger.Info("asset assistant starting",
		logging.String("version", appVersion),
		logging.String("service", cfg.Service),
		logging.Bool("dry_run", dryRun))

	notifier := notifications.NewService(cfg, appVersion)
	summary, err := runner.New(cfg, notifier, logging.WithComponent(logger, "runner"), dryRun).Run(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(
		[]string{"Summary", ""},
		summary.Rows(),
		[]columnAlignment{alignLeft, alignRight},
	))
	fmt.Fprintln(out, renderResultLine(summary, shouldColorize(out)))
	return nil
}
