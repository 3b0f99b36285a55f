package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"assetassist/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration utilities",
	}

	configCmd.AddCommand(newConfigInitCommand())
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a sample configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			target := strings.TrimSpace(targetPath)
			if target == "" {
				target = filepath.Join("config", "config.yml")
			}
			expanded, err := config.ExpandPath(target)
			if err != nil {
				return fmt.Errorf("resolve config path: %w", err)
			}
			target = expanded

			if !overwrite {
				if _, err := os.Stat(target); err == nil {
					return fmt.Errorf("config file already exists at %s (use --overwrite to replace it)", target)
				} else if !os.IsNotExist(err) {
					return fmt.Errorf("check config path: %w", err)
				}
			}

			if err := config.CreateSample(target); err != nil {
				return fmt.Errorf("create sample config: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote sample configuration to %s\n", target)
			fmt.Fprintln(out, "Edit the file to point process and library directories at your media before running.")
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing configuration if present")
	return cmd
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rows := [][]string{
				{"process", cfg.ProcessDir},
				{"movies", orUnset(cfg.MoviesDir)},
				{"shows", orUnset(cfg.ShowsDir)},
				{"collections", orUnset(cfg.CollectionsDir)},
				{"failed", cfg.FailedDir},
				{"backup", orUnset(cfg.BackupDir)},
				{"logs", orUnset(cfg.LogDir)},
				{"service", orUnset(cfg.Service)},
				{"plex_specials", plexSpecialsLabel(cfg.PlexSpecials)},
				{"enable_backup_source", yesNo(cfg.BackupSource)},
				{"enable_backup_destination", yesNo(cfg.BackupDestination)},
				{"compress_images", yesNo(cfg.CompressImages)},
				{"image_quality", fmt.Sprintf("%d", cfg.ImageQuality)},
				{"discord_webhook", configuredLabel(cfg.DiscordWebhook)},
				{"log_level", cfg.LogLevel},
				{"log_format", cfg.LogFormat},
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Setting", "Value"},
				rows,
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func orUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(unset)"
	}
	return value
}

func plexSpecialsLabel(value *bool) string {
	if value == nil {
		return "(unset)"
	}
	return yesNo(*value)
}

// configuredLabel hides secrets while showing whether they are present.
func configuredLabel(value string) string {
	if strings.TrimSpace(value) == "" {
		return "(unset)"
	}
	return "(configured)"
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
