package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
)

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [FILE]",
		Short: "Check a host config for structural errors",
		Long: `Check a host config for structural errors. Every problem found is
reported. With a passphrase the device bundle is also unlocked.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}
			if passphrase != "" {
				if _, err := wire.Inspect.HoloportPublicKey(cmd.Context(), cfg, passphraseBytes()); err != nil {
					return fmt.Errorf("device bundle: %w", err)
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s config is valid\n", cfg.Version())
			return nil
		},
	}
}
