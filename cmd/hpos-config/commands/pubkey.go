package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
	"hposconfig/internal/hcid"
)

func pubkeyCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "pubkey [FILE]",
		Short: "Print the host public key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			pub, err := wire.Inspect.HoloportPublicKey(cmd.Context(), cfg, passphraseBytes())
			if err != nil {
				return err
			}
			return printKey(cmd, pub, format, hcid.KindAgent)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "base64", "output format ("+strings.Join(keyFormats, ", ")+")")
	return cmd
}

func adminCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "admin [FILE]",
		Short: "Print the admin public key",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			return printKey(cmd, config.AdminPublicKey(cfg), format, hcid.KindAdmin)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "base64", "output format ("+strings.Join(keyFormats, ", ")+")")
	return cmd
}

func base36Cmd() *cobra.Command {
	return &cobra.Command{
		Use:   "base36-id [FILE]",
		Short: "Print the base36 host identifier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			id, err := wire.Inspect.HostID(cmd.Context(), cfg, passphraseBytes())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func keypairCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keypair [FILE]",
		Short: "Print the host keypair as a lair keystore blob",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			blob, err := wire.Inspect.EncodedKeypair(cmd.Context(), cfg, passphraseBytes())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), blob)
			return nil
		},
	}
}
