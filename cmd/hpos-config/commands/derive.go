package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
	"hposconfig/internal/hcid"
)

func deriveCmd() *cobra.Command {
	var (
		path   uint32
		format string
	)
	cmd := &cobra.Command{
		Use:   "derive [FILE]",
		Short: "Print the public key of a derived sub-seed",
		Long: `Print the public key of the sub-seed at --path. V1 configs derive from
their seed; V2 and V3 configs derive from the unlocked device bundle.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			pub, err := wire.Inspect.DerivePublicKey(cmd.Context(), cfg, passphraseBytes(), domain.DerivationPath(path))
			if err != nil {
				return err
			}
			return printKey(cmd, pub, format, hcid.KindAgent)
		},
	}
	cmd.Flags().Uint32Var(&path, "path", uint32(domain.HoloportIDPath), "derivation path")
	cmd.Flags().StringVarP(&format, "format", "f", "base64", "output format ("+strings.Join(keyFormats, ", ")+")")
	return cmd
}

func convertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert [FILE]",
		Short: "Rewrite a host config in another schema version",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := domain.ParseVersion(to)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			converted, err := wire.Inspect.Convert(cfg, v)
			if err != nil {
				return err
			}
			out, err := config.Marshal(converted)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target version (v1, v2, v3)")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
