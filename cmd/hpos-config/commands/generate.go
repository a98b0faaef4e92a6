package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/keys"
	"hposconfig/internal/services/provision"
)

func generateCmd() *cobra.Command {
	var (
		email          string
		password       string
		regCode        string
		version        string
		limits         string
		derivationPath uint32
		seedFrom       string
		profilePath    string
		deviceBundle   string
		revocationKey  string
		save           bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Provision a new host config",
		Long: `Provision a new host config and print it as JSON.

Values from --profile are applied first; explicit flags override them. With
--save the config is also written to --config (or the default location).
The URL the host will be reachable at is printed to stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := domain.ProvisionRequest{
				Version:    domain.V3,
				DevicePath: domain.DefaultDevicePath,
				Limits:     "interactive",
			}
			if profilePath != "" {
				p, err := wire.Profiles.LoadProfile(profilePath)
				if err != nil {
					return err
				}
				if err := provision.ApplyProfile(&req, p); err != nil {
					return err
				}
			}

			f := cmd.Flags()
			if f.Changed("version") {
				v, err := domain.ParseVersion(version)
				if err != nil {
					return err
				}
				req.Version = v
			}
			if f.Changed("email") {
				req.Email = email
			}
			if f.Changed("registration-code") {
				req.RegistrationCode = regCode
			}
			if f.Changed("derivation-path") {
				req.DevicePath = domain.DerivationPath(derivationPath)
			}
			if f.Changed("limits") {
				req.Limits = limits
			}
			req.Password = password
			req.Passphrase = passphraseBytes()
			req.DeviceBundle = deviceBundle

			if seedFrom != "" {
				r, err := openInput(cmd, seedFrom)
				if err != nil {
					return err
				}
				seed, err := keys.SeedFromEntropy(r)
				r.Close()
				if err != nil {
					return fmt.Errorf("seed from %s: %w", seedFrom, err)
				}
				req.Seed = &seed
			}
			if revocationKey != "" {
				raw, err := encoding.DecodeKey("revocation key", revocationKey)
				if err != nil {
					return err
				}
				pub, err := domaintypes.Ed25519PublicFromBytes(raw)
				if err != nil {
					return err
				}
				req.RevocationKey = &pub
			}

			svc := domain.ProvisionService(provision.New(nil))
			if save {
				svc = wire.Provision
			}
			cfg, host, err := svc.Provision(cmd.Context(), req)
			if err != nil {
				return err
			}

			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", out)

			url, err := encoding.HolohostURL(host[:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr(), url)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "admin email address")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().StringVar(&regCode, "registration-code", "", "registration code (v2, v3)")
	cmd.Flags().StringVar(&version, "version", "v3", "config version (v1, v2, v3)")
	cmd.Flags().StringVar(&limits, "limits", "interactive", "bundle password hashing limits (minimum, interactive, moderate, sensitive)")
	cmd.Flags().Uint32Var(&derivationPath, "derivation-path", uint32(domain.DefaultDevicePath), "device seed derivation path (v2, v3)")
	cmd.Flags().StringVar(&seedFrom, "seed-from", "", "hash this file (or - for stdin) into the master seed")
	cmd.Flags().StringVar(&profilePath, "profile", "", "YAML provisioning profile")
	cmd.Flags().StringVar(&deviceBundle, "device-bundle", "", "use this locked device bundle instead of deriving one")
	cmd.Flags().StringVar(&revocationKey, "revocation-key", "", "base64 revocation public key (v3)")
	cmd.Flags().BoolVar(&save, "save", false, "also write the config to --config")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
