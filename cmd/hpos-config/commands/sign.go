package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
	"hposconfig/internal/domain"
	"hposconfig/internal/keys"
	"hposconfig/internal/verifier"
)

var errInvalidSignature = errors.New("signature is not valid")

func signCmd() *cobra.Command {
	var (
		message  string
		password string
		window   time.Duration
	)
	cmd := &cobra.Command{
		Use:   "sign [FILE]",
		Short: "Sign a message with the admin key",
		Long: `Sign a message with the admin key, re-derived from the admin password.
With --window the signature covers the message and the current time window.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, args)
			if err != nil {
				return err
			}
			sig, err := wire.Inspect.SignAdmin(cmd.Context(), cfg, domain.SignRequest{
				Password:   password,
				Passphrase: passphraseBytes(),
				Message:    message,
				Window:     window,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), sig)
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to sign")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	cmd.Flags().DurationVar(&window, "window", 0, "time window length; 0 signs the bare message")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func verifyCmd() *cobra.Command {
	var (
		message   string
		signature string
		window    time.Duration
		server    string
	)
	cmd := &cobra.Command{
		Use:   "verify [FILE]",
		Short: "Check an admin signature",
		Long: `Check an admin signature against the admin key of a config, or ask the
verifier server at --server. A server applies its own window length; any
non-zero --window marks the signature as windowed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				ok  bool
				err error
			)
			if server != "" {
				ok, err = verifier.NewClient(server, nil).Verify(cmd.Context(), []byte(message), signature, window > 0)
			} else {
				var cfg config.Config
				cfg, err = loadConfig(cmd, args)
				if err != nil {
					return err
				}
				v := keys.NewAdminVerifier(config.AdminPublicKey(cfg))
				if window > 0 {
					ok, err = v.VerifyWindow(message, signature, time.Now(), window)
				} else {
					ok, err = v.Verify([]byte(message), signature)
				}
			}
			if err != nil {
				return err
			}
			if !ok {
				return errInvalidSignature
			}
			fmt.Fprintln(cmd.OutOrStdout(), "valid")
			return nil
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "signed message")
	cmd.Flags().StringVarP(&signature, "signature", "s", "", "base64 signature")
	cmd.Flags().DurationVar(&window, "window", 0, "time window length of a windowed signature")
	cmd.Flags().StringVar(&server, "server", "", "verifier server base URL")
	_ = cmd.MarkFlagRequired("signature")
	return cmd
}
