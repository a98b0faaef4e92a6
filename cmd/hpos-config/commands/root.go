package commands

import (
	"context"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"hposconfig/internal/app"
)

const (
	envConfigPath = "HPOS_CONFIG_PATH"
	envPassphrase = "DEVICE_BUNDLE_PASSWORD"
)

var (
	home       string
	configPath string
	passphrase string
	logLevel   string
	wire       *app.Wire
)

// Execute runs the CLI until ctx is cancelled or the command returns.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "hpos-config",
		Short:        "Generate and inspect HoloPort host configs",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(lvl)
			log.SetOutput(cmd.ErrOrStderr())
			log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})

			if home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				home = filepath.Join(dir, ".hpos-config")
			}
			if configPath == "" {
				configPath = os.Getenv(envConfigPath)
			}
			if passphrase == "" {
				passphrase = os.Getenv(envPassphrase)
			}

			w, err := app.NewWire(app.Config{Home: home, ConfigPath: configPath})
			if err != nil {
				return err
			}
			wire = w
			return nil
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "data dir (default ~/.hpos-config)")
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "host config file (default $HPOS_CONFIG_PATH or <home>/hpos-config.json)")
	root.PersistentFlags().StringVarP(&passphrase, "passphrase", "p", "", "device bundle passphrase (default $DEVICE_BUNDLE_PASSWORD)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(
		generateCmd(),
		validateCmd(),
		pubkeyCmd(),
		adminCmd(),
		base36Cmd(),
		keypairCmd(),
		deriveCmd(),
		convertCmd(),
		signCmd(),
		verifyCmd(),
	)
	return root
}
