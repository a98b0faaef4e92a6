package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"hposconfig/internal/config"
	domaintypes "hposconfig/internal/domain/types"
	"hposconfig/internal/encoding"
	"hposconfig/internal/hcid"
	"hposconfig/internal/keys"
	"hposconfig/internal/store"
)

// loadConfig reads the config named by args[0], or the wired default.
func loadConfig(cmd *cobra.Command, args []string) (config.Config, error) {
	if len(args) == 0 {
		return wire.Config.LoadConfig()
	}
	if args[0] == "-" {
		return store.ReadConfig(cmd.InOrStdin())
	}
	return store.NewConfigFileStore(args[0]).LoadConfig()
}

func passphraseBytes() []byte {
	if passphrase == "" {
		return nil
	}
	return []byte(passphrase)
}

// openInput opens path for reading; "-" is stdin.
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(path)
}

var keyFormats = []string{"base64", "hcid", "url", "legacy-url", "agent", "base36", "dns", "fingerprint"}

// formatKey renders pub in the named format. kind selects the HCID tag.
func formatKey(pub domaintypes.Ed25519Public, format string, kind hcid.Kind) (string, error) {
	switch format {
	case "base64":
		return encoding.B64(pub[:]), nil
	case "hcid":
		return hcid.Encode(kind, pub[:])
	case "url":
		return encoding.HolohostURL(pub[:])
	case "legacy-url":
		return hcid.HolohostURL(pub[:])
	case "agent":
		return encoding.EncodeAgent(pub[:])
	case "base36":
		return encoding.EncodeBase36(pub[:])
	case "dns":
		return encoding.EncodeDNS(pub[:])
	case "fingerprint":
		return keys.Fingerprint(pub).String(), nil
	}
	return "", fmt.Errorf("unknown key format %q (want one of %s)", format, strings.Join(keyFormats, ", "))
}

func printKey(cmd *cobra.Command, pub domaintypes.Ed25519Public, format string, kind hcid.Kind) error {
	s, err := formatKey(pub, format, kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), s)
	return nil
}
