package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"

	"hposconfig/internal/config"
	"hposconfig/internal/keys"
	"hposconfig/internal/store"
	"hposconfig/internal/verifier"
)

const shutdownTimeout = 10 * time.Second

func main() {
	var (
		configPath = flag.StringP("config", "c", os.Getenv("HPOS_CONFIG_PATH"), "host config file")
		adminKey   = flag.String("admin-key", "", "admin public key, base64 or HCID (overrides --config)")
		listen     = flag.StringP("listen", "l", ":8080", "listen address")
		window     = flag.Duration("window", 5*time.Minute, "time window length for windowed signatures")
		logLevel   = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	lvl, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(lvl)

	v, err := loadVerifier(*adminKey, *configPath)
	if err != nil {
		log.Fatal(err)
	}

	srv := &http.Server{
		Addr:              *listen,
		Handler:           verifier.NewHandler(v, *window),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"listen":      *listen,
			"fingerprint": keys.Fingerprint(v.PublicKey()),
		}).Info("verifier listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("shutdown")
		}
	}
}

func loadVerifier(adminKey, configPath string) (*keys.AdminVerifier, error) {
	if adminKey != "" {
		return keys.ParseAdminVerifier(adminKey)
	}
	if configPath == "" {
		return nil, fmt.Errorf("one of --admin-key or --config is required")
	}
	cfg, err := store.NewConfigFileStore(configPath).LoadConfig()
	if err != nil {
		return nil, err
	}
	return keys.NewAdminVerifier(config.AdminPublicKey(cfg)), nil
}
