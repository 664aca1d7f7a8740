// Package commands implements the noscrypt-go command line.
package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/internal/config"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/logging"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/metrics"
)

const secretEnv = "NOSCRYPT_SECRET_KEY"

// app is the state shared by every subcommand.
type app struct {
	configFile string
	backend    string

	cfg      *config.Config
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *metrics.Collector
}

func (a *app) options() []noscrypt.Option {
	return []noscrypt.Option{
		noscrypt.WithLogger(a.logger),
		noscrypt.WithMetrics(a.metrics),
	}
}

// withContext runs fn with a fresh context and closes it afterwards.
func (a *app) withContext(fn func(*noscrypt.Context) error) error {
	c, err := noscrypt.New(noscrypt.Config{Backend: a.cfg.Backend}, a.options()...)
	if err != nil {
		return err
	}
	return errors.Join(fn(c), c.Close())
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "noscrypt-go",
		Short:         "secp256k1 Schnorr keys and signatures for Nostr",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile)
			if err != nil {
				return err
			}
			if a.backend != "" {
				cfg.Backend = a.backend
			}
			a.cfg = cfg
			a.logger = newLogger(cmd.ErrOrStderr(), cfg.Log)
			a.registry = prometheus.NewRegistry()
			a.metrics, err = metrics.NewCollector(a.registry)
			return err
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ./noscrypt.yaml)")
	root.PersistentFlags().StringVar(&a.backend, "backend", "", "signing engine: soft or native")

	root.AddCommand(
		keygenCmd(a),
		pubkeyCmd(a),
		validateCmd(a),
		signCmd(a),
		verifyCmd(a),
		eventCmd(a),
		serveCmd(a),
		versionCmd(),
	)
	return root
}

func newLogger(w io.Writer, cfg config.LogConfig) logging.Logger {
	opts := &slog.HandlerOptions{Level: logging.ParseLevel(cfg.Level)}
	var h slog.Handler
	if cfg.Format == "json" {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}
	return logging.New(slog.New(h))
}

// readSecret takes the secret key from NOSCRYPT_SECRET_KEY or, when unset,
// from the first line of stdin. Secrets are never accepted as arguments.
func readSecret(cmd *cobra.Command) (string, error) {
	if s := os.Getenv(secretEnv); s != "" {
		return s, nil
	}
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read secret key: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", fmt.Errorf("no secret key: set %s or pipe it on stdin", secretEnv)
	}
	return line, nil
}
