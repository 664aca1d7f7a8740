package commands

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/internal/valkey"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
)

func serveCmd(a *app) *cobra.Command {
	var (
		poolSize int
		workers  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Verify newline delimited events from stdin and store them in valkey",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if a.cfg.Metrics.Enabled {
				srv := &http.Server{
					Addr:              a.cfg.Metrics.Listen,
					Handler:           promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{}),
					ReadHeaderTimeout: 5 * time.Second,
				}
				go func() {
					if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
						a.logger.Error(ctx, "metrics server failed", "error", err)
					}
				}()
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					_ = srv.Shutdown(shutdownCtx)
				}()
				a.logger.Info(ctx, "serving metrics", "listen", a.cfg.Metrics.Listen)
			}

			client := valkey.New(valkey.Options{
				Addr:        a.cfg.Valkey.Addr(),
				Password:    a.cfg.Valkey.Password,
				DB:          a.cfg.Valkey.DB,
				DialTimeout: a.cfg.Valkey.DialTimeout,
			}, a.logger)
			if err := client.Connect(ctx); err != nil {
				return err
			}
			defer client.Disconnect()

			pool, err := noscrypt.NewPool(poolSize, noscrypt.Config{Backend: a.cfg.Backend}, a.options()...)
			if err != nil {
				return err
			}
			defer pool.Close()

			return ingest(ctx, a, valkey.NewEventStore(client, pool, a.cfg.Valkey.EventTTL), bufio.NewScanner(cmd.InOrStdin()), workers)
		},
	}
	cmd.Flags().IntVar(&poolSize, "pool", 4, "number of signing contexts")
	cmd.Flags().IntVar(&workers, "workers", 4, "concurrent event handlers")
	return cmd
}

func ingest(ctx context.Context, a *app, store *valkey.EventStore, lines *bufio.Scanner, workers int) error {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan []byte)
	done := make(chan struct{})
	for i := 0; i < workers; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for line := range jobs {
				handleLine(ctx, a, store, line)
			}
		}()
	}

	lines.Buffer(make([]byte, 64*1024), 1<<20)
	for lines.Scan() {
		if ctx.Err() != nil {
			break
		}
		line := append([]byte(nil), lines.Bytes()...)
		if len(line) == 0 {
			continue
		}
		jobs <- line
	}
	err := lines.Err()
	close(jobs)
	for i := 0; i < workers; i++ {
		<-done
	}
	return err
}

func handleLine(ctx context.Context, a *app, store *valkey.EventStore, line []byte) {
	e, err := decodeEvent(bytes.NewReader(line))
	if err != nil {
		a.logger.Warn(ctx, "skipping malformed event", "error", err)
		return
	}
	if err := checkKind(e); err != nil {
		a.logger.Warn(ctx, "rejecting event", "id", e.ID, "error", err)
		return
	}
	if err := store.Put(ctx, e); err != nil {
		a.logger.Warn(ctx, "rejecting event", "id", e.ID, "error", err)
		return
	}
	a.logger.Debug(ctx, "stored event", "id", e.ID, "kind", e.Kind)
}
