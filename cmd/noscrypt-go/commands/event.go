package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/internal/valkey"
	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
	"github.com/nostrkit/noscrypt-go/pkg/nostr"
)

func eventCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Sign and verify Nostr events",
	}
	cmd.AddCommand(eventSignCmd(a), eventVerifyCmd(a))
	return cmd
}

func eventSignCmd(a *app) *cobra.Command {
	var (
		kind      int
		content   string
		tags      []string
		createdAt int64
		store     bool
	)
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Build, sign and print an event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			e := &nostr.Event{
				CreatedAt: createdAt,
				Kind:      kind,
				Content:   content,
				Tags:      parseTags(tags),
			}
			if e.CreatedAt == 0 {
				e.CreatedAt = time.Now().Unix()
			}
			err = a.withContext(func(c *noscrypt.Context) error {
				return nostr.Sign(c, secret, e)
			})
			if err != nil {
				return err
			}
			if store {
				if err := a.storeEvents(cmd.Context(), 1, e); err != nil {
					return err
				}
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(e)
		},
	}
	cmd.Flags().IntVarP(&kind, "kind", "k", nostr.KindChatMessage, "event kind")
	cmd.Flags().StringVarP(&content, "content", "c", "", "event content")
	cmd.Flags().StringArrayVarP(&tags, "tag", "t", nil, "tag as comma separated values, e.g. e,<id>,<relay>,root (repeatable)")
	cmd.Flags().Int64Var(&createdAt, "created-at", 0, "unix timestamp (default now)")
	cmd.Flags().BoolVar(&store, "store", false, "store the signed event in valkey")
	return cmd
}

func eventVerifyCmd(a *app) *cobra.Command {
	var store bool
	cmd := &cobra.Command{
		Use:   "verify [file]",
		Short: "Verify an event read from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			e, err := decodeEvent(in)
			if err != nil {
				return err
			}
			if err := checkKind(e); err != nil {
				return err
			}

			var ok bool
			err = a.withContext(func(c *noscrypt.Context) error {
				var err error
				ok, err = nostr.Verify(c, e)
				return err
			})
			if err != nil {
				return err
			}
			if !ok {
				return errBadSignature
			}
			if store {
				if err := a.storeEvents(cmd.Context(), 1, e); err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid", e.ID)
			return err
		},
	}
	cmd.Flags().BoolVar(&store, "store", false, "store the event in valkey after verifying it")
	return cmd
}

func parseTags(raw []string) []nostr.Tag {
	if len(raw) == 0 {
		return nil
	}
	tags := make([]nostr.Tag, 0, len(raw))
	for _, r := range raw {
		tags = append(tags, nostr.Tag(strings.Split(r, ",")))
	}
	return tags
}

func decodeEvent(r io.Reader) (*nostr.Event, error) {
	var e nostr.Event
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}
	return &e, nil
}

// checkKind applies the thread rules to the kinds that have them.
func checkKind(e *nostr.Event) error {
	switch e.Kind {
	case nostr.KindChatMessage:
		return nostr.ValidateChatMessage(e)
	case nostr.KindThreadedResponse:
		return nostr.ValidateThreadedResponse(e)
	default:
		return nostr.Validate(e)
	}
}

// storeEvents connects to valkey, verifies and stores events, then
// disconnects.
func (a *app) storeEvents(ctx context.Context, poolSize int, events ...*nostr.Event) error {
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

	s := valkey.NewEventStore(client, pool, a.cfg.Valkey.EventTTL)
	var errs []error
	for _, e := range events {
		errs = append(errs, s.Put(ctx, e))
	}
	return errors.Join(errs...)
}
