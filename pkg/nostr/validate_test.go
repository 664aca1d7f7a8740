package nostr_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostrkit/noscrypt-go/pkg/nostr"
)

func signedShape(e *nostr.Event) *nostr.Event {
	e.ID = strings.Repeat("a", 64)
	e.Sig = strings.Repeat("b", 128)
	return e
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*nostr.Event)
		ok     bool
	}{
		{"valid", func(*nostr.Event) {}, true},
		{"uppercase pubkey", func(e *nostr.Event) { e.PubKey = strings.ToUpper(e.PubKey) }, false},
		{"short pubkey", func(e *nostr.Event) { e.PubKey = e.PubKey[:62] }, false},
		{"zero created_at", func(e *nostr.Event) { e.CreatedAt = 0 }, false},
		{"zero kind", func(e *nostr.Event) { e.Kind = 0 }, false},
		{"kind too large", func(e *nostr.Event) { e.Kind = 40000 }, false},
		{"max kind", func(e *nostr.Event) { e.Kind = 39999 }, true},
		{"empty tag", func(e *nostr.Event) { e.Tags = []nostr.Tag{{}} }, false},
		{"nil tags", func(e *nostr.Event) { e.Tags = nil }, true},
		{"missing id", func(e *nostr.Event) { e.ID = "" }, false},
		{"short sig", func(e *nostr.Event) { e.Sig = e.Sig[:126] }, false},
		{"non hex sig", func(e *nostr.Event) { e.Sig = "z" + e.Sig[1:] }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := signedShape(chatEvent())
			tt.mutate(e)
			err := nostr.Validate(e)
			if tt.ok {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, nostr.ErrInvalidEvent)
		})
	}
}

func TestValidateUnsigned(t *testing.T) {
	e := chatEvent()
	require.NoError(t, nostr.ValidateUnsigned(e))
	require.ErrorIs(t, nostr.Validate(e), nostr.ErrInvalidEvent)

	e.PubKey = ""
	require.ErrorIs(t, nostr.ValidateUnsigned(e), nostr.ErrInvalidEvent)
}

func TestValidateChatMessage(t *testing.T) {
	e := signedShape(chatEvent())
	require.NoError(t, nostr.ValidateChatMessage(e))

	e.Kind = 1
	require.ErrorIs(t, nostr.ValidateChatMessage(e), nostr.ErrUnexpectedKind)
}

func TestValidateThreadedResponse(t *testing.T) {
	tests := []struct {
		name    string
		tags    []nostr.Tag
		wantErr error
	}{
		{"root reference", []nostr.Tag{{"e", "abc"}}, nil},
		{"full reference", []nostr.Tag{{"p", "x"}, {"e", "abc", "wss://r", "root"}}, nil},
		{"no e tag", []nostr.Tag{{"p", "abc"}}, nostr.ErrMissingThreadTag},
		{"bare e tag", []nostr.Tag{{"e"}}, nostr.ErrMissingThreadTag},
		{"overlong e tag", []nostr.Tag{{"e", "a", "b", "c", "d"}}, nostr.ErrMissingThreadTag},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := signedShape(chatEvent())
			e.Kind = nostr.KindThreadedResponse
			e.Tags = tt.tags
			err := nostr.ValidateThreadedResponse(e)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	e := signedShape(chatEvent())
	assert.ErrorIs(t, nostr.ValidateThreadedResponse(e), nostr.ErrUnexpectedKind)
}
