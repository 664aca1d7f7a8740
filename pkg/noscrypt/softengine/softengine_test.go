package softengine_test

import (
	"bytes"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	btcschnorr "github.com/btcsuite/btcd/btcec/v2/schnorr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/softengine"
)

// Secp256k1 group order n.
const curveOrderHex = "fffffffffffffffffffffffffffffffebaaedce6af48a03bbfd25e8cd0364141"

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	b := make([]byte, n)
	_, err := rand.Read(b)
	require.NoError(t, err)
	return b
}

func newState(t *testing.T, e *softengine.Engine) []byte {
	t.Helper()
	state := make([]byte, e.StateSize())
	require.NoError(t, e.InitState(state, randomBytes(t, 32)))
	return state
}

func TestDerivePublicKeyVectors(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)

	vectors := []struct{ secret, public string }{
		{
			"98c642360e7163a66cee5d9a842b252345b6f3f3e21bd3b7635d5e6c20c7ea36",
			"0db15182c4ad3418b4fbab75304be7ade9cfa430a21c1c5320c9298f54ea5406",
		},
		{
			"3032cb8da355f9e72c9a94bbabae80ca99d3a38de1aed094b432a9fe3432e1f2",
			"421181660af5d39eb95e48a0a66c41ae393ba94ffeca94703ef81afbed724e5a",
		},
	}
	for _, v := range vectors {
		pub, err := e.DerivePublicKey(state, mustHex(t, v.secret))
		require.NoError(t, err)
		assert.Equal(t, v.public, hex.EncodeToString(pub))
	}
}

func TestValidateSecret(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)

	order := mustHex(t, curveOrderHex)
	belowOrder := bytes.Clone(order)
	belowOrder[31]--

	tests := []struct {
		name   string
		secret []byte
		valid  bool
	}{
		{"zero", make([]byte, 32), false},
		{"curve order", order, false},
		{"all ones", bytes.Repeat([]byte{0xff}, 32), false},
		{"order minus one", belowOrder, true},
		{"one", append(make([]byte, 31), 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := e.ValidateSecret(state, tt.secret)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, ok)
		})
	}

	_, err := e.ValidateSecret(state, make([]byte, 31))
	assert.ErrorIs(t, err, softengine.ErrInvalidArgument)
}

func TestDeriveRejectsOutOfRange(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)

	_, err := e.DerivePublicKey(state, make([]byte, 32))
	assert.ErrorIs(t, err, softengine.ErrSecretOutOfRange)

	_, err = e.DerivePublicKey(state, mustHex(t, curveOrderHex))
	assert.ErrorIs(t, err, softengine.ErrSecretOutOfRange)
}

func TestSignVerify(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)

	secret := mustHex(t, "98c642360e7163a66cee5d9a842b252345b6f3f3e21bd3b7635d5e6c20c7ea36")
	public, err := e.DerivePublicKey(state, secret)
	require.NoError(t, err)

	msg := []byte("hello nostr")
	sig, err := e.Sign(state, secret, randomBytes(t, 32), msg)
	require.NoError(t, err)
	require.Len(t, sig, 64)

	ok, err := e.Verify(state, public, msg, sig)
	require.NoError(t, err)
	assert.True(t, ok)

	// Cross-check with btcec directly: the signature covers SHA-256(msg).
	pub, err := btcschnorr.ParsePubKey(public)
	require.NoError(t, err)
	parsed, err := btcschnorr.ParseSignature(sig)
	require.NoError(t, err)
	digest := sha256.Sum256(msg)
	assert.True(t, parsed.Verify(digest[:], pub))

	ok, err = e.Verify(state, public, []byte("hello nostr!"), sig)
	require.NoError(t, err)
	assert.False(t, ok)

	for i := range sig {
		tampered := bytes.Clone(sig)
		tampered[i] ^= 0x01
		ok, err := e.Verify(state, public, msg, tampered)
		require.NoError(t, err)
		assert.False(t, ok, "flipped byte %d still verifies", i)
	}
}

func TestSignUsesEntropy(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)
	secret := randomBytes(t, 32)
	msg := []byte("same message")

	sig1, err := e.Sign(state, secret, randomBytes(t, 32), msg)
	require.NoError(t, err)
	sig2, err := e.Sign(state, secret, randomBytes(t, 32), msg)
	require.NoError(t, err)
	assert.NotEqual(t, sig1, sig2)
}

func TestVerifyOffCurvePublicKey(t *testing.T) {
	e := softengine.New()
	state := newState(t, e)

	// x = 5 has no matching y on secp256k1.
	offCurve := append(make([]byte, 31), 5)
	ok, err := e.Verify(state, offCurve, []byte("m"), make([]byte, 64))
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = e.Verify(state, offCurve, []byte("m"), make([]byte, 63))
	assert.ErrorIs(t, err, softengine.ErrInvalidArgument)
}

func TestStateLifecycle(t *testing.T) {
	e := softengine.New()
	secret := randomBytes(t, 32)

	state := make([]byte, softengine.StateSize)
	_, err := e.DerivePublicKey(state, secret)
	assert.ErrorIs(t, err, softengine.ErrStateNotInitialized)
	assert.ErrorIs(t, e.ReseedState(state, randomBytes(t, 32)), softengine.ErrStateNotInitialized)

	assert.ErrorIs(t, e.InitState(make([]byte, 10), randomBytes(t, 32)), softengine.ErrStateSize)
	assert.ErrorIs(t, e.InitState(state, randomBytes(t, 16)), softengine.ErrEntropySize)

	require.NoError(t, e.InitState(state, randomBytes(t, 32)))
	before := bytes.Clone(state)
	require.NoError(t, e.ReseedState(state, randomBytes(t, 32)))
	assert.NotEqual(t, before[32:], state[32:])
	assert.Equal(t, []byte{0, 0, 0, 1}, state[4:8])

	require.NoError(t, e.DestroyState(state))
	assert.Equal(t, make([]byte, softengine.StateSize), state)
	assert.ErrorIs(t, e.DestroyState(state), softengine.ErrStateNotInitialized)

	_, err = e.Sign(state, secret, randomBytes(t, 32), []byte("m"))
	assert.ErrorIs(t, err, softengine.ErrStateNotInitialized)
}
