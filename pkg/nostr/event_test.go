package nostr_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nostrkit/noscrypt-go/pkg/nostr"
)

const (
	testSecret = "98c642360e7163a66cee5d9a842b252345b6f3f3e21bd3b7635d5e6c20c7ea36"
	testPublic = "0db15182c4ad3418b4fbab75304be7ade9cfa430a21c1c5320c9298f54ea5406"
)

func chatEvent() *nostr.Event {
	return &nostr.Event{
		PubKey:    testPublic,
		CreatedAt: 1700000000,
		Kind:      nostr.KindChatMessage,
		Tags:      []nostr.Tag{{"e", "abc", "wss://relay.example", "root"}},
		Content:   "hello <nostr> & \"friends\"\n",
	}
}

func TestSerialize(t *testing.T) {
	data, err := nostr.Serialize(chatEvent())
	require.NoError(t, err)
	assert.Equal(t,
		`[0,"`+testPublic+`",1700000000,11,[["e","abc","wss://relay.example","root"]],"hello <nostr> & \"friends\"\n"]`,
		string(data))
}

func TestSerializeNilTags(t *testing.T) {
	e := &nostr.Event{PubKey: testPublic, CreatedAt: 1700000000, Kind: 1}
	data, err := nostr.Serialize(e)
	require.NoError(t, err)
	assert.Equal(t, `[0,"`+testPublic+`",1700000000,1,[],""]`, string(data))
}

func TestComputeID(t *testing.T) {
	id, err := nostr.ComputeID(chatEvent())
	require.NoError(t, err)
	assert.Equal(t, "e1f117506900a65bef6c6f37aeb60b00a99ba62b89612ae3a4346262a80fb3e8", id)

	id, err = nostr.ComputeID(&nostr.Event{PubKey: testPublic, CreatedAt: 1700000000, Kind: 1})
	require.NoError(t, err)
	assert.Equal(t, "94e867a260d2abd121c61f42802c675ea512b8e63d2075ea01381b2e256b0dfe", id)
}

func TestEventJSONFieldNames(t *testing.T) {
	data, err := json.Marshal(chatEvent())
	require.NoError(t, err)

	var fields map[string]any
	require.NoError(t, json.Unmarshal(data, &fields))
	for _, k := range []string{"id", "pubkey", "created_at", "kind", "tags", "content", "sig"} {
		assert.Contains(t, fields, k)
	}
}

func TestFindTag(t *testing.T) {
	e := chatEvent()
	assert.Equal(t, nostr.Tag{"e", "abc", "wss://relay.example", "root"}, e.FindTag("e"))
	assert.Nil(t, e.FindTag("p"))
}
