package nostr

import (
	"bytes"
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt/hexcodec"
)

// Kinds used by NIP-7D threads.
const (
	KindChatMessage      = 11
	KindThreadedResponse = 1111
)

// Tag is one event tag: a name followed by its values.
type Tag []string

// Event is a NIP-01 event.
type Event struct {
	ID        string `json:"id" validate:"required,lowerhex=64"`
	PubKey    string `json:"pubkey" validate:"required,lowerhex=64"`
	CreatedAt int64  `json:"created_at" validate:"gt=0"`
	Kind      int    `json:"kind" validate:"gt=0,lt=40000"`
	Tags      []Tag  `json:"tags" validate:"dive,min=1"`
	Content   string `json:"content"`
	Sig       string `json:"sig" validate:"required,lowerhex=128"`
}

// Serialize returns the canonical serialization the event id is computed
// over. Nil tags serialize as an empty array.
func Serialize(e *Event) ([]byte, error) {
	tags := e.Tags
	if tags == nil {
		tags = []Tag{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode([]any{0, e.PubKey, e.CreatedAt, e.Kind, tags, e.Content}); err != nil {
		return nil, fmt.Errorf("nostr: serialize event: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// ComputeID returns the lowercase hex event id.
func ComputeID(e *Event) (string, error) {
	data, err := Serialize(e)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(data)
	return hexcodec.Encode(sum[:]), nil
}

// FindTag returns the first tag named name, or nil.
func (e *Event) FindTag(name string) Tag {
	for _, t := range e.Tags {
		if len(t) > 0 && t[0] == name {
			return t
		}
	}
	return nil
}
