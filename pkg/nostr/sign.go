package nostr

import (
	"fmt"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
)

// Sign fills in the public key, id and signature of e using secretKeyHex.
// The remaining fields must already pass ValidateUnsigned once PubKey is set.
func Sign(c *noscrypt.Context, secretKeyHex string, e *Event) error {
	pub, err := c.GetPublicKey(secretKeyHex)
	if err != nil {
		return err
	}
	e.PubKey = pub
	if err := ValidateUnsigned(e); err != nil {
		return err
	}

	data, err := Serialize(e)
	if err != nil {
		return err
	}
	id, err := ComputeID(e)
	if err != nil {
		return err
	}
	sig, err := c.SignData(secretKeyHex, data)
	if err != nil {
		return fmt.Errorf("nostr: sign event: %w", err)
	}
	e.ID = id
	e.Sig = sig
	return nil
}

// Verify reports whether e carries a valid id and signature. A schema
// failure is an error; an id that does not match the content or a bad
// signature is a false result.
func Verify(c *noscrypt.Context, e *Event) (bool, error) {
	if err := Validate(e); err != nil {
		return false, err
	}
	id, err := ComputeID(e)
	if err != nil {
		return false, err
	}
	if id != e.ID {
		return false, nil
	}
	data, err := Serialize(e)
	if err != nil {
		return false, err
	}
	return c.VerifyData(e.PubKey, data, e.Sig)
}
