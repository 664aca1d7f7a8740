package noscrypt

import "context"

// GenerateKeypair draws a random secret key, validates it and derives its
// public key. A candidate that fails validation is reported as
// ErrKeypairGenerationFailed rather than retried.
func (c *Context) GenerateKeypair() (Keypair, error) {
	const op = "GenerateKeypair"
	var candidate SecretKey
	defer candidate.Zero()

	if err := c.lock(op); err != nil {
		return Keypair{}, err
	}
	err := c.draw(candidate[:])
	c.mu.Unlock()
	if err != nil {
		return Keypair{}, opError(op, err)
	}

	ok, err := c.ValidSecret(candidate)
	if err != nil {
		return Keypair{}, opError(op, err)
	}
	if !ok {
		c.logger.Warn(context.Background(), "generated secret key failed validation")
		return Keypair{}, opError(op, ErrKeypairGenerationFailed)
	}

	pk, err := c.PublicKeyFromSecret(candidate)
	if err != nil {
		return Keypair{}, opError(op, err)
	}
	return Keypair{SecretKey: candidate.Hex(), PublicKey: pk.Hex()}, nil
}
