package commands

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
)

func keygenCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new keypair and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withContext(func(c *noscrypt.Context) error {
				kp, err := c.GenerateKeypair()
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(map[string]string{
					"secret_key": kp.SecretKey,
					"public_key": kp.PublicKey,
				})
			})
		},
	}
}

func pubkeyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pubkey",
		Short: "Derive the x-only public key of a secret key",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			return a.withContext(func(c *noscrypt.Context) error {
				pub, err := c.GetPublicKey(secret)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), pub)
				return err
			})
		},
	}
}

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check that a secret key is a usable scalar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			return a.withContext(func(c *noscrypt.Context) error {
				ok, err := c.ValidateSecretKey(secret)
				if err != nil {
					return err
				}
				if !ok {
					return errors.New("secret key is out of range")
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return err
			})
		},
	}
}
