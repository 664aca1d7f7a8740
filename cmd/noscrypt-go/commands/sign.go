package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
)

var errBadSignature = errors.New("signature does not verify")

func signCmd(a *app) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Sign a message and print the hex signature",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			secret, err := readSecret(cmd)
			if err != nil {
				return err
			}
			return a.withContext(func(c *noscrypt.Context) error {
				sig, err := c.SignString(secret, message)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), sig)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to sign")
	return cmd
}

func verifyCmd(a *app) *cobra.Command {
	var message string
	cmd := &cobra.Command{
		Use:   "verify <pubkey> <signature>",
		Short: "Verify a signature over a message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withContext(func(c *noscrypt.Context) error {
				ok, err := c.VerifyString(args[0], message, args[1])
				if err != nil {
					return err
				}
				if !ok {
					return errBadSignature
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "valid")
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&message, "message", "m", "", "signed message")
	return cmd
}
