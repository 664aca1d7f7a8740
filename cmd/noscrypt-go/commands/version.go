package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nostrkit/noscrypt-go/pkg/noscrypt"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "noscrypt-go %s\n", noscrypt.WrapperVersion())
			if v := noscrypt.NativeVersion(); v != "" {
				fmt.Fprintf(out, "%s: %s\n", noscrypt.UpstreamLibrary, v)
			} else {
				fmt.Fprintf(out, "%s: not built\n", noscrypt.UpstreamLibrary)
			}
			return nil
		},
	}
}
