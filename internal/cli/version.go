package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/hobbyist/pkg/hobbyist"
)

const modulePath = "github.com/mesh-intelligence/hobbyist"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the hobbyist version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "hobbyist v%s\nmodule: %s\n", hobbyist.Version, modulePath)
			return nil
		},
	}
}
