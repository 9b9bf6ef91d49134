// Package count implements the count command.
package count

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evmtools/evm-deployment-info/internal/cmd/globals"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
)

// App defines the interface the count command needs from the app.
type App interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the count command with app dependencies.
func NewCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count the number of deployments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}

			if err := hardhat.ValidateProject(flags.Root); err != nil {
				return err
			}

			n, err := hardhat.NewStore(flags.Root).Count()
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Found %d deployment(s)\n", n)
			return err
		},
	}
}
