// Package list implements the list command: reconcile the deployment
// store against the configured networks and render the result.
package list

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evmtools/evm-deployment-info/internal/cmd/globals"
	"github.com/evmtools/evm-deployment-info/internal/cmd/output"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

// App defines the interface the list command needs from the app.
type App interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app App) *cobra.Command {
	var aggregate bool
	var file string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List deployments reconciled against configured networks",
		Long: `List resolves an address for every network declared in
hardhat.config.ts and reports the networks whose deployment record is
missing. With --aggregate, networks are grouped into ecosystem buckets
with each ecosystem's mainnet listed first.`,
		Example: `  evm-deployment-info list                      # table of deployments
  evm-deployment-info list -o json              # flat JSON document
  evm-deployment-info list --aggregate -o csv   # ecosystem-grouped CSV
  evm-deployment-info list --file out/deps.json # write to a file sink`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}
			return run(app.Logger(), flags, aggregate, file)
		},
	}

	cmd.Flags().BoolVar(&aggregate, "aggregate", false, "group networks into ecosystem buckets")
	cmd.Flags().StringVar(&file, "file", "", "write output to a file instead of stdout")

	return cmd
}

func run(logger *zerolog.Logger, flags *globals.Flags, aggregate bool, file string) error {
	format, err := output.ParseFormat(flags.Format)
	if err != nil {
		return err
	}
	format = output.DetectFormat(format)

	if err := hardhat.ValidateProject(flags.Root); err != nil {
		return err
	}
	networks, err := hardhat.LoadNetworks(flags.Root)
	if err != nil {
		return err
	}

	store := hardhat.NewStore(flags.Root)
	result, err := reconcile.Reconcile(networks, store, logger)
	if err != nil {
		return err
	}

	logger.Debug().
		Int("found", len(result.Found)).
		Int("missing", len(result.Missing)).
		Int("orphaned", len(result.Orphaned)).
		Msg("reconciliation complete")

	return output.Write(file, func(w io.Writer) error {
		return output.RenderListing(w, format, result, aggregate)
	})
}
