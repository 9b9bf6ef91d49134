// Package audit implements the audit command: report config entries
// without a deployment and deployment records without a config entry.
package audit

import (
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evmtools/evm-deployment-info/internal/cmd/globals"
	"github.com/evmtools/evm-deployment-info/internal/cmd/output"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

// App defines the interface the audit command needs from the app.
type App interface {
	Logger() *zerolog.Logger
}

// NewCommand creates the audit command with app dependencies.
func NewCommand(app App) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Audit mismatches between config and deployment store",
		Long: `Audit surfaces both sides of a config/store mismatch: networks
declared in hardhat.config.ts with no deployment record, and deployment
records whose chain id no configured network references.`,
		Example: `  evm-deployment-info audit            # two-section table
  evm-deployment-info audit -o json    # machine-readable report
  evm-deployment-info audit -o csv --file audit.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags, err := globals.Parse(cmd)
			if err != nil {
				return err
			}
			return run(app.Logger(), flags, file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "write output to a file instead of stdout")

	return cmd
}

func run(logger *zerolog.Logger, flags *globals.Flags, file string) error {
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

	report := output.NewAudit(result, networks)
	return output.Write(file, func(w io.Writer) error {
		return output.RenderAudit(w, format, report)
	})
}
