package app

import (
	"github.com/spf13/cobra"

	"github.com/evmtools/evm-deployment-info/cmd/evm-deployment-info/cmd/audit"
	"github.com/evmtools/evm-deployment-info/cmd/evm-deployment-info/cmd/count"
	"github.com/evmtools/evm-deployment-info/cmd/evm-deployment-info/cmd/list"
	"github.com/evmtools/evm-deployment-info/cmd/evm-deployment-info/cmd/update"
	"github.com/evmtools/evm-deployment-info/cmd/evm-deployment-info/cmd/version"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(audit.NewCommand(a))
	rootCmd.AddCommand(count.NewCommand(a))
	rootCmd.AddCommand(update.NewCommand(a))
	rootCmd.AddCommand(version.NewCommand(a))
}
