// Package update implements the update command: a single release
// check against the published releases of this tool.
package update

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/evmtools/evm-deployment-info/pkg/selfupdate"
)

// App defines the interface the update command needs from the app.
type App interface {
	Logger() *zerolog.Logger
	Version() string
	UpdateRepo() string
	UpdateTimeout() time.Duration
	InstallPath() string
}

// NewCommand creates the update command with app dependencies.
func NewCommand(app App) *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Check for a newer release",
		Long: `Update performs one release check and reports whether a newer
version is published. The check is attempted exactly once and is never
retried.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			checker := selfupdate.NewChecker(selfupdate.Config{
				CurrentVersion: app.Version(),
				Repo:           app.UpdateRepo(),
				Timeout:        app.UpdateTimeout(),
				InstallPath:    app.InstallPath(),
			})

			app.Logger().Debug().
				Str("repo", app.UpdateRepo()).
				Str("current", app.Version()).
				Msg("checking for updates")

			release, newer, err := checker.Check(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !newer {
				_, err = fmt.Fprintf(out, "evm-deployment-info %s is up to date\n", app.Version())
				return err
			}

			fmt.Fprintf(out, "Update available: %s -> %s\n", app.Version(), release.Version)
			fmt.Fprintf(out, "Release: %s\n", release.URL)
			fmt.Fprintf(out, "Install to %s via your package manager or the release page.\n", checker.InstallPath())
			return nil
		},
	}
}
