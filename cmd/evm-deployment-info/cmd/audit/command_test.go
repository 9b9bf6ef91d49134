package audit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmtools/evm-deployment-info/internal/cmd/globals"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
	"github.com/evmtools/evm-deployment-info/pkg/logging"
)

type testApp struct {
	logger *zerolog.Logger
}

func (a testApp) Logger() *zerolog.Logger {
	return a.logger
}

func TestAuditCommand(t *testing.T) {
	project := t.TempDir()

	// One configured network without a record, one record without a
	// configured network.
	config := `networks: { polygonAmoy: { chainId: 80002 } }`
	require.NoError(t, os.WriteFile(filepath.Join(project, hardhat.ConfigFileName), []byte(config), 0o644))

	dir := filepath.Join(project, "deployments", "linea")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chainId"), []byte("59144"), 0o644))

	root := &cobra.Command{Use: "evm-deployment-info", SilenceUsage: true, SilenceErrors: true}
	globals.AddFlags(root)
	root.AddCommand(NewCommand(testApp{logger: logging.NewTestLogger(t).Logger}))

	out := filepath.Join(t.TempDir(), "audit.json")
	root.SetArgs([]string{"audit", "--root", project, "-o", "json", "--file", out})
	require.NoError(t, root.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"config_without_deployment": [{"network": "polygonAmoy", "chain_id": 80002}],
		"deployment_without_config": [59144]
	}`, string(data))
}
