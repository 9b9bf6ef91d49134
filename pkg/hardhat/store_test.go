package hardhat_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
)

// writeRecord creates one deployment record directory with a .chainId
// marker and the given artifact files.
func writeRecord(t *testing.T, root, name, chainID string, artifacts map[string]string) {
	t.Helper()
	dir := filepath.Join(root, "deployments", name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chainId"), []byte(chainID), 0o644))
	for file, content := range artifacts {
		require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(content), 0o644))
	}
}

func TestStoreAddress(t *testing.T) {
	t.Run("absent record is not an error", func(t *testing.T) {
		store := hardhat.NewStore(t.TempDir())
		addr, ok, err := store.Address(137)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, addr)
	})

	t.Run("first artifact in filename order wins", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "polygon", "137", map[string]string{
			"Bravo.json": `{"address": "0x2", "abi": []}`,
			"Alpha.json": `{"address": "0x1", "abi": []}`,
		})

		store := hardhat.NewStore(root)
		addr, ok, err := store.Address(137)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "0x1", addr)
	})

	t.Run("first string value in document order wins", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "mainnet", "1", map[string]string{
			"Token.json": `{"abi": [], "numDeployments": 2, "address": "0xabc", "transactionHash": "0xdead"}`,
		})

		store := hardhat.NewStore(root)
		addr, ok, err := store.Address(1)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "0xabc", addr)
	})

	t.Run("canonical addresses are checksummed", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "sepolia", "11155111", map[string]string{
			"Token.json": `{"address": "0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"}`,
		})

		store := hardhat.NewStore(root)
		addr, ok, err := store.Address(11155111)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed", addr)
	})

	t.Run("record with no address resolves to none", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "empty", "10", map[string]string{
			"Meta.json": `{"abi": [], "numDeployments": 0}`,
		})

		store := hardhat.NewStore(root)
		_, ok, err := store.Address(10)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("malformed artifact is a parse error", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "broken", "42", map[string]string{
			"Broken.json": `{"address": `,
		})

		store := hardhat.NewStore(root)
		_, _, err := store.Address(42)
		require.Error(t, err)
		assert.True(t, apperrors.IsStoreParse(err))
	})

	t.Run("malformed chain id marker is a parse error", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "odd", "not-a-number", nil)

		store := hardhat.NewStore(root)
		_, _, err := store.Address(1)
		require.Error(t, err)
		assert.True(t, apperrors.IsStoreParse(err))
	})
}

func TestStoreChainIDs(t *testing.T) {
	root := t.TempDir()
	writeRecord(t, root, "polygon", "137", nil)
	writeRecord(t, root, "mainnet", "1", nil)
	writeRecord(t, root, "amoy", "80002", nil)
	// Not a record: no chain id marker.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "deployments", "scratch"), 0o755))

	store := hardhat.NewStore(root)
	ids, err := store.ChainIDs()
	require.NoError(t, err)
	assert.Equal(t, []uint64{1, 137, 80002}, ids)
}

func TestStoreCount(t *testing.T) {
	t.Run("missing store counts zero", func(t *testing.T) {
		store := hardhat.NewStore(t.TempDir())
		n, err := store.Count()
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("counts record directories", func(t *testing.T) {
		root := t.TempDir()
		writeRecord(t, root, "polygon", "137", nil)
		writeRecord(t, root, "mainnet", "1", nil)
		// Loose files in the store are not records.
		require.NoError(t, os.WriteFile(filepath.Join(root, "deployments", "README.md"), []byte("x"), 0o644))

		store := hardhat.NewStore(root)
		n, err := store.Count()
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})
}
