package reconcile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/evmtools/evm-deployment-info/pkg/errors"
	"github.com/evmtools/evm-deployment-info/pkg/hardhat"
	"github.com/evmtools/evm-deployment-info/pkg/logging"
	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

// fakeStore implements reconcile.Store from in-memory maps.
type fakeStore struct {
	addresses map[uint64]string
	errs      map[uint64]error
	chainIDs  []uint64
	idsErr    error
}

func (s *fakeStore) Address(chainID uint64) (string, bool, error) {
	if err := s.errs[chainID]; err != nil {
		return "", false, err
	}
	addr, ok := s.addresses[chainID]
	return addr, ok, nil
}

func (s *fakeStore) ChainIDs() ([]uint64, error) {
	return s.chainIDs, s.idsErr
}

func TestReconcile(t *testing.T) {
	t.Run("partitions config networks into found and missing", func(t *testing.T) {
		networks := map[string]uint64{
			"ethereum":    1,
			"polygon":     137,
			"polygonAmoy": 80002,
		}
		store := &fakeStore{
			addresses: map[uint64]string{1: "0xaa", 137: "0xbb"},
			chainIDs:  []uint64{1, 137},
		}

		result, err := reconcile.Reconcile(networks, store, nil)
		require.NoError(t, err)
		assert.Equal(t, []reconcile.Deployment{
			{Network: "ethereum", Address: "0xaa"},
			{Network: "polygon", Address: "0xbb"},
		}, result.Found)
		assert.Equal(t, []string{"polygonAmoy"}, result.Missing)
		assert.Empty(t, result.Orphaned)
	})

	t.Run("hardhat network is always excluded", func(t *testing.T) {
		networks := map[string]uint64{
			"hardhat":  31337,
			"ethereum": 1,
		}
		store := &fakeStore{
			addresses: map[uint64]string{1: "0xaa", 31337: "0xdeadbeef"},
		}

		result, err := reconcile.Reconcile(networks, store, nil)
		require.NoError(t, err)
		for _, d := range result.Found {
			assert.NotEqual(t, "hardhat", d.Network)
		}
		assert.NotContains(t, result.Missing, "hardhat")
	})

	t.Run("found and missing partition all config networks", func(t *testing.T) {
		networks := map[string]uint64{
			"a": 1, "b": 2, "c": 3, "d": 4, "hardhat": 31337,
		}
		store := &fakeStore{
			addresses: map[uint64]string{2: "0x2", 4: "0x4"},
		}

		result, err := reconcile.Reconcile(networks, store, nil)
		require.NoError(t, err)

		got := make(map[string]bool)
		for _, d := range result.Found {
			assert.False(t, got[d.Network], "network classified twice")
			got[d.Network] = true
		}
		for _, name := range result.Missing {
			assert.False(t, got[name], "network classified twice")
			got[name] = true
		}
		assert.Equal(t, map[string]bool{"a": true, "b": true, "c": true, "d": true}, got)
	})

	t.Run("orphaned chain ids are those without a config reference", func(t *testing.T) {
		networks := map[string]uint64{"ethereum": 1}
		store := &fakeStore{
			addresses: map[uint64]string{1: "0xaa", 10: "0xbb", 137: "0xcc"},
			chainIDs:  []uint64{137, 1, 10},
		}

		result, err := reconcile.Reconcile(networks, store, nil)
		require.NoError(t, err)
		assert.Equal(t, []uint64{10, 137}, result.Orphaned)
		for _, id := range result.Orphaned {
			assert.NotEqual(t, uint64(1), id)
		}
	})

	t.Run("per-network store error downgrades to missing with warning", func(t *testing.T) {
		networks := map[string]uint64{"ethereum": 1, "polygon": 137}
		store := &fakeStore{
			addresses: map[uint64]string{1: "0xaa"},
			errs:      map[uint64]error{137: apperrors.NewStoreParseError("deployments/polygon", assert.AnError)},
		}

		logger := logging.NewTestLogger(t)
		result, err := reconcile.Reconcile(networks, store, logger.Logger)
		require.NoError(t, err)
		assert.Equal(t, []string{"polygon"}, result.Missing)
		assert.Len(t, result.Found, 1)
		assert.True(t, logger.Contains("classifying as missing"))
		assert.True(t, logger.Contains("polygon"))
	})

	t.Run("store enumeration error is fatal", func(t *testing.T) {
		store := &fakeStore{idsErr: apperrors.NewStoreReadError("deployments", assert.AnError)}
		_, err := reconcile.Reconcile(map[string]uint64{"a": 1}, store, nil)
		require.Error(t, err)
		assert.True(t, apperrors.IsStoreRead(err))
	})
}

// TestReconcileEndToEnd drives the real extractor and store against an
// on-disk fixture: two declared polygon networks, one deployed.
func TestReconcileEndToEnd(t *testing.T) {
	root := t.TempDir()

	config := `
export default {
  networks: {
    polygonMainnet: { chainId: 137 },
    polygonAmoy: { chainId: 80002 },
  },
};`
	require.NoError(t, os.WriteFile(filepath.Join(root, hardhat.ConfigFileName), []byte(config), 0o644))

	dir := filepath.Join(root, "deployments", "polygonMainnet")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".chainId"), []byte("137"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Token.json"), []byte(`{"address": "0x1"}`), 0o644))

	networks, err := hardhat.LoadNetworks(root)
	require.NoError(t, err)

	result, err := reconcile.Reconcile(networks, hardhat.NewStore(root), nil)
	require.NoError(t, err)

	assert.Equal(t, []reconcile.Deployment{{Network: "polygonMainnet", Address: "0x1"}}, result.Found)
	assert.Equal(t, []string{"polygonAmoy"}, result.Missing)
	assert.Empty(t, result.Orphaned)
}
