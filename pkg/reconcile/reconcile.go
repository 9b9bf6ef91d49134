// Package reconcile cross-references config-declared networks against
// on-disk deployment records, classifies each side of the join, and
// groups the outcome for rendering.
package reconcile

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/evmtools/evm-deployment-info/pkg/logging"
)

// ExcludedNetwork is the in-process development network. It never has
// an on-disk record and is dropped before reconciliation.
const ExcludedNetwork = "hardhat"

// Deployment is a network with a resolved deployment address.
type Deployment struct {
	Network string `json:"network"`
	Address string `json:"address"`
}

// Result is the outcome of one reconciliation pass.
//
// Found and Missing partition the config networks (minus the excluded
// development network) and are sorted by name; Orphaned holds store
// chain ids with no config reference, ascending.
type Result struct {
	Found    []Deployment
	Missing  []string
	Orphaned []uint64
}

// Store resolves deployment records by chain id.
type Store interface {
	// Address resolves zero-or-one address for a chain id.
	Address(chainID uint64) (string, bool, error)

	// ChainIDs enumerates the chain ids of all records.
	ChainIDs() ([]uint64, error)
}

// Reconcile joins the network mapping against the store. A store error
// for a single network is downgraded to a warning and the network is
// classified missing; an error enumerating the store itself is fatal.
func Reconcile(networks map[string]uint64, store Store, logger *zerolog.Logger) (*Result, error) {
	if logger == nil {
		logger = &logging.Nop
	}

	names := make([]string, 0, len(networks))
	for name := range networks {
		if name == ExcludedNetwork {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	result := &Result{}
	declared := make(map[uint64]struct{}, len(names))
	for _, name := range names {
		chainID := networks[name]
		declared[chainID] = struct{}{}

		addr, ok, err := store.Address(chainID)
		if err != nil {
			logger.Warn().
				Err(err).
				Str("network", name).
				Uint64("chain_id", chainID).
				Msg("deployment record unreadable, classifying as missing")
			result.Missing = append(result.Missing, name)
			continue
		}
		if !ok {
			result.Missing = append(result.Missing, name)
			continue
		}
		result.Found = append(result.Found, Deployment{Network: name, Address: addr})
	}

	ids, err := store.ChainIDs()
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if _, ok := declared[id]; !ok {
			result.Orphaned = append(result.Orphaned, id)
		}
	}
	sort.Slice(result.Orphaned, func(i, j int) bool { return result.Orphaned[i] < result.Orphaned[j] })

	return result, nil
}
