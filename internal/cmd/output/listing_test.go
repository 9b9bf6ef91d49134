package output_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evmtools/evm-deployment-info/internal/cmd/output"
	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

func renderListing(t *testing.T, format output.Format, result *reconcile.Result, aggregated bool) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, output.RenderListing(&buf, format, result, aggregated))
	return buf.String()
}

func TestRenderListingJSON(t *testing.T) {
	t.Run("flat document with empty missing omits the key", func(t *testing.T) {
		result := &reconcile.Result{
			Found: []reconcile.Deployment{{Network: "ethereum", Address: "0xabc"}},
		}
		got := renderListing(t, output.FormatJSON, result, false)

		assert.JSONEq(t, `{"deployments":{"ethereum":"0xabc"}}`, got)

		var doc map[string]json.RawMessage
		require.NoError(t, json.Unmarshal([]byte(got), &doc))
		_, hasMissing := doc["missing"]
		assert.False(t, hasMissing)
	})

	t.Run("flat document lists missing names", func(t *testing.T) {
		result := &reconcile.Result{
			Found:   []reconcile.Deployment{{Network: "polygonMainnet", Address: "0x1"}},
			Missing: []string{"polygonAmoy"},
		}
		got := renderListing(t, output.FormatJSON, result, false)
		assert.JSONEq(t, `{
			"deployments": {"polygonMainnet": "0x1"},
			"missing": ["polygonAmoy"]
		}`, got)
	})

	t.Run("aggregated document nests by prefix and suffix", func(t *testing.T) {
		result := &reconcile.Result{
			Found: []reconcile.Deployment{
				{Network: "polygon", Address: "0x1"},
				{Network: "polygonAmoy", Address: "0x2"},
				{Network: "arbitrumSepolia", Address: "0x3"},
			},
			Missing: []string{"arbitrum", "baseSepolia"},
		}
		got := renderListing(t, output.FormatJSON, result, true)
		assert.JSONEq(t, `{
			"deployments": {
				"polygon": {"Mainnet": "0x1", "Amoy": "0x2"},
				"arbitrum": {"Sepolia": "0x3"}
			},
			"missing": {
				"arbitrum": ["Mainnet"],
				"base": ["Sepolia"]
			}
		}`, got)
	})

	t.Run("aggregated document keeps both sides of a suffix collision", func(t *testing.T) {
		result := &reconcile.Result{
			Found: []reconcile.Deployment{
				{Network: "polygon", Address: "0x1"},
				{Network: "polygonMainnet", Address: "0x2"},
			},
		}
		got := renderListing(t, output.FormatJSON, result, true)
		assert.JSONEq(t, `{
			"deployments": {
				"polygon": {"Mainnet": "0x1", "polygonMainnet": "0x2"}
			}
		}`, got)
	})
}

func TestRenderListingCSV(t *testing.T) {
	result := &reconcile.Result{
		Found: []reconcile.Deployment{
			{Network: "ethereum", Address: "0xabc"},
			{Network: "polygonMainnet", Address: "0x1"},
		},
		Missing: []string{"polygonAmoy"},
	}

	t.Run("flat rows under a Network,Address header", func(t *testing.T) {
		got := renderListing(t, output.FormatCSV, result, false)
		assert.Equal(t, "Network,Address\nethereum,0xabc\npolygonMainnet,0x1\n\nMissing Networks\npolygonAmoy\n", got)
	})

	t.Run("aggregated rows carry the ecosystem label", func(t *testing.T) {
		got := renderListing(t, output.FormatCSV, result, true)
		assert.Contains(t, got, "Ethereum Mainnet,0xabc")
		assert.Contains(t, got, "Polygon Mainnet,0x1")
		assert.Contains(t, got, "Polygon Amoy")
	})

	t.Run("byte-identical across repeated runs", func(t *testing.T) {
		first := renderListing(t, output.FormatCSV, result, false)
		second := renderListing(t, output.FormatCSV, result, false)
		assert.Equal(t, first, second)
	})

	t.Run("no missing section when nothing is missing", func(t *testing.T) {
		got := renderListing(t, output.FormatCSV, &reconcile.Result{
			Found: []reconcile.Deployment{{Network: "ethereum", Address: "0xabc"}},
		}, false)
		assert.Equal(t, "Network,Address\nethereum,0xabc\n", got)
	})
}

func TestRenderListingYAML(t *testing.T) {
	result := &reconcile.Result{
		Found:   []reconcile.Deployment{{Network: "ethereum", Address: "0xabc"}},
		Missing: []string{"polygonAmoy"},
	}
	got := renderListing(t, output.FormatYAML, result, false)

	// Hex-like scalars come back quoted, so compare decoded values
	// rather than raw text.
	var doc struct {
		Deployments map[string]string `yaml:"deployments"`
		Missing     []string          `yaml:"missing"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(got), &doc))
	assert.Equal(t, map[string]string{"ethereum": "0xabc"}, doc.Deployments)
	assert.Equal(t, []string{"polygonAmoy"}, doc.Missing)
}

func TestRenderListingTable(t *testing.T) {
	t.Run("flat rows with a missing section", func(t *testing.T) {
		result := &reconcile.Result{
			Found:   []reconcile.Deployment{{Network: "ethereum", Address: "0xabc"}},
			Missing: []string{"polygonAmoy"},
		}
		got := renderListing(t, output.FormatTable, result, false)
		assert.Contains(t, got, "ethereum")
		assert.Contains(t, got, "0xabc")
		assert.Contains(t, got, "Missing Networks:")
		assert.Contains(t, got, "polygonAmoy")
	})

	t.Run("aggregated groups show display names", func(t *testing.T) {
		result := &reconcile.Result{
			Found:   []reconcile.Deployment{{Network: "polygonAmoy", Address: "0x2"}},
			Missing: []string{"polygon"},
		}
		got := renderListing(t, output.FormatTable, result, true)
		assert.Contains(t, got, "Polygon")
		assert.Contains(t, got, "Amoy")
		assert.Contains(t, got, "Mainnet")
		assert.Contains(t, got, "0x2")
	})
}
