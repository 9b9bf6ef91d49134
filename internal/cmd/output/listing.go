package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/olekukonko/tablewriter"

	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

// missingHeading labels the missing-networks section in CSV and table
// output.
const missingHeading = "Missing Networks"

// flatListing is the non-aggregated listing document: a flat network
// to address object plus the missing network names.
type flatListing struct {
	Deployments map[string]string `json:"deployments"`
	Missing     []string          `json:"missing,omitempty"`
}

// nestedListing is the aggregated listing document, keyed by ecosystem
// prefix, then network suffix.
type nestedListing struct {
	Deployments map[string]map[string]string `json:"deployments"`
	Missing     map[string][]string          `json:"missing,omitempty"`
}

// RenderListing projects a reconciliation result in the given format.
func RenderListing(w io.Writer, format Format, result *reconcile.Result, aggregated bool) error {
	switch format {
	case FormatJSON:
		return renderListingDoc(w, result, aggregated, encodeJSON)
	case FormatYAML:
		return renderListingDoc(w, result, aggregated, encodeYAML)
	case FormatCSV:
		return renderListingCSV(w, result, aggregated)
	default:
		return renderListingTable(w, result, aggregated)
	}
}

func encodeJSON(w io.Writer, doc any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func encodeYAML(w io.Writer, doc any) error {
	data, err := yaml.MarshalWithOptions(doc, yaml.Indent(2))
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func renderListingDoc(w io.Writer, result *reconcile.Result, aggregated bool, encode func(io.Writer, any) error) error {
	if !aggregated {
		doc := flatListing{Deployments: make(map[string]string, len(result.Found))}
		for _, d := range result.Found {
			doc.Deployments[d.Network] = d.Address
		}
		doc.Missing = append(doc.Missing, result.Missing...)
		return encode(w, doc)
	}

	doc := nestedListing{Deployments: make(map[string]map[string]string)}
	for _, g := range reconcile.Aggregate(result.Found) {
		bucket := make(map[string]string, len(g.Entries))
		for _, entry := range g.Entries {
			// "polygon" and "polygonMainnet" both derive suffix
			// "Mainnet"; the collision falls back to the full network
			// name so neither address is lost.
			key := entry.Suffix
			if _, taken := bucket[key]; taken {
				key = entry.Name
			}
			bucket[key] = entry.Address
		}
		doc.Deployments[g.Prefix] = bucket
	}
	if len(result.Missing) > 0 {
		doc.Missing = make(map[string][]string)
		for _, g := range reconcile.AggregateNames(result.Missing) {
			suffixes := make([]string, 0, len(g.Entries))
			for _, entry := range g.Entries {
				suffixes = append(suffixes, entry.Suffix)
			}
			doc.Missing[g.Prefix] = suffixes
		}
	}
	return encode(w, doc)
}

func renderListingCSV(w io.Writer, result *reconcile.Result, aggregated bool) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Network", "Address"}); err != nil {
		return err
	}
	for _, d := range result.Found {
		network := d.Network
		if aggregated {
			network = reconcile.DisplayName(d.Network)
		}
		if err := cw.Write([]string{network, d.Address}); err != nil {
			return err
		}
	}

	if len(result.Missing) > 0 {
		cw.Flush()
		if err := cw.Error(); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "\n%s\n", missingHeading); err != nil {
			return err
		}
		for _, name := range result.Missing {
			if aggregated {
				name = reconcile.DisplayName(name)
			}
			if err := cw.Write([]string{name}); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func renderListingTable(w io.Writer, result *reconcile.Result, aggregated bool) error {
	table := tablewriter.NewTable(w)

	if aggregated {
		table.Header("Network", "Address")
		for _, g := range reconcile.AggregateListing(result.Found, result.Missing) {
			if err := table.Append(reconcile.TitleCase(g.Prefix), ""); err != nil {
				return err
			}
			for _, entry := range g.Entries {
				address := entry.Address
				if address == "" {
					address = "-"
				}
				if err := table.Append("  "+reconcile.TitleCase(entry.Suffix), address); err != nil {
					return err
				}
			}
		}
		return table.Render()
	}

	table.Header("Network", "Address")
	for _, d := range result.Found {
		if err := table.Append(d.Network, d.Address); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}

	if len(result.Missing) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s:\n", missingHeading); err != nil {
			return err
		}
		for _, name := range result.Missing {
			if _, err := fmt.Fprintf(w, "  - %s\n", name); err != nil {
				return err
			}
		}
	}
	return nil
}
