package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/evmtools/evm-deployment-info/pkg/reconcile"
)

// AuditEntry is a config network with no deployment record.
type AuditEntry struct {
	Network string `json:"network"`
	ChainID uint64 `json:"chain_id"`
}

// Audit is the two-sided mismatch report: config entries without a
// deployment and deployment records without a config entry. Both
// slices are always non-nil so empty sides render as empty arrays.
type Audit struct {
	ConfigWithoutDeployment []AuditEntry `json:"config_without_deployment"`
	DeploymentWithoutConfig []uint64     `json:"deployment_without_config"`
}

// NewAudit projects a reconciliation result into an audit report. The
// network mapping supplies chain ids for the missing names.
func NewAudit(result *reconcile.Result, networks map[string]uint64) *Audit {
	audit := &Audit{
		ConfigWithoutDeployment: make([]AuditEntry, 0, len(result.Missing)),
		DeploymentWithoutConfig: make([]uint64, 0, len(result.Orphaned)),
	}
	for _, name := range result.Missing {
		audit.ConfigWithoutDeployment = append(audit.ConfigWithoutDeployment, AuditEntry{
			Network: name,
			ChainID: networks[name],
		})
	}
	audit.DeploymentWithoutConfig = append(audit.DeploymentWithoutConfig, result.Orphaned...)
	return audit
}

// RenderAudit projects an audit report in the given format.
func RenderAudit(w io.Writer, format Format, audit *Audit) error {
	switch format {
	case FormatJSON:
		return encodeJSON(w, audit)
	case FormatYAML:
		return encodeYAML(w, audit)
	case FormatCSV:
		return renderAuditCSV(w, audit)
	default:
		return renderAuditTable(w, audit)
	}
}

func renderAuditCSV(w io.Writer, audit *Audit) error {
	cw := csv.NewWriter(w)

	if _, err := fmt.Fprintln(w, "Config Without Deployment"); err != nil {
		return err
	}
	if err := cw.Write([]string{"Network", "Chain ID"}); err != nil {
		return err
	}
	for _, entry := range audit.ConfigWithoutDeployment {
		if err := cw.Write([]string{entry.Network, strconv.FormatUint(entry.ChainID, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nDeployment Without Config"); err != nil {
		return err
	}
	if err := cw.Write([]string{"Chain ID"}); err != nil {
		return err
	}
	for _, id := range audit.DeploymentWithoutConfig {
		if err := cw.Write([]string{strconv.FormatUint(id, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func renderAuditTable(w io.Writer, audit *Audit) error {
	if _, err := fmt.Fprintln(w, "Config Without Deployment"); err != nil {
		return err
	}
	missing := tablewriter.NewTable(w)
	missing.Header("Network", "Chain ID")
	for _, entry := range audit.ConfigWithoutDeployment {
		if err := missing.Append(entry.Network, strconv.FormatUint(entry.ChainID, 10)); err != nil {
			return err
		}
	}
	if err := missing.Render(); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nDeployment Without Config"); err != nil {
		return err
	}
	orphaned := tablewriter.NewTable(w)
	orphaned.Header("Chain ID")
	for _, id := range audit.DeploymentWithoutConfig {
		if err := orphaned.Append(strconv.FormatUint(id, 10)); err != nil {
			return err
		}
	}
	return orphaned.Render()
}
