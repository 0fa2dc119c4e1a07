package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/quantmind-br/edgeship-go/internal/manifest"
)

// RenderDeployConfig writes a human-readable summary of a resolved
// deploy destination. The switch over the DeployConfig union is
// exhaustive; a new variant must be handled here before it can ship.
func RenderDeployConfig(w io.Writer, config manifest.DeployConfig) error {
	switch c := config.(type) {
	case manifest.Zoned:
		fmt.Fprintln(w, "zoned deploy")
		fmt.Fprintf(w, "  script:     %s\n", c.Script)
		fmt.Fprintf(w, "  account_id: %s\n", c.AccountID)
		fmt.Fprintf(w, "  zone_id:    %s\n", c.ZoneID)
		fmt.Fprintf(w, "  routes:     %s\n", strings.Join(c.Routes, ", "))
		return nil
	case manifest.Zoneless:
		fmt.Fprintln(w, "zoneless deploy")
		fmt.Fprintf(w, "  script:      %s\n", c.Script)
		if c.AccountID != "" {
			fmt.Fprintf(w, "  account_id:  %s\n", c.AccountID)
		}
		fmt.Fprintf(w, "  workers_dev: %t\n", c.WorkersDev)
		return nil
	default:
		return fmt.Errorf("unhandled deploy config %T", config)
	}
}

// RenderTarget writes a human-readable summary of an effective target.
func RenderTarget(w io.Writer, target *manifest.Target) {
	fmt.Fprintln(w, "effective target")
	fmt.Fprintf(w, "  name:       %s\n", target.Name)
	fmt.Fprintf(w, "  type:       %s\n", target.Type)
	if target.AccountID != "" {
		fmt.Fprintf(w, "  account_id: %s\n", target.AccountID)
	}
	if target.WebpackConfig != "" {
		fmt.Fprintf(w, "  webpack:    %s\n", target.WebpackConfig)
	}
	for _, ns := range target.KvNamespaces {
		fmt.Fprintf(w, "  kv:         %s -> %s\n", ns.Binding, ns.ID)
	}
	if target.Site != nil {
		fmt.Fprintf(w, "  site:       %s\n", target.Site.Bucket)
	}
}
