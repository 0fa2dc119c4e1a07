package manifest

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverlay supplies process-level overrides for scalar manifest
// fields. Implementations must be pure apart from reading process state;
// the resolution core never touches the environment directly.
type EnvOverlay interface {
	Apply(m *Manifest) error
}

// ProcessEnv returns an EnvOverlay backed by process environment
// variables carrying the given prefix, e.g. EDGESHIP_ACCOUNT_ID
// overrides account_id.
func ProcessEnv(prefix string) EnvOverlay {
	return processEnv{prefix: prefix}
}

type processEnv struct {
	prefix string
}

// envOverrides mirrors the scalar manifest fields that may be overridden
// from the environment. Pointer fields stay nil when the variable is
// unset, so only present variables are applied.
type envOverrides struct {
	Name          *string `env:"NAME"`
	Type          *string `env:"TYPE"`
	AccountID     *string `env:"ACCOUNT_ID"`
	ZoneID        *string `env:"ZONE_ID"`
	WorkersDev    *bool   `env:"WORKERS_DEV"`
	Route         *string `env:"ROUTE"`
	WebpackConfig *string `env:"WEBPACK_CONFIG"`
}

func (p processEnv) Apply(m *Manifest) error {
	var overrides envOverrides
	if err := env.ParseWithOptions(&overrides, env.Options{Prefix: p.prefix}); err != nil {
		return fmt.Errorf("reading environment overrides: %w", err)
	}

	if overrides.Name != nil {
		m.Name = *overrides.Name
	}
	if overrides.Type != nil {
		m.Type = TargetType(*overrides.Type)
	}
	if overrides.AccountID != nil {
		m.AccountID = *overrides.AccountID
	}
	if overrides.ZoneID != nil {
		m.ZoneID = *overrides.ZoneID
	}
	if overrides.WorkersDev != nil {
		m.WorkersDev = overrides.WorkersDev
	}
	if overrides.Route != nil {
		m.Route = *overrides.Route
	}
	if overrides.WebpackConfig != nil {
		m.WebpackConfig = *overrides.WebpackConfig
	}
	return nil
}
