package manifest

import "fmt"

// DeployConfig is the resolved deploy destination for a script: either
// Zoned or Zoneless, never both, never neither. The variant set is
// closed; consumers type-switch over it exhaustively.
type DeployConfig interface {
	// ScriptName returns the effective script name being deployed.
	ScriptName() string

	deployConfig()
}

// Zoned deploys a script to explicit route patterns inside a DNS zone.
type Zoned struct {
	AccountID string
	ZoneID    string
	Script    string
	Routes    []string
}

// Zoneless deploys a script to the platform-provided dev subdomain.
type Zoneless struct {
	AccountID  string
	Script     string
	WorkersDev bool
}

func (z Zoned) ScriptName() string    { return z.Script }
func (z Zoneless) ScriptName() string { return z.Script }

func (Zoned) deployConfig()    {}
func (Zoneless) deployConfig() {}

// RouteConfig carries the routing inputs considered by
// buildDeployConfig. Account and zone IDs may come from the top level
// even when the rest originates from an environment overlay.
type RouteConfig struct {
	AccountID  string
	ZoneID     string
	WorkersDev *bool
	Route      string
	Routes     []string
}

func (rc RouteConfig) workersDev() bool {
	return rc.WorkersDev != nil && *rc.WorkersDev
}

func (rc RouteConfig) hasPatterns() bool {
	return rc.Route != "" || len(rc.Routes) > 0
}

// buildDeployConfig resolves routing inputs into a DeployConfig,
// evaluated in precedence order: conflicting inputs are rejected first,
// then route patterns select a zoned deploy, then workers_dev selects a
// zoneless one. Anything left over has no deploy target.
func buildDeployConfig(script string, rc RouteConfig) (DeployConfig, error) {
	switch {
	case rc.Route != "" && len(rc.Routes) > 0:
		return nil, fmt.Errorf("%w: route and routes are both set; keep only one", ErrAmbiguousRoutes)

	case rc.workersDev() && rc.hasPatterns():
		return nil, fmt.Errorf("%w: workers_dev = true cannot be combined with routes", ErrAmbiguousRoutes)

	case rc.hasPatterns():
		if rc.ZoneID == "" {
			return nil, ErrMissingZoneID
		}
		if rc.AccountID == "" {
			return nil, ErrMissingAccountID
		}
		patterns := append([]string(nil), rc.Routes...)
		if rc.Route != "" {
			patterns = []string{rc.Route}
		}
		return Zoned{
			AccountID: rc.AccountID,
			ZoneID:    rc.ZoneID,
			Script:    script,
			Routes:    patterns,
		}, nil

	case rc.workersDev():
		return Zoneless{
			AccountID:  rc.AccountID,
			Script:     script,
			WorkersDev: true,
		}, nil

	default:
		return nil, ErrNoDeployTarget
	}
}

// routeConfig collects the top-level routing inputs.
func (m *Manifest) routeConfig() RouteConfig {
	return RouteConfig{
		AccountID:  m.AccountID,
		ZoneID:     m.ZoneID,
		WorkersDev: m.WorkersDev,
		Route:      m.Route,
		Routes:     m.Routes,
	}
}

// routeConfig returns the overlay's routing inputs, or ok=false when the
// overlay sets none and the caller should fall back to the top level.
// When the overlay routes, top-level routing fields are ignored outright;
// only account and zone IDs fall back to the given defaults.
func (e *Environment) routeConfig(defaultAccountID, defaultZoneID string) (RouteConfig, bool) {
	if e.WorkersDev == nil && e.Route == "" && len(e.Routes) == 0 {
		return RouteConfig{}, false
	}

	rc := RouteConfig{
		AccountID:  defaultAccountID,
		ZoneID:     defaultZoneID,
		WorkersDev: e.WorkersDev,
		Route:      e.Route,
		Routes:     e.Routes,
	}
	if e.AccountID != "" {
		rc.AccountID = e.AccountID
	}
	if e.ZoneID != "" {
		rc.ZoneID = e.ZoneID
	}
	return rc, true
}
