package manifest

import "fmt"

// Environment returns the overlay selected by name, or nil when name is
// empty. Requesting a name the manifest does not declare is an error, as
// is requesting any name when the manifest declares no environments.
func (m *Manifest) Environment(name string) (*Environment, error) {
	if name == "" {
		return nil, nil
	}
	if len(m.Env) == 0 {
		return nil, ErrNoEnvironments
	}
	environment, ok := m.Env[name]
	if !ok {
		return nil, fmt.Errorf("%w with name %q", ErrUnknownEnvironment, name)
	}
	return &environment, nil
}

// WorkerName returns the effective script name for the given environment.
// An overlay with an explicit name wins; otherwise the environment name
// is appended to the top-level name. Lookup failures fall back to the
// top-level name, so WorkerName never fails.
func (m *Manifest) WorkerName(env string) string {
	if environment, err := m.Environment(env); err == nil && environment != nil {
		if environment.Name != "" {
			return environment.Name
		}
		if env != "" {
			return fmt.Sprintf("%s-%s", m.Name, env)
		}
	}
	return m.Name
}

// DeployConfig resolves the deploy destination for the given environment.
// Routing declared on the overlay takes precedence over the top level
// outright; an overlay with no routing of its own may fall back to the
// top level only if that does not resolve to a zoned deploy, which must
// be declared per environment.
func (m *Manifest) DeployConfig(env string) (DeployConfig, error) {
	script := m.WorkerName(env)
	if m.nameCheck != nil {
		if err := m.nameCheck(script); err != nil {
			return nil, err
		}
	}

	environment, err := m.Environment(env)
	if err != nil {
		return nil, err
	}
	if environment == nil {
		return buildDeployConfig(script, m.routeConfig())
	}

	if rc, ok := environment.routeConfig(m.AccountID, m.ZoneID); ok {
		return buildDeployConfig(script, rc)
	}

	config, err := buildDeployConfig(script, m.routeConfig())
	if err != nil {
		return nil, err
	}
	switch config.(type) {
	case Zoned:
		return nil, ErrEnvironmentRouteRequired
	case Zoneless:
		return config, nil
	default:
		return nil, fmt.Errorf("unhandled deploy config %T", config)
	}
}
