// Package manifest loads, validates, and resolves edgeship deployment
// manifests. A manifest holds the top-level project configuration plus
// named environment overlays that selectively override it; resolution
// turns that tree into one validated deployment target per query.
//
// # Manifest Format
//
// Manifests are written in TOML (JSON and YAML spellings of the same
// tree are also accepted):
//
//	name = "worker"
//	type = "webpack"
//	account_id = "abc123"
//	workers_dev = true
//
//	[env.production]
//	route = "example.com/*"
//	zone_id = "def456"
//
// # Usage
//
// Load a manifest and resolve one environment:
//
//	loader := manifest.NewLoader()
//	m, err := loader.Load("edgeship.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	target, err := m.Target("production")
//	config, err := m.DeployConfig("production")
//
// DeployConfig returns a closed union: switch on manifest.Zoned and
// manifest.Zoneless to consume it.
//
// # Inheritance
//
// When an environment is selected, each field follows a fixed policy:
// the target type must be inherited (site projects force webpack),
// account_id and webpack_config may be overridden, and kv-namespaces
// are never inherited into an overlay. A site is declared top-level
// only and applies to every target. Routing fields declared on the
// overlay replace the top level outright.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - ErrInvalidFormat: document is malformed or has unknown fields
//   - ErrMisplacedKvNamespaces: kv-namespaces nested under [site]
//   - ErrUnknownEnvironment / ErrNoEnvironments: environment lookup
//   - ErrNoDeployTarget, ErrAmbiguousRoutes, ErrMissingAccountID,
//     ErrMissingZoneID, ErrEnvironmentRouteRequired: route resolution
//
// Duplicate script names are reported through NameConflictError.
package manifest
