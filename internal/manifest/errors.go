package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the manifest package
var (
	// ErrFileNotFound indicates the manifest file does not exist
	ErrFileNotFound = errors.New("manifest file not found")

	// ErrInvalidFormat indicates the document could not be parsed or
	// contains fields this model does not understand
	ErrInvalidFormat = errors.New("manifest could not be parsed")

	// ErrUnsupportedExt indicates an unsupported file extension
	ErrUnsupportedExt = errors.New("unsupported file extension (use .toml, .json, .yaml, or .yml)")

	// ErrMisplacedKvNamespaces flags the common mistake of nesting
	// kv-namespaces under the [site] table
	ErrMisplacedKvNamespaces = errors.New("kv-namespaces should not live under the [site] table; please move it above [site]")

	// ErrUnknownEnvironment indicates the requested environment is not
	// declared in the manifest
	ErrUnknownEnvironment = errors.New("could not find environment")

	// ErrNoEnvironments indicates an environment was requested but the
	// manifest declares none
	ErrNoEnvironments = errors.New("there are no environments specified in the manifest")

	// ErrNoDeployTarget indicates no routing fields select a deploy target
	ErrNoDeployTarget = errors.New("no deploy target: set workers_dev = true or provide a route with a zone_id")

	// ErrAmbiguousRoutes indicates conflicting routing fields
	ErrAmbiguousRoutes = errors.New("ambiguous routing configuration")

	// ErrMissingAccountID indicates a routed deploy without an account_id
	ErrMissingAccountID = errors.New("account_id is required to deploy to routes")

	// ErrMissingZoneID indicates a routed deploy without a zone_id
	ErrMissingZoneID = errors.New("zone_id is required to deploy to routes")

	// ErrEnvironmentRouteRequired indicates a zoned top-level config was
	// reached through an environment that declares no routes of its own
	ErrEnvironmentRouteRequired = errors.New("you must specify route(s) per environment for zoned deploys")
)

// NameConflictError reports script names shared between the top level and
// one or more environments. Each duplicated name is reported once.
type NameConflictError struct {
	Duplicates []string
}

func (e *NameConflictError) Error() string {
	label := "this name is duplicated"
	if len(e.Duplicates) > 1 {
		label = "these names are duplicated"
	}
	return fmt.Sprintf("each name in the manifest must be unique, %s: %s",
		label, strings.Join(e.Duplicates, ", "))
}
