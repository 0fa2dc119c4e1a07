package manifest

import (
	"fmt"
	"strings"
)

// DefaultFilename is the manifest file written and looked up by default.
const DefaultFilename = "edgeship.toml"

// EnvPrefix is the prefix recognized for process-environment overrides
// of scalar manifest fields (e.g. EDGESHIP_ACCOUNT_ID).
const EnvPrefix = "EDGESHIP_"

// TargetType identifies the build mode of a project.
type TargetType string

const (
	// TargetTypePlain is a plain script uploaded as-is
	TargetTypePlain TargetType = "plain"

	// TargetTypeWebpack is a script bundled with webpack before upload
	TargetTypeWebpack TargetType = "webpack"
)

// DefaultTargetType is assumed when a manifest declares no type.
const DefaultTargetType = TargetTypeWebpack

func (t TargetType) String() string {
	return string(t)
}

// ParseTargetType parses a target type string
func ParseTargetType(s string) (TargetType, error) {
	switch TargetType(strings.ToLower(s)) {
	case TargetTypePlain:
		return TargetTypePlain, nil
	case TargetTypeWebpack:
		return TargetTypeWebpack, nil
	default:
		return "", fmt.Errorf("%w: unknown type %q (use %q or %q)",
			ErrInvalidFormat, s, TargetTypePlain, TargetTypeWebpack)
	}
}

// Manifest is the full configuration document: the top-level project
// settings plus zero or more named environment overlays. It is built once
// by the Loader and never mutated afterwards; all queries derive fresh
// values from it.
type Manifest struct {
	Name          string                 `mapstructure:"name"`
	Type          TargetType             `mapstructure:"type"`
	AccountID     string                 `mapstructure:"account_id"`
	ZoneID        string                 `mapstructure:"zone_id"`
	WorkersDev    *bool                  `mapstructure:"workers_dev"`
	Route         string                 `mapstructure:"route"`
	Routes        []string               `mapstructure:"routes"`
	WebpackConfig string                 `mapstructure:"webpack_config"`
	Private       *bool                  `mapstructure:"private"`
	Site          *Site                  `mapstructure:"site"`
	KvNamespaces  []KvNamespace          `mapstructure:"kv-namespaces"`
	Env           map[string]Environment `mapstructure:"env"`

	// nameCheck is the externally supplied script-name predicate; nil
	// disables syntax validation.
	nameCheck NameValidator
}

// Environment is a named partial override of the top-level settings.
// Which fields may, must, or must not fall back to the top level is
// decided by the inheritance policy in target.go, not here.
type Environment struct {
	Name          string        `mapstructure:"name"`
	AccountID     string        `mapstructure:"account_id"`
	ZoneID        string        `mapstructure:"zone_id"`
	WorkersDev    *bool         `mapstructure:"workers_dev"`
	Route         string        `mapstructure:"route"`
	Routes        []string      `mapstructure:"routes"`
	WebpackConfig string        `mapstructure:"webpack_config"`
	Private       *bool         `mapstructure:"private"`
	KvNamespaces  []KvNamespace `mapstructure:"kv-namespaces"`
}

// KvNamespace binds a KV store namespace into a script.
type KvNamespace struct {
	ID      string `mapstructure:"id"`
	Binding string `mapstructure:"binding"`
	Bucket  string `mapstructure:"bucket"`
}

// Site configures a static site bucket. Sites are always webpack builds;
// its presence overrides any declared target type.
type Site struct {
	Bucket     string   `mapstructure:"bucket"`
	EntryPoint string   `mapstructure:"entry-point"`
	Include    []string `mapstructure:"include"`
	Exclude    []string `mapstructure:"exclude"`
}

// Target is the effective deployment target for one environment (or for
// the top level when no environment is selected). It is computed per
// query and never cached.
type Target struct {
	Name          string
	Type          TargetType
	AccountID     string
	WebpackConfig string
	KvNamespaces  []KvNamespace
	Site          *Site
}

// NameValidator reports whether a script name is deployable. The
// predicate is supplied by the caller; the resolution core only
// consumes it.
type NameValidator func(name string) error

// targetType returns the effective build mode. Site projects are always
// webpack; the declared type cannot override this.
func (m *Manifest) targetType() TargetType {
	if m.Site != nil {
		return TargetTypeWebpack
	}
	if m.Type == "" {
		return DefaultTargetType
	}
	return m.Type
}

// Tree serializes the manifest back into the generic key/value document
// it was parsed from. Only fields that are set are emitted, so a parsed
// document round-trips through Tree for every field this model
// understands.
func (m *Manifest) Tree() map[string]any {
	declared := m.Type
	if declared == "" {
		declared = DefaultTargetType
	}
	tree := map[string]any{
		"name": m.Name,
		"type": declared.String(),
	}
	if m.AccountID != "" {
		tree["account_id"] = m.AccountID
	}
	if m.ZoneID != "" {
		tree["zone_id"] = m.ZoneID
	}
	if m.WorkersDev != nil {
		tree["workers_dev"] = *m.WorkersDev
	}
	if m.Route != "" {
		tree["route"] = m.Route
	}
	if len(m.Routes) > 0 {
		tree["routes"] = append([]string(nil), m.Routes...)
	}
	if m.WebpackConfig != "" {
		tree["webpack_config"] = m.WebpackConfig
	}
	if m.Private != nil {
		tree["private"] = *m.Private
	}
	if m.Site != nil {
		tree["site"] = m.Site.tree()
	}
	if len(m.KvNamespaces) > 0 {
		tree["kv-namespaces"] = kvTrees(m.KvNamespaces)
	}
	if len(m.Env) > 0 {
		envs := make(map[string]any, len(m.Env))
		for name, e := range m.Env {
			envs[name] = e.tree()
		}
		tree["env"] = envs
	}
	return tree
}

func (e Environment) tree() map[string]any {
	tree := map[string]any{}
	if e.Name != "" {
		tree["name"] = e.Name
	}
	if e.AccountID != "" {
		tree["account_id"] = e.AccountID
	}
	if e.ZoneID != "" {
		tree["zone_id"] = e.ZoneID
	}
	if e.WorkersDev != nil {
		tree["workers_dev"] = *e.WorkersDev
	}
	if e.Route != "" {
		tree["route"] = e.Route
	}
	if len(e.Routes) > 0 {
		tree["routes"] = append([]string(nil), e.Routes...)
	}
	if e.WebpackConfig != "" {
		tree["webpack_config"] = e.WebpackConfig
	}
	if e.Private != nil {
		tree["private"] = *e.Private
	}
	if len(e.KvNamespaces) > 0 {
		tree["kv-namespaces"] = kvTrees(e.KvNamespaces)
	}
	return tree
}

func (s *Site) tree() map[string]any {
	tree := map[string]any{
		"bucket": s.Bucket,
	}
	if s.EntryPoint != "" {
		tree["entry-point"] = s.EntryPoint
	}
	if len(s.Include) > 0 {
		tree["include"] = append([]string(nil), s.Include...)
	}
	if len(s.Exclude) > 0 {
		tree["exclude"] = append([]string(nil), s.Exclude...)
	}
	return tree
}

func kvTrees(namespaces []KvNamespace) []map[string]any {
	out := make([]map[string]any, 0, len(namespaces))
	for _, ns := range namespaces {
		entry := map[string]any{
			"id":      ns.ID,
			"binding": ns.Binding,
		}
		if ns.Bucket != "" {
			entry["bucket"] = ns.Bucket
		}
		out = append(out, entry)
	}
	return out
}
