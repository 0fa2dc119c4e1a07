package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"dario.cat/mergo"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/quantmind-br/edgeship-go/internal/utils"
)

// GenerateOptions configures manifest scaffolding.
type GenerateOptions struct {
	// Name is the project name, always written to the new manifest.
	Name string
	// Type is the requested target type; empty keeps the template's.
	Type TargetType
	// Dir is the directory the manifest file is written to.
	Dir string
	// Site, when set, is added unless the template already has one.
	Site *Site
	// Logger receives scaffolding diagnostics; nil uses the default.
	Logger *utils.Logger
}

// Generate scaffolds a new manifest file in opts.Dir. When the directory
// already holds a manifest (e.g. from a project template), its fields
// seed the new one; the requested name, type, and workers_dev default
// then override it. Returns the manifest that was written.
func Generate(opts GenerateOptions) (*Manifest, error) {
	log := opts.Logger
	if log == nil {
		log = utils.NewDefaultLogger()
	}
	path := filepath.Join(opts.Dir, DefaultFilename)

	template := &Manifest{}
	if data, err := os.ReadFile(path); err == nil {
		parsed, perr := NewLoader(WithEnvOverlay(nil)).LoadFromBytes(data, filepath.Ext(path))
		if perr != nil {
			log.Debug().Err(perr).Str("path", path).Msg("template manifest could not be parsed; starting fresh")
		} else {
			template = parsed
			template.auditPlaceholders(log)
			if opts.Type != "" && template.Type != opts.Type {
				log.Warn().
					Str("template_type", template.Type.String()).
					Str("requested_type", opts.Type.String()).
					Msg("the template recommends a different type; keeping the requested one may cause build errors")
			}
		}
	}

	scaffold := &Manifest{Name: opts.Name, Type: opts.Type}
	if opts.Site != nil && template.Site == nil {
		scaffold.Site = opts.Site
	}
	if err := mergo.Merge(scaffold, template); err != nil {
		return nil, fmt.Errorf("merging template manifest: %w", err)
	}
	if scaffold.Type == "" {
		scaffold.Type = DefaultTargetType
	}

	// New projects default to the dev subdomain unless the template
	// already routes somewhere.
	scaffold.WorkersDev = nil
	if template.Route == "" {
		workersDev := true
		scaffold.WorkersDev = &workersDev
	}

	data, err := toml.Marshal(scaffold.Tree())
	if err != nil {
		return nil, fmt.Errorf("encoding manifest: %w", err)
	}
	if err := utils.EnsureDir(path); err != nil {
		return nil, err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	log.Info().Str("path", path).Msg("wrote manifest")
	return scaffold, nil
}

// auditPlaceholders logs the fields a template manifest leaves for the
// user to fill in, honoring values already supplied via EDGESHIP_
// environment variables.
func (m *Manifest) auditPlaceholders(log *utils.Logger) {
	_, accountFromEnv := os.LookupEnv(EnvPrefix + "ACCOUNT_ID")
	_, zoneFromEnv := os.LookupEnv(EnvPrefix + "ZONE_ID")

	pending := func(accountID, zoneID, route string, namespaces []KvNamespace) []string {
		var fields []string
		if accountID == "" && !accountFromEnv {
			fields = append(fields, "account_id")
		}
		for _, ns := range namespaces {
			if ns.ID == "" {
				fields = append(fields, fmt.Sprintf("kv-namespace %s needs an id", ns.Binding))
			}
		}
		if route != "" {
			fields = append(fields, "route")
		}
		if zoneID != "" && !zoneFromEnv {
			fields = append(fields, "zone_id")
		}
		return fields
	}

	topLevel := pending(m.AccountID, m.ZoneID, m.Route, m.KvNamespaces)
	perEnv := map[string][]string{}
	for name, e := range m.Env {
		if fields := pending(e.AccountID, e.ZoneID, e.Route, e.KvNamespaces); len(fields) > 0 {
			perEnv[name] = fields
		}
	}
	if len(topLevel) == 0 && len(perEnv) == 0 {
		return
	}

	log.Warn().Msg("update the following fields in the manifest before deploying")
	for _, field := range topLevel {
		log.Warn().Str("field", field).Msg("needs a value")
	}
	envNames := make([]string, 0, len(perEnv))
	for name := range perEnv {
		envNames = append(envNames, name)
	}
	sort.Strings(envNames)
	for _, name := range envNames {
		for _, field := range perEnv[name] {
			log.Warn().Str("environment", name).Str("field", field).Msg("needs a value")
		}
	}
}
