package manifest

// inheritRule classifies how a Target field relates to the top-level
// value when an environment overlay is selected.
type inheritRule int

const (
	// mustInherit: the overlay cannot override the top-level value.
	mustInherit inheritRule = iota
	// mayInherit: the overlay value wins when set, else the top level.
	mayInherit
	// mustNotInherit: the overlay's own value (or absence) always wins.
	mustNotInherit
)

// fieldPolicy binds one Target field to its inheritance rule and to the
// override applied when an overlay is selected. Keeping the policy in a
// table keeps the contract auditable field-by-field.
type fieldPolicy struct {
	field string
	rule  inheritRule
	apply func(t *Target, m *Manifest, e *Environment, envName string)
}

var overlayPolicies = []fieldPolicy{
	{
		field: "type",
		rule:  mustInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			// Fixed at construction; site forcing included.
		},
	},
	{
		field: "name",
		rule:  mayInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			t.Name = m.WorkerName(envName)
		},
	},
	{
		field: "account_id",
		rule:  mayInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			if e.AccountID != "" {
				t.AccountID = e.AccountID
			}
		},
	},
	{
		field: "webpack_config",
		rule:  mayInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			if e.WebpackConfig != "" {
				t.WebpackConfig = e.WebpackConfig
			}
		},
	},
	{
		field: "kv-namespaces",
		rule:  mustNotInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			// Sharing namespaces across environments is an anti-pattern;
			// the overlay's own list replaces the top level even when empty.
			t.KvNamespaces = e.KvNamespaces
		},
	},
	{
		field: "site",
		rule:  mustInherit,
		apply: func(t *Target, m *Manifest, e *Environment, envName string) {
			// Overlays cannot declare a site; the top-level value stands.
		},
	},
}

// Target resolves the effective deployment target for the named
// environment, or for the top level when env is empty. The top-level
// values seed the target; the overlay policies then apply their
// per-field overrides.
func (m *Manifest) Target(env string) (*Target, error) {
	target := &Target{
		Name:          m.Name,
		Type:          m.targetType(),
		AccountID:     m.AccountID,
		WebpackConfig: m.WebpackConfig,
		KvNamespaces:  m.KvNamespaces,
		Site:          m.Site,
	}

	environment, err := m.Environment(env)
	if err != nil {
		return nil, err
	}
	if environment == nil {
		return target, nil
	}

	for _, policy := range overlayPolicies {
		policy.apply(target, m, environment, env)
	}
	return target, nil
}
