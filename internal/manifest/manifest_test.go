package manifest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkerName_TopLevelOnly(t *testing.T) {
	m := &Manifest{Name: "worker"}

	assert.Equal(t, "worker", m.WorkerName(""))
}

func TestWorkerName_ConcatenatesEnvironment(t *testing.T) {
	m := &Manifest{
		Name: "worker",
		Env: map[string]Environment{
			"prod": {},
		},
	}

	assert.Equal(t, "worker-prod", m.WorkerName("prod"))
}

func TestWorkerName_ExplicitOverlayName(t *testing.T) {
	m := &Manifest{
		Name: "worker",
		Env: map[string]Environment{
			"prod": {Name: "custom"},
		},
	}

	assert.Equal(t, "custom", m.WorkerName("prod"))
}

func TestWorkerName_FallsBackOnLookupError(t *testing.T) {
	m := &Manifest{
		Name: "worker",
		Env: map[string]Environment{
			"prod": {},
		},
	}

	assert.Equal(t, "worker", m.WorkerName("missing"))
}

func TestDeployConfig_NoEnvironmentsEqualsTopLevel(t *testing.T) {
	m := &Manifest{
		Name:      "worker",
		AccountID: "acct",
		ZoneID:    "zone",
		Route:     "example.com/*",
	}

	direct, directErr := buildDeployConfig("worker", m.routeConfig())
	viaFacade, facadeErr := m.DeployConfig("")

	require.NoError(t, directErr)
	require.NoError(t, facadeErr)
	assert.Equal(t, direct, viaFacade)
}

func TestDeployConfig_TopLevelZoneless(t *testing.T) {
	m := &Manifest{
		Name:       "worker",
		AccountID:  "acct",
		WorkersDev: boolPtr(true),
	}

	config, err := m.DeployConfig("")

	require.NoError(t, err)
	assert.Equal(t, Zoneless{AccountID: "acct", Script: "worker", WorkersDev: true}, config)
}

func TestDeployConfig_EnvironmentRoutesTakePrecedence(t *testing.T) {
	m := &Manifest{
		Name:       "worker",
		AccountID:  "acct",
		WorkersDev: boolPtr(true),
		Env: map[string]Environment{
			"production": {
				Route:  "example.com/*",
				ZoneID: "zone-prod",
			},
		},
	}

	config, err := m.DeployConfig("production")

	require.NoError(t, err)
	assert.Equal(t, Zoned{
		AccountID: "acct",
		ZoneID:    "zone-prod",
		Script:    "worker-production",
		Routes:    []string{"example.com/*"},
	}, config)
}

func TestDeployConfig_ZonedTopLevelRequiresEnvironmentRoutes(t *testing.T) {
	m := &Manifest{
		Name:      "worker",
		AccountID: "acct",
		ZoneID:    "zone",
		Route:     "example.com/*",
		Env: map[string]Environment{
			"production": {},
		},
	}

	config, err := m.DeployConfig("production")

	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrEnvironmentRouteRequired)
}

func TestDeployConfig_ZonelessTopLevelFallback(t *testing.T) {
	m := &Manifest{
		Name:       "worker",
		AccountID:  "acct",
		WorkersDev: boolPtr(true),
		Env: map[string]Environment{
			"production": {Name: "custom"},
		},
	}

	config, err := m.DeployConfig("production")

	require.NoError(t, err)
	assert.Equal(t, Zoneless{AccountID: "acct", Script: "custom", WorkersDev: true}, config)
}

func TestDeployConfig_AmbiguousAtOneLevel(t *testing.T) {
	m := &Manifest{
		Name:      "worker",
		AccountID: "acct",
		ZoneID:    "zone",
		Route:     "example.com/*",
		Routes:    []string{"a.com/*"},
	}

	config, err := m.DeployConfig("")

	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrAmbiguousRoutes)
}

func TestDeployConfig_UnknownEnvironment(t *testing.T) {
	m := &Manifest{
		Name: "worker",
		Env: map[string]Environment{
			"production": {},
		},
	}

	config, err := m.DeployConfig("staging")

	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrUnknownEnvironment)
}

func TestDeployConfig_NoEnvironmentsDefined(t *testing.T) {
	m := &Manifest{Name: "worker", WorkersDev: boolPtr(true)}

	config, err := m.DeployConfig("production")

	assert.Nil(t, config)
	assert.ErrorIs(t, err, ErrNoEnvironments)
}

func TestDeployConfig_NameValidatorRejects(t *testing.T) {
	wantErr := errors.New("bad name")
	m := &Manifest{
		Name:       "worker",
		WorkersDev: boolPtr(true),
		nameCheck: func(name string) error {
			assert.Equal(t, "worker", name)
			return wantErr
		},
	}

	config, err := m.DeployConfig("")

	assert.Nil(t, config)
	assert.ErrorIs(t, err, wantErr)
}

func TestEnvironment_EmptyNameIsNil(t *testing.T) {
	m := &Manifest{Name: "worker"}

	environment, err := m.Environment("")

	assert.NoError(t, err)
	assert.Nil(t, environment)
}
