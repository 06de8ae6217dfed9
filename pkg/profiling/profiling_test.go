package profiling

import (
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/madhurinidan/clinic-web/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProfileTypes_Default(t *testing.T) {
	got, err := parseProfileTypes("  ")
	require.NoError(t, err)
	assert.Equal(t, defaultProfileTypes, got)
}

func TestParseProfileTypes_CustomDeduplicated(t *testing.T) {
	got, err := parseProfileTypes("cpu, mutex,,CPU")
	require.NoError(t, err)

	assert.Equal(t, []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileMutexCount,
		pyroscope.ProfileMutexDuration,
	}, got)
}

func TestParseProfileTypes_Invalid(t *testing.T) {
	_, err := parseProfileTypes("cpu,unknown")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported O11Y_PROFILING_SAMPLE_TYPES")
}

func TestProfileTags(t *testing.T) {
	obs := config.ObservabilityConfig{ServiceName: "clinic-web", ServiceNamespace: "clinic", ServiceVersion: "2.0.0"}

	tags := profileTags(obs, "production")
	assert.Equal(t, "clinic-web", tags["service_name"])
	assert.Equal(t, "production", tags["environment"])
	assert.NotContains(t, tags, "instance")

	obs.ServiceInstanceID = "web-1"
	assert.Equal(t, "web-1", profileTags(obs, "production")["instance"])
}

func TestStart_Disabled(t *testing.T) {
	stop, err := Start(config.ProfilingConfig{}, config.ObservabilityConfig{}, "test")
	require.NoError(t, err)
	assert.NotPanics(t, stop)
}

func TestStart_EnabledWithoutEndpoint(t *testing.T) {
	_, err := Start(config.ProfilingConfig{Enabled: true}, config.ObservabilityConfig{}, "test")
	assert.Error(t, err)
}
