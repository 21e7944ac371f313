package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvironments_DefaultIsFirstEntry(t *testing.T) {
	envs := Environments()
	require.NotEmpty(t, envs)
	assert.Equal(t, envs[0], DefaultEnvironment())
	assert.Equal(t, EnvironmentLocal, DefaultEnvironment())
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want ServerEnvironment
		ok   bool
	}{
		{name: "local", raw: "local", want: EnvironmentLocal, ok: true},
		{name: "production", raw: "production", want: EnvironmentProduction, ok: true},
		{name: "unknown falls back to default", raw: "staging", want: DefaultEnvironment(), ok: false},
		{name: "empty falls back to default", raw: "", want: DefaultEnvironment(), ok: false},
		{name: "case sensitive", raw: "Production", want: DefaultEnvironment(), ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env, ok := ParseEnvironment(tt.raw)
			assert.Equal(t, tt.want, env)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestServerEnvironment_DisplayName(t *testing.T) {
	assert.Equal(t, "Local", EnvironmentLocal.DisplayName())
	assert.Equal(t, "Production", EnvironmentProduction.DisplayName())
	assert.Equal(t, "staging", ServerEnvironment("staging").DisplayName())
}

func TestServerEnvironment_Valid(t *testing.T) {
	assert.True(t, EnvironmentLocal.Valid())
	assert.True(t, EnvironmentProduction.Valid())
	assert.False(t, ServerEnvironment("staging").Valid())
}
