// Package entity contains the core business objects of the project.
package entity

// ServerEnvironment identifies which remote notification backend the client
// talks to. The raw value is what gets persisted in the local state store.
type ServerEnvironment string

const (
	// EnvironmentLocal targets a notification backend on the developer machine.
	EnvironmentLocal ServerEnvironment = "local"
	// EnvironmentProduction targets the hosted notification backend.
	EnvironmentProduction ServerEnvironment = "production"
)

// Environments lists every selectable environment. The first entry is the
// default when nothing has been persisted yet.
func Environments() []ServerEnvironment {
	return []ServerEnvironment{EnvironmentLocal, EnvironmentProduction}
}

// DefaultEnvironment returns the environment used before any selection.
func DefaultEnvironment() ServerEnvironment {
	return Environments()[0]
}

// ParseEnvironment maps a persisted raw value back to an environment.
// Unknown values fall back to the default rather than failing, so a stale
// store never leaves the client without an endpoint.
func ParseEnvironment(raw string) (ServerEnvironment, bool) {
	for _, env := range Environments() {
		if string(env) == raw {
			return env, true
		}
	}

	return DefaultEnvironment(), false
}

// DisplayName returns the human-readable label for the environment.
func (e ServerEnvironment) DisplayName() string {
	switch e {
	case EnvironmentLocal:
		return "Local"
	case EnvironmentProduction:
		return "Production"
	default:
		return string(e)
	}
}

// Valid reports whether the environment is one of the defined entries.
func (e ServerEnvironment) Valid() bool {
	_, ok := ParseEnvironment(string(e))
	return ok
}
